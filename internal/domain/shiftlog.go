package domain

import (
	"fmt"
	"math"
	"time"
)

// ShiftLog records one ride-time entry. TotalHours is computed at
// creation and stored; it is never recomputed from the time strings.
type ShiftLog struct {
	ID         string
	ExplorerID string
	Date       string // YYYY-MM-DD
	StartTime  string // HH:MM
	EndTime    string // HH:MM
	TotalHours float64
	CreatedAt  time.Time
}

// Shift validation failures, in check order. Each maps to a distinct
// user-facing rejection reason.
var (
	ErrShiftTimeRange     = fmt.Errorf("hours must be between 0 and 23 and minutes between 0 and 59")
	ErrShiftPastMidnight  = fmt.Errorf("shifts cannot ride past midnight")
	ErrShiftNotPositive   = fmt.Errorf("shift end time must be after the start time")
	ErrShiftTooLong       = fmt.Errorf("shifts cannot exceed 12 hours")
	ErrShiftMonthlyCapHit = fmt.Errorf("monthly riding limit of 24 hours exceeded")
)

const (
	// MaxShiftHours caps a single ride-time block.
	MaxShiftHours = 12.0
	// MaxMonthlyHours caps total ride time per calendar month.
	MaxMonthlyHours = 24.0
)

// ComputeShiftHours validates a start/end time pair and returns the
// shift duration rounded to one decimal place. An end hour of exactly 0
// means midnight at the end of the day, not the start; any other end
// hour earlier than the start hour means the shift crossed midnight and
// is rejected.
func ComputeShiftHours(startHH, startMM, endHH, endMM int) (float64, error) {
	if startHH < 0 || startHH > 23 || endHH < 0 || endHH > 23 ||
		startMM < 0 || startMM > 59 || endMM < 0 || endMM > 59 {
		return 0, ErrShiftTimeRange
	}
	if endHH > 0 && endHH < startHH {
		return 0, ErrShiftPastMidnight
	}

	startMinutes := startHH*60 + startMM
	endMinutes := endHH*60 + endMM
	if endHH == 0 {
		endMinutes = 24*60 + endMM
	}

	hours := math.Round(float64(endMinutes-startMinutes)/60*10) / 10
	if hours <= 0 {
		return 0, ErrShiftNotPositive
	}
	if hours > MaxShiftHours {
		return 0, ErrShiftTooLong
	}
	return hours, nil
}

// FormatShiftTime renders a zero-padded HH:MM time string.
func FormatShiftTime(hh, mm int) string {
	return fmt.Sprintf("%02d:%02d", hh, mm)
}

// YearMonth extracts the YYYY-MM prefix of a stored date string.
func YearMonth(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// MonthlyTotal sums the stored hours of the logs falling in the given
// YYYY-MM month.
func MonthlyTotal(logs []ShiftLog, yearMonth string) float64 {
	total := 0.0
	for _, l := range logs {
		if YearMonth(l.Date) == yearMonth {
			total += l.TotalHours
		}
	}
	return total
}
