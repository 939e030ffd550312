package dto

import "time"

// LogShiftRequest is a raw ride-time submission.
type LogShiftRequest struct {
	Date        string `json:"date"`
	StartHour   int    `json:"start_hour"`
	StartMinute int    `json:"start_minute"`
	EndHour     int    `json:"end_hour"`
	EndMinute   int    `json:"end_minute"`
}

// ShiftLogResponse is one recorded ride-time entry.
type ShiftLogResponse struct {
	ID         string    `json:"id"`
	ExplorerID string    `json:"explorer_id"`
	Date       string    `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	TotalHours float64   `json:"total_hours"`
	CreatedAt  time.Time `json:"created_at"`
}

// MonthlyHoursResponse reports a monthly riding total.
type MonthlyHoursResponse struct {
	YearMonth string  `json:"year_month"`
	Total     float64 `json:"total"`
	Limit     float64 `json:"limit"`
}
