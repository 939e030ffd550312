package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeShiftHours(t *testing.T) {
	tests := []struct {
		name    string
		startHH int
		startMM int
		endHH   int
		endMM   int
		want    float64
		wantErr error
	}{
		{name: "ordinary evening shift", startHH: 18, startMM: 0, endHH: 22, endMM: 0, want: 4.0},
		{name: "half hour rounding", startHH: 9, startMM: 15, endHH: 11, endMM: 45, want: 2.5},
		{name: "rounds to one decimal", startHH: 9, startMM: 0, endHH: 9, endMM: 20, want: 0.3},
		{name: "exactly twelve hours", startHH: 8, startMM: 0, endHH: 20, endMM: 0, want: 12.0},
		{name: "ends at midnight", startHH: 20, startMM: 0, endHH: 0, endMM: 0, want: 4.0},
		{name: "over twelve hours", startHH: 8, startMM: 0, endHH: 21, endMM: 0, wantErr: ErrShiftTooLong},
		{name: "midnight shift too long", startHH: 11, startMM: 0, endHH: 0, endMM: 0, wantErr: ErrShiftTooLong},
		{name: "crosses past midnight", startHH: 22, startMM: 0, endHH: 2, endMM: 0, wantErr: ErrShiftPastMidnight},
		{name: "zero duration", startHH: 10, startMM: 0, endHH: 10, endMM: 0, wantErr: ErrShiftNotPositive},
		{name: "negative duration same morning", startHH: 10, startMM: 30, endHH: 10, endMM: 0, wantErr: ErrShiftNotPositive},
		{name: "hour out of range", startHH: 24, startMM: 0, endHH: 2, endMM: 0, wantErr: ErrShiftTimeRange},
		{name: "minute out of range", startHH: 10, startMM: 60, endHH: 12, endMM: 0, wantErr: ErrShiftTimeRange},
		{name: "negative hour", startHH: -1, startMM: 0, endHH: 2, endMM: 0, wantErr: ErrShiftTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeShiftHours(tt.startHH, tt.startMM, tt.endHH, tt.endMM)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatShiftTime(t *testing.T) {
	assert.Equal(t, "08:05", FormatShiftTime(8, 5))
	assert.Equal(t, "23:59", FormatShiftTime(23, 59))
	assert.Equal(t, "00:00", FormatShiftTime(0, 0))
}

func TestYearMonth(t *testing.T) {
	assert.Equal(t, "2026-03", YearMonth("2026-03-14"))
	assert.Equal(t, "bad", YearMonth("bad"))
}

func TestMonthlyTotal(t *testing.T) {
	logs := []ShiftLog{
		{Date: "2026-03-01", TotalHours: 6.0},
		{Date: "2026-03-15", TotalHours: 4.5},
		{Date: "2026-04-01", TotalHours: 8.0},
	}

	assert.Equal(t, 10.5, MonthlyTotal(logs, "2026-03"))
	assert.Equal(t, 8.0, MonthlyTotal(logs, "2026-04"))
	assert.Equal(t, 0.0, MonthlyTotal(logs, "2026-05"))
}
