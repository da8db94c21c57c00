package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycleWindowDays(t *testing.T) {
	tests := []struct {
		name     string
		month    string
		startDay int
		want     int
	}{
		{"calendar january", "2026-01", 1, 31},
		{"calendar february", "2026-02", 1, 28},
		{"leap february", "2024-02", 1, 29},
		{"calendar april", "2026-04", 1, 30},
		{"mid-cycle over february", "2026-03", 26, 28},
		{"mid-cycle over july", "2026-08", 26, 31},
		{"zero start day treated as one", "2026-06", 0, 30},
		{"bad month", "garbage", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cycleWindowDays(tt.month, tt.startDay))
		})
	}
}
