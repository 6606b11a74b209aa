package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidUpdatePeriod(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days int
		want bool
	}{
		{"12 days is too short", 12, false},
		{"13 days is the lower bound", 13, true},
		{"14 days", 14, true},
		{"15 days is the upper bound", 15, true},
		{"16 days is too long", 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := start.AddDate(0, 0, tt.days)
			assert.Equal(t, tt.want, ValidUpdatePeriod(start, end))
		})
	}

	t.Run("inverted period is invalid", func(t *testing.T) {
		assert.False(t, ValidUpdatePeriod(start, start.AddDate(0, 0, -14)))
	})
}
