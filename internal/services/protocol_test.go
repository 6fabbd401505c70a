package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatProtocolNumber(t *testing.T) {
	day := time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		seq  int
		want string
	}{
		{"first of the day", 1, "DENUNCIA-20250307-0001"},
		{"zero padded", 42, "DENUNCIA-20250307-0042"},
		{"four digits", 9999, "DENUNCIA-20250307-9999"},
		{"grows past padding", 10001, "DENUNCIA-20250307-10001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatProtocolNumber(day, tt.seq))
		})
	}
}

func TestFormatProtocolNumberUsesCalendarDay(t *testing.T) {
	// Same sequence on different days must never collide.
	a := FormatProtocolNumber(time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), 7)
	b := FormatProtocolNumber(time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC), 7)
	assert.NotEqual(t, a, b)
	assert.Equal(t, "DENUNCIA-20251231-0007", a)
	assert.Equal(t, "DENUNCIA-20260101-0007", b)
}
