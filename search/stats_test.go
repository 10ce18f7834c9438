package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0.0005, "500 µs"},
		{0.5, "500 ms"},
		{5, "5.00 s"},
		{300, "5.00 min"},
		{7200, "2.00 h"},
		{172800, "2.00 d"},
		{63113904, "2.000 y"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.seconds))
		})
	}
}

func TestSecondsSince(t *testing.T) {
	start := time.Now().Add(-time.Second)
	elapsed := SecondsSince(start)
	assert.Greater(t, elapsed, 0.9)
	assert.Less(t, elapsed, 10.0)
}
