package output

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{1000.5, "1,000.5"},
		{1234567.9, "1,234,567.9"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCount(tt.in))
		})
	}
}

func TestFormatGrouped(t *testing.T) {
	assert.Equal(t, "142,500", FormatGrouped(142500, 0))
	assert.Equal(t, "1,234.57", FormatGrouped(1234.567, 2))
	assert.Equal(t, "+Inf", FormatGrouped(math.Inf(1), 0))
	assert.Equal(t, "NaN", FormatGrouped(math.NaN(), 2))
}

func TestMegabytes(t *testing.T) {
	assert.Equal(t, 1.425, Megabytes(1425000))
}
