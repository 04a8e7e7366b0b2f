package rounding

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		places int32
		want   string
	}{
		{"integer unchanged", "10", 0, "10"},
		{"below half rounds down", "10.49", 0, "10"},
		{"already at precision", "10.49", 2, "10.49"},
		{"one decimal rounds up", "10.49", 1, "10.5"},
		{"half rounds up", "10.5", 0, "11"},
		{"half at precision", "10.5", 1, "10.5"},
		{"negative half away from zero", "-10.5", 0, "-11"},
		{"negative below half", "-10.49", 0, "-10"},
		{"fraction under one at half", "0.5", 0, "1"},
		{"fraction under one below half", "0.49", 0, "0"},
		{"exactly one", "1", 0, "1"},
		{"zero", "0", 2, "0"},
		{"two places half up", "2.345", 2, "2.35"},
		{"two places below half", "2.344", 2, "2.34"},
		{"three places", "10.0005", 3, "10.001"},
		{"negative places treated as zero", "10.5", -1, "11"},
		{"tax on ten thousand", "150.0000", 2, "150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(decimal.RequireFromString(tt.in), tt.places)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"Round(%s, %d) = %s, want %s", tt.in, tt.places, got, tt.want)
		})
	}
}

func TestRoundPreservesSign(t *testing.T) {
	for _, s := range []string{"0.5", "1.5", "99.995", "1234.5678"} {
		pos := Round(decimal.RequireFromString(s), 2)
		neg := Round(decimal.RequireFromString("-"+s), 2)
		assert.True(t, pos.Neg().Equal(neg), "sign symmetry broken for %s", s)
	}
}

func TestFloat(t *testing.T) {
	assert.Equal(t, 10.0, Float(10.49, 0))
	assert.Equal(t, 10.5, Float(10.49, 1))
	assert.Equal(t, 11.0, Float(10.5, 0))
	assert.Equal(t, -11.0, Float(-10.5, 0))
	assert.Equal(t, 1.01, Float(1.005, 2))
}
