package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Golden Hour", "golden-hour"},
		{"golden_hour", "golden-hour"},
		{"Café/Terrasse", "cafe-terrasse"},
		{"  multi   word ", "multi-word"},
		{"beach-day 02", "beach-day-02"},
		{"UPPER", "upper"},
		{"already-a-slug", "already-a-slug"},
		{"trailing---dashes--", "trailing-dashes"},
		{"naïve façade", "naive-facade"},
		{"photo (1)", "photo-1"},
		{"🌅", ""},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.input))
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"golden_hour", "Golden Hour"},
		{"beach-day 02", "Beach Day 02"},
		{"sunset", "Sunset"},
		{"multi  __ mixed--separators", "Multi Mixed Separators"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.input))
		})
	}
}
