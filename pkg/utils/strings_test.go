package utils

import "testing"

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"jdoe", false},
		{" jdoe ", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := IsEmpty(tt.input)
			if result != tt.expected {
				t.Errorf("expected %t, got %t", tt.expected, result)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0.0s"},
		{2.5, "2.5s"},
		{59.96, "60.0s"},
		{60, "1m 0.0s"},
		{125.5, "2m 5.5s"},
		{-3, "0.0s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if result := FormatSeconds(tt.input); result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}
