package threshold

import (
	"errors"
	"math"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	th, err := New(21.5, 0.5, Up)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if th.Target() != 21.5 {
		t.Errorf("Expected target 21.5, got %v", th.Target())
	}
	if th.Margin() != 0.5 {
		t.Errorf("Expected margin 0.5, got %v", th.Margin())
	}
	if th.Direction() != Up {
		t.Errorf("Expected direction UP, got %s", th.Direction())
	}
}

func TestNew_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name      string
		target    float64
		margin    float64
		direction Direction
	}{
		{"NaN target", math.NaN(), 0.5, Up},
		{"infinite target", math.Inf(1), 0.5, Up},
		{"NaN margin", 0, math.NaN(), Up},
		{"infinite margin", 0, math.Inf(-1), Up},
		{"negative margin", 0, -0.1, Up},
		{"unknown direction", 0, 0.5, Direction("SIDEWAYS")},
		{"empty direction", 0, 0.5, Direction("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.target, tt.margin, tt.direction)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestNew_ZeroMarginAllowed(t *testing.T) {
	if _, err := New(0, 0, Both); err != nil {
		t.Errorf("Expected zero margin to be valid, got %v", err)
	}
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"UP", "DOWN", "BOTH"} {
		d, err := ParseDirection(s)
		if err != nil {
			t.Errorf("ParseDirection(%q) failed: %v", s, err)
		}
		if string(d) != s {
			t.Errorf("ParseDirection(%q) = %q", s, d)
		}
	}

	if _, err := ParseDirection("up"); err == nil {
		t.Error("Expected lowercase direction to be rejected")
	}
}

func TestInBand(t *testing.T) {
	th, err := New(10, 0.5, Both)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		value float64
		want  bool
	}{
		{9.4, false},
		{9.5, true}, // closed interval
		{10.0, true},
		{10.5, true}, // closed interval
		{10.6, false},
	}

	for _, tt := range tests {
		if got := th.InBand(tt.value); got != tt.want {
			t.Errorf("InBand(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
