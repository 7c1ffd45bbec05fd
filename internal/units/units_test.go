package units

import (
	"math"
	"testing"
)

func TestCelsiusToFahrenheit(t *testing.T) {
	tests := []struct {
		celsius    float64
		fahrenheit float64
	}{
		{0, 32.0},
		{100, 212.0},
		{-40, -40.0},
		{37, 98.6},
	}

	for _, tt := range tests {
		got := CelsiusToFahrenheit(tt.celsius)
		if math.Abs(got-tt.fahrenheit) > 1e-9 {
			t.Errorf("CelsiusToFahrenheit(%v) = %v, want %v", tt.celsius, got, tt.fahrenheit)
		}
	}

	// 0°C must be exactly 32°F, not merely close
	if CelsiusToFahrenheit(0) != 32.0 {
		t.Error("CelsiusToFahrenheit(0) is not exactly 32")
	}
}

func TestFahrenheitToCelsius(t *testing.T) {
	tests := []struct {
		fahrenheit float64
		celsius    float64
	}{
		{32, 0},
		{212, 100},
		{-40, -40},
	}

	for _, tt := range tests {
		got := FahrenheitToCelsius(tt.fahrenheit)
		if math.Abs(got-tt.celsius) > 1e-9 {
			t.Errorf("FahrenheitToCelsius(%v) = %v, want %v", tt.fahrenheit, got, tt.celsius)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for c := -50.0; c <= 50.0; c += 7.3 {
		back := FahrenheitToCelsius(CelsiusToFahrenheit(c))
		if math.Abs(back-c) > 1e-9 {
			t.Errorf("Round trip of %v returned %v", c, back)
		}
	}
}
