package threshold

import (
	"fmt"
	"math"
)

// Direction is the approach direction a crossing must have to qualify
type Direction string

const (
	// Up fires when the sample rises from below the target to at-or-above it
	Up Direction = "UP"
	// Down fires when the sample falls from above the target to at-or-below it
	Down Direction = "DOWN"
	// Both fires on a qualifying crossing in either direction
	Both Direction = "BOTH"
)

// ParseDirection converts a string (e.g. a config or database value) to a Direction
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down, Both:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("%w: unknown direction %q", ErrInvalidConfiguration, s)
	}
}

// Threshold is an alert point: a target temperature in degrees Celsius, a
// symmetric tolerance band around it, and the crossing direction that must be
// observed for an alert to fire. Values within [Target-Margin, Target+Margin]
// count as "at" the threshold.
//
// A Threshold carries no readiness state; the monitor that owns it tracks
// armed/disarmed per threshold so the same configuration could never alias
// state across evaluators.
type Threshold struct {
	target    float64
	margin    float64
	direction Direction
}

// New validates and creates a Threshold
func New(target, margin float64, direction Direction) (*Threshold, error) {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return nil, fmt.Errorf("%w: target must be a finite number, got %v", ErrInvalidConfiguration, target)
	}
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		return nil, fmt.Errorf("%w: margin must be a finite number, got %v", ErrInvalidConfiguration, margin)
	}
	if margin < 0 {
		return nil, fmt.Errorf("%w: margin must be >= 0, got %v", ErrInvalidConfiguration, margin)
	}
	if _, err := ParseDirection(string(direction)); err != nil {
		return nil, err
	}

	return &Threshold{
		target:    target,
		margin:    margin,
		direction: direction,
	}, nil
}

// Target returns the alert point in degrees Celsius
func (t *Threshold) Target() float64 { return t.target }

// Margin returns the symmetric tolerance band half-width
func (t *Threshold) Margin() float64 { return t.margin }

// Direction returns the required crossing direction
func (t *Threshold) Direction() Direction { return t.direction }

// InBand reports whether x lies within the closed tolerance band
func (t *Threshold) InBand(x float64) bool {
	return x >= t.target-t.margin && x <= t.target+t.margin
}

func (t *Threshold) String() string {
	return fmt.Sprintf("%.2f°C ±%.2f %s", t.target, t.margin, t.direction)
}

var (
	ErrInvalidConfiguration = &ConfigError{"invalid threshold configuration"}
)

// ConfigError represents a threshold configuration error
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return e.msg
}
