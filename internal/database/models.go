package database

import (
	"time"
)

// Sensor represents a registered temperature sensor
type Sensor struct {
	SensorID  string
	Name      string
	Location  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reading represents a stored temperature sample
type Reading struct {
	ID          int64
	SensorID    string
	Temperature float64
	Timestamp   time.Time
	ReceivedAt  time.Time
}

// ThresholdConfig represents a configured alert point for a sensor
type ThresholdConfig struct {
	ID            int
	SensorID      string
	TargetCelsius float64
	Margin        float64
	Direction     string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AlertLog represents a fired threshold crossing
type AlertLog struct {
	ID            int64
	AlertID       string
	SensorID      string
	ValueCelsius  float64
	TargetCelsius float64
	Margin        float64
	Direction     string
	FiredAt       time.Time
	CreatedAt     time.Time
}
