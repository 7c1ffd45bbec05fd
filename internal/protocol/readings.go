package protocol

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ReadingMessage is the wire format for a single temperature reading on the
// readings topic, keyed by sensor ID
type ReadingMessage struct {
	SensorID    string    `json:"sensor_id"`
	SensorName  string    `json:"sensor_name"`
	Temperature float64   `json:"temperature"` // degrees Celsius
	Timestamp   string    `json:"timestamp"`   // RFC3339, set by the sensor
	ReceivedAt  time.Time `json:"received_at"`
}

// Validate checks required fields and the timestamp format
func (m *ReadingMessage) Validate() error {
	if m.SensorID == "" {
		return fmt.Errorf("sensor_id is required")
	}
	if m.Timestamp == "" {
		return fmt.Errorf("timestamp is required")
	}
	if _, err := time.Parse(time.RFC3339, m.Timestamp); err != nil {
		return fmt.Errorf("invalid timestamp format (must be RFC3339): %w", err)
	}
	if math.IsNaN(m.Temperature) || math.IsInf(m.Temperature, 0) {
		return fmt.Errorf("temperature must be a finite number")
	}
	return nil
}

// ParsedTimestamp returns the sensor timestamp as a time.Time
func (m *ReadingMessage) ParsedTimestamp() (time.Time, error) {
	return time.Parse(time.RFC3339, m.Timestamp)
}

// EncodeReadingMessage encodes a ReadingMessage to JSON
func EncodeReadingMessage(msg *ReadingMessage) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeReadingMessage decodes JSON to a ReadingMessage and validates it
func DecodeReadingMessage(data []byte) (*ReadingMessage, error) {
	var msg ReadingMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("invalid reading message: %w", err)
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
