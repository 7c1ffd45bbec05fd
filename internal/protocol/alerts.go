package protocol

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smukkama/temp-monitor/internal/monitor"
	"github.com/smukkama/temp-monitor/internal/units"
)

// AlertNotification is the wire format for a fired threshold crossing on the
// alerts topic
type AlertNotification struct {
	AlertID    string    `json:"alert_id"`
	SensorID   string    `json:"sensor_id"`
	SensorName string    `json:"sensor_name"`
	Value      float64   `json:"value_celsius"`
	ValueF     float64   `json:"value_fahrenheit"`
	Target     float64   `json:"target_celsius"`
	Margin     float64   `json:"margin"`
	Direction  string    `json:"direction"`
	FiredAt    time.Time `json:"fired_at"`
}

// NewAlertNotification builds the external payload for a fired alert
func NewAlertNotification(sensorID, sensorName string, alert monitor.Alert) *AlertNotification {
	return &AlertNotification{
		AlertID:    uuid.NewString(),
		SensorID:   sensorID,
		SensorName: sensorName,
		Value:      alert.Value,
		ValueF:     units.CelsiusToFahrenheit(alert.Value),
		Target:     alert.Threshold.Target(),
		Margin:     alert.Threshold.Margin(),
		Direction:  string(alert.Direction),
		FiredAt:    alert.At,
	}
}

// EncodeAlertNotification encodes an AlertNotification to JSON
func EncodeAlertNotification(alert *AlertNotification) ([]byte, error) {
	return json.Marshal(alert)
}

// DecodeAlertNotification decodes JSON to an AlertNotification
func DecodeAlertNotification(data []byte) (*AlertNotification, error) {
	var alert AlertNotification
	if err := json.Unmarshal(data, &alert); err != nil {
		return nil, fmt.Errorf("invalid alert notification: %w", err)
	}
	return &alert, nil
}
