package protocol

import (
	"math"
	"testing"
	"time"

	"github.com/smukkama/temp-monitor/internal/monitor"
	"github.com/smukkama/temp-monitor/internal/threshold"
)

func TestDecodeReadingMessage_Validation(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing sensor_id", `{"sensor_name":"probe","temperature":21.5,"timestamp":"2026-08-26T10:00:00Z"}`},
		{"missing timestamp", `{"sensor_id":"s1","temperature":21.5}`},
		{"bad timestamp format", `{"sensor_id":"s1","temperature":21.5,"timestamp":"yesterday"}`},
		{"not JSON", `not json at all`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeReadingMessage([]byte(tt.json)); err == nil {
				t.Error("Expected decode error, got nil")
			}
		})
	}
}

func TestDecodeReadingMessage_Valid(t *testing.T) {
	data := []byte(`{"sensor_id":"s1","sensor_name":"probe","temperature":21.5,"timestamp":"2026-08-26T10:00:00Z"}`)

	msg, err := DecodeReadingMessage(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if msg.SensorID != "s1" || msg.Temperature != 21.5 {
		t.Errorf("Unexpected fields: %+v", msg)
	}

	ts, err := msg.ParsedTimestamp()
	if err != nil {
		t.Fatalf("ParsedTimestamp failed: %v", err)
	}
	if ts.Hour() != 10 {
		t.Errorf("Unexpected timestamp: %v", ts)
	}
}

func TestReadingMessage_NonFiniteTemperatureRejected(t *testing.T) {
	msg := &ReadingMessage{
		SensorID:    "s1",
		Temperature: math.Inf(1),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := msg.Validate(); err == nil {
		t.Error("Expected non-finite temperature to be rejected")
	}
}

func TestNewAlertNotification(t *testing.T) {
	th, err := threshold.New(0, 0.5, threshold.Up)
	if err != nil {
		t.Fatalf("threshold.New failed: %v", err)
	}

	firedAt := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	alert := monitor.Alert{
		Threshold: th,
		Value:     0.0,
		Direction: threshold.Up,
		At:        firedAt,
	}

	n := NewAlertNotification("s1", "probe", alert)

	if n.AlertID == "" {
		t.Error("Expected a generated alert ID")
	}
	if n.ValueF != 32.0 {
		t.Errorf("Expected 0°C to convert to exactly 32°F, got %v", n.ValueF)
	}
	if n.Target != 0 || n.Margin != 0.5 || n.Direction != "UP" {
		t.Errorf("Threshold fields not carried over: %+v", n)
	}
	if !n.FiredAt.Equal(firedAt) {
		t.Errorf("Expected fired_at %v, got %v", firedAt, n.FiredAt)
	}

	// The payload survives the wire
	data, err := EncodeAlertNotification(n)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	back, err := DecodeAlertNotification(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if back.AlertID != n.AlertID || back.ValueF != 32.0 {
		t.Errorf("Round trip lost fields: %+v", back)
	}
}
