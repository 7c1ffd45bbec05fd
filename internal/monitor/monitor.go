package monitor

import (
	"math"
	"time"

	"github.com/smukkama/temp-monitor/internal/threshold"
)

// Alert is emitted once per qualifying threshold crossing
type Alert struct {
	Threshold *threshold.Threshold
	Value     float64
	Direction threshold.Direction
	At        time.Time
}

// AlertSink receives alerts synchronously during sample evaluation.
// Fan-out to multiple observers is the sink's job (see the bus package);
// the monitor itself delivers to exactly one sink.
type AlertSink interface {
	Publish(Alert)
}

// Monitor evaluates incoming temperature samples against a set of thresholds
// and emits a directional, debounced alert per crossing.
//
// A threshold fires only while armed; it disarms on firing and re-arms once
// the sample leaves its tolerance band. Noise oscillating inside the band
// therefore never re-fires. Each threshold's armed flag lives here, keyed by
// position, so Threshold values stay immutable.
//
// Monitor is not safe for concurrent use: IngestSample must be serialized by
// the caller. Every delivery completes before IngestSample returns, so alert
// order matches sample order.
type Monitor struct {
	previous   *float64
	current    *float64
	thresholds []*threshold.Threshold
	armed      []bool
	sink       AlertSink
}

// New creates a Monitor delivering alerts to sink. A nil sink discards alerts.
func New(sink AlertSink, thresholds ...*threshold.Threshold) *Monitor {
	m := &Monitor{sink: sink}
	for _, t := range thresholds {
		m.AddThreshold(t)
	}
	return m
}

// AddThreshold appends t to the evaluation order and arms it.
// Returns t so callers can keep the reference for inspection.
func (m *Monitor) AddThreshold(t *threshold.Threshold) *threshold.Threshold {
	m.thresholds = append(m.thresholds, t)
	m.armed = append(m.armed, true)
	return t
}

// Thresholds returns the registered thresholds in evaluation order
func (m *Monitor) Thresholds() []*threshold.Threshold {
	out := make([]*threshold.Threshold, len(m.thresholds))
	copy(out, m.thresholds)
	return out
}

// Armed reports the readiness flag for t. The second return is false when t
// is not registered with this monitor.
func (m *Monitor) Armed(t *threshold.Threshold) (bool, bool) {
	for i, reg := range m.thresholds {
		if reg == t {
			return m.armed[i], true
		}
	}
	return false, false
}

// IngestSample accepts a new reading, shifts the sample history and evaluates
// every threshold in insertion order, delivering alerts to the sink before
// returning. It returns the accepted value.
//
// ErrNoThresholds is reported before the sample is consumed, so a
// misconfigured monitor never discards a reading. ErrInvalidSample (NaN or
// infinite input) likewise leaves the sample history untouched.
func (m *Monitor) IngestSample(value float64) (float64, error) {
	if len(m.thresholds) == 0 {
		return 0, ErrNoThresholds
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidSample
	}

	m.previous = m.current
	v := value
	m.current = &v

	now := time.Now()
	for i, t := range m.thresholds {
		m.evaluate(i, t, now)
	}

	return value, nil
}

// evaluate applies the crossing state machine to one threshold
func (m *Monitor) evaluate(i int, t *threshold.Threshold, now time.Time) {
	// No previous sample: no direction exists yet, nothing can transition
	if m.previous == nil {
		return
	}

	p := *m.previous
	c := *m.current

	switch {
	case m.armed[i] && t.InBand(c) && crossed(p, c, t):
		m.armed[i] = false
		if m.sink != nil {
			m.sink.Publish(Alert{
				Threshold: t,
				Value:     c,
				Direction: t.Direction(),
				At:        now,
			})
		}

	case !m.armed[i] && !t.InBand(c):
		// Left the tolerance band: ready for the next crossing
		m.armed[i] = true
	}
}

// crossed reports whether the step p→c passed the target in the threshold's
// configured direction. Both requires a genuine crossing either way; an
// in-band sample that never passed the target does not qualify.
func crossed(p, c float64, t *threshold.Threshold) bool {
	target := t.Target()
	up := p < target && c >= target
	down := p > target && c <= target

	switch t.Direction() {
	case threshold.Up:
		return up
	case threshold.Down:
		return down
	case threshold.Both:
		return up || down
	default:
		return false
	}
}

var (
	ErrInvalidSample = &MonitorError{"sample is not a finite number"}
	ErrNoThresholds  = &MonitorError{"no thresholds defined"}
)

// MonitorError represents an evaluation error
type MonitorError struct {
	msg string
}

func (e *MonitorError) Error() string {
	return e.msg
}
