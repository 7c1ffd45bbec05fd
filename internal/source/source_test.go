package source

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

func TestSimulated_Deterministic(t *testing.T) {
	a := NewSimulated(22.0, 1.5, 42)
	b := NewSimulated(22.0, 1.5, 42)

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		va, _ := a.Sample(ctx)
		vb, _ := b.Sample(ctx)
		if va != vb {
			t.Fatalf("Sample %d diverged: %v != %v", i, va, vb)
		}
	}
}

func TestSimulated_BoundedStep(t *testing.T) {
	s := NewSimulated(22.0, 1.5, 7)

	ctx := context.Background()
	prev := 22.0
	for i := 0; i < 1000; i++ {
		v, err := s.Sample(ctx)
		if err != nil {
			t.Fatalf("Sample failed: %v", err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Sample %d is not finite: %v", i, v)
		}
		// Step bound plus the mean-reversion pull
		if math.Abs(v-prev) > 1.5+math.Abs(22.0-prev)*0.1+1e-9 {
			t.Fatalf("Sample %d moved too far: %v -> %v", i, prev, v)
		}
		prev = v
	}
}

func TestFunc_Adapter(t *testing.T) {
	want := errors.New("probe offline")
	src := Func(func(ctx context.Context) (float64, error) {
		return 0, want
	})

	if _, err := src.Sample(context.Background()); err != want {
		t.Errorf("Expected adapter to surface the source error, got %v", err)
	}
}

func TestPoller_DeliversSerialized(t *testing.T) {
	var mu sync.Mutex
	var got []float64

	next := 0.0
	src := Func(func(ctx context.Context) (float64, error) {
		next++
		return next, nil
	})

	inFlight := 0
	p := NewPoller(src, 5*time.Millisecond, func(v float64) {
		mu.Lock()
		inFlight++
		if inFlight > 1 {
			t.Error("Handler calls overlapped")
		}
		got = append(got, v)
		inFlight--
		mu.Unlock()
	})

	p.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(got) == 0 {
		t.Fatal("Poller delivered no readings")
	}
	for i, v := range got {
		if v != float64(i+1) {
			t.Errorf("Reading %d out of order: got %v", i, v)
		}
	}
}

func TestPoller_SkipsFailedReads(t *testing.T) {
	calls := 0
	src := Func(func(ctx context.Context) (float64, error) {
		calls++
		if calls%2 == 1 {
			return 0, errors.New("flaky probe")
		}
		return float64(calls), nil
	})

	var mu sync.Mutex
	delivered := 0
	p := NewPoller(src, 5*time.Millisecond, func(v float64) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})

	p.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	if delivered == 0 {
		t.Fatal("Expected successful reads to be delivered despite failures")
	}
	if delivered >= calls {
		t.Errorf("Expected failed reads to be skipped (calls=%d, delivered=%d)", calls, delivered)
	}
}
