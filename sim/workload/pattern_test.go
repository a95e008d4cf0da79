package workload

import (
	"math/rand"
	"testing"
)

func TestStep_ConstantSchedule(t *testing.T) {
	arrivals := Step{Count: 5}.Arrivals(3000, 1000)

	want := []Arrival{{0, 5}, {1000, 5}, {2000, 5}}
	if len(arrivals) != len(want) {
		t.Fatalf("got %d arrivals, want %d", len(arrivals), len(want))
	}
	for i, a := range arrivals {
		if a != want[i] {
			t.Errorf("arrival %d: got %+v, want %+v", i, a, want[i])
		}
	}
}

func TestStep_ZeroCountEmitsNothing(t *testing.T) {
	if got := (Step{Count: 0}).Arrivals(5000, 1000); len(got) != 0 {
		t.Errorf("got %d arrivals, want 0", len(got))
	}
}

func TestRamp_GrowsThenCaps(t *testing.T) {
	arrivals := Ramp{DeltaV: 2, Max: 5}.Arrivals(5000, 1000)

	wantCounts := []int{2, 4, 5, 5, 5}
	if len(arrivals) != len(wantCounts) {
		t.Fatalf("got %d arrivals, want %d", len(arrivals), len(wantCounts))
	}
	for i, a := range arrivals {
		if a.Count != wantCounts[i] {
			t.Errorf("interval %d: got count %d, want %d", i, a.Count, wantCounts[i])
		}
	}
}

func TestSinusoidal_OscillatesAndClipsAtZero(t *testing.T) {
	// Amplitude exceeds the average, so the trough would go negative.
	s := Sinusoidal{Average: 2, Amplitude: 5, Period: 4000}
	arrivals := s.Arrivals(4000, 1000)

	// t=0: 2; t=1000 (peak): 7; t=2000: 2; t=3000 (trough): clipped out.
	want := []Arrival{{0, 2}, {1000, 7}, {2000, 2}}
	if len(arrivals) != len(want) {
		t.Fatalf("got %v, want %v", arrivals, want)
	}
	for i, a := range arrivals {
		if a != want[i] {
			t.Errorf("arrival %d: got %+v, want %+v", i, a, want[i])
		}
	}
}

func TestUniformRandom_StaysInBounds(t *testing.T) {
	u := UniformRandom{Min: 2, Max: 6, Rand: rand.New(rand.NewSource(1))}

	for _, a := range u.Arrivals(100000, 100) {
		if a.Count < 2 || a.Count > 6 {
			t.Fatalf("count %d at t=%d out of [2, 6]", a.Count, a.Time)
		}
	}
}

func TestPoisson_MeanIsRoughlyRight(t *testing.T) {
	p := Poisson{Mean: 4, Rand: rand.New(rand.NewSource(1))}

	total := 0
	intervals := int64(1000)
	for _, a := range p.Arrivals(intervals*100, 100) {
		total += a.Count
	}
	avg := float64(total) / float64(intervals)
	if avg < 3.5 || avg > 4.5 {
		t.Errorf("empirical mean %v too far from 4", avg)
	}
}

func TestNew_SelectsByName(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		cfg      Config
		wantName string
	}{
		{Config{Pattern: "", Count: 3}, "step"},
		{Config{Pattern: "step", Count: 3}, "step"},
		{Config{Pattern: "ramp", DeltaV: 1, Max: 9}, "ramp"},
		{Config{Pattern: "sinusoidal", Count: 5, Amplitude: 2, Period: 1000}, "sinusoidal"},
		{Config{Pattern: "uniform-random", Min: 1, Max: 3}, "uniform-random"},
		{Config{Pattern: "poisson", Mean: 2.5}, "poisson"},
	}
	for _, tt := range tests {
		p, err := New(tt.cfg, rng)
		if err != nil {
			t.Errorf("New(%q): unexpected error %v", tt.cfg.Pattern, err)
			continue
		}
		if p.Name() != tt.wantName {
			t.Errorf("New(%q): got pattern %q", tt.cfg.Pattern, p.Name())
		}
	}
}

func TestNew_RejectsBadConfigs(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := New(Config{Pattern: "sawtooth"}, rng); err == nil {
		t.Error("unknown pattern name: expected error, got nil")
	}
	if _, err := New(Config{Pattern: "uniform-random", Min: 5, Max: 2}, rng); err == nil {
		t.Error("inverted uniform bounds: expected error, got nil")
	}
}
