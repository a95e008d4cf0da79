// Package workload generates synthetic traffic for the serving chain.
// A Pattern expands into a schedule of arrivals over a horizon; the
// caller turns the schedule into arrival events so load injection shares
// the simulation timeline with everything else.
package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// Arrival is one batch of task submissions at a simulated instant.
type Arrival struct {
	Time  int64 // ticks
	Count int   // tasks submitted at Time
}

// Pattern produces an arrival schedule over [0, horizon), with one entry
// per interval. Counts of zero are omitted.
type Pattern interface {
	Name() string
	Arrivals(horizon, interval int64) []Arrival
}

// Step emits a constant number of tasks every interval.
type Step struct {
	Count int
}

func (Step) Name() string { return "step" }

func (s Step) Arrivals(horizon, interval int64) []Arrival {
	return expand(horizon, interval, func(int64) int { return s.Count })
}

// Ramp grows the per-interval count by DeltaV each interval, capped at Max.
type Ramp struct {
	DeltaV int
	Max    int
}

func (Ramp) Name() string { return "ramp" }

func (r Ramp) Arrivals(horizon, interval int64) []Arrival {
	step := 0
	return expand(horizon, interval, func(int64) int {
		step++
		n := step * r.DeltaV
		if n > r.Max {
			n = r.Max
		}
		return n
	})
}

// Sinusoidal oscillates around Average with the given Amplitude and
// Period (in ticks). Counts are clipped at zero.
type Sinusoidal struct {
	Average   int
	Amplitude int
	Period    int64
}

func (Sinusoidal) Name() string { return "sinusoidal" }

func (s Sinusoidal) Arrivals(horizon, interval int64) []Arrival {
	twoPi := 2.0 * math.Pi
	return expand(horizon, interval, func(t int64) int {
		n := int(math.Round(float64(s.Average) + float64(s.Amplitude)*math.Sin(twoPi*float64(t)/float64(s.Period))))
		if n < 0 {
			return 0
		}
		return n
	})
}

// UniformRandom draws each interval's count uniformly from [Min, Max].
type UniformRandom struct {
	Min, Max int
	Rand     *rand.Rand
}

func (UniformRandom) Name() string { return "uniform-random" }

func (u UniformRandom) Arrivals(horizon, interval int64) []Arrival {
	return expand(horizon, interval, func(int64) int {
		return u.Min + u.Rand.Intn(u.Max-u.Min+1)
	})
}

// Poisson draws each interval's count from a Poisson distribution with
// the given mean, via inversion (Knuth). Bursty at small means.
type Poisson struct {
	Mean float64
	Rand *rand.Rand
}

func (Poisson) Name() string { return "poisson" }

func (p Poisson) Arrivals(horizon, interval int64) []Arrival {
	limit := math.Exp(-p.Mean)
	return expand(horizon, interval, func(int64) int {
		k := 0
		product := p.Rand.Float64()
		for product > limit {
			k++
			product *= p.Rand.Float64()
		}
		return k
	})
}

// expand walks the horizon in interval steps and applies countAt.
func expand(horizon, interval int64, countAt func(t int64) int) []Arrival {
	arrivals := make([]Arrival, 0, horizon/interval)
	for t := int64(0); t < horizon; t += interval {
		if n := countAt(t); n > 0 {
			arrivals = append(arrivals, Arrival{Time: t, Count: n})
		}
	}
	return arrivals
}

// Config selects and parameterizes a pattern. Only the knobs relevant to
// the chosen pattern are read; the rest may stay zero.
type Config struct {
	Pattern   string  `yaml:"pattern"`   // step (default), ramp, sinusoidal, uniform-random, poisson
	Count     int     `yaml:"count"`     // step count / sinusoidal average
	DeltaV    int     `yaml:"delta_v"`   // ramp increment per interval
	Min       int     `yaml:"min"`       // uniform-random lower bound
	Max       int     `yaml:"max"`       // ramp cap / uniform-random upper bound
	Amplitude int     `yaml:"amplitude"` // sinusoidal swing
	Period    int64   `yaml:"period"`    // sinusoidal period (ticks)
	Mean      float64 `yaml:"mean"`      // poisson mean per interval
}

// New constructs a pattern from cfg. Unknown names are an error so
// scenario typos fail fast.
func New(cfg Config, rng *rand.Rand) (Pattern, error) {
	switch cfg.Pattern {
	case "", "step":
		return Step{Count: cfg.Count}, nil
	case "ramp":
		return Ramp{DeltaV: cfg.DeltaV, Max: cfg.Max}, nil
	case "sinusoidal":
		return Sinusoidal{Average: cfg.Count, Amplitude: cfg.Amplitude, Period: cfg.Period}, nil
	case "uniform-random":
		if cfg.Max < cfg.Min {
			return nil, fmt.Errorf("uniform-random: max (%d) must be >= min (%d)", cfg.Max, cfg.Min)
		}
		return UniformRandom{Min: cfg.Min, Max: cfg.Max, Rand: rng}, nil
	case "poisson":
		return Poisson{Mean: cfg.Mean, Rand: rng}, nil
	default:
		return nil, fmt.Errorf("unknown traffic pattern %q", cfg.Pattern)
	}
}
