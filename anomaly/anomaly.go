// Package anomaly perturbs synthetic sensor tables with detectable fault
// signatures. Injectors mutate an owned output table additively; the table
// rows themselves are never reordered or replaced.
package anomaly

import (
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Target is the mutable output table an injector perturbs. AddLift adds
// lift to rows [start, end) of the named axis column and must reject
// out-of-range indices and unknown axes.
type Target interface {
	NRows() int
	AddLift(axis string, start, end int, lift float64) error
}

// Env carries the per-generation calibration injectors draw from.
type Env struct {
	Axes              []string           // axis names, in generation order
	SampleIntervalSec float64            // resolved sampling interval in seconds
	NoiseStd          map[string]float64 // per-axis noise standard deviation
	UpperThresholds   map[string]float64 // per-axis upper bound, nil if none declared
	Log               *zerolog.Logger    // logger for injection debug events, nil disables logging
}

// Injector is the interface for all injector types (blocks, spikes, etc).
type Injector interface {
	TypeAsString() string                           // Returns the injector type as a string
	Validate(env Env) error                         // Checks the injector configuration against the generation environment
	Inject(r *rand.Rand, tbl Target, env Env) error // Draws from r and perturbs tbl in place
}

// Container is a collection of injectors keyed by name.
type Container map[string]Injector

// Add an injector to the container with a UUID key and returns the UUID.
func (c *Container) Add(inj Injector) uuid.UUID {
	id := uuid.New()
	(*c)[id.String()] = inj
	return id
}

// Sorted returns the container's injectors in key order. Map iteration
// order is not stable, so callers that need reproducible draw sequences
// must apply injectors through this.
func (c Container) Sorted() []Injector {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	injectors := make([]Injector, 0, len(keys))
	for _, key := range keys {
		injectors = append(injectors, c[key])
	}
	return injectors
}

// InjectAll applies every injector in the container to tbl in key order.
func (c Container) InjectAll(r *rand.Rand, tbl Target, env Env) error {
	for _, inj := range c.Sorted() {
		if err := inj.Inject(r, tbl, env); err != nil {
			return err
		}
	}
	return nil
}

// Returns lo + U(0,1)*(hi-lo), a uniform draw on [lo, hi).
func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
