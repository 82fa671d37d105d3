package anomaly

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// spikeInjector produces instantaneous single-row anomalies: each row of
// each targeted axis spikes independently based on a probability factor.
type spikeInjector struct {
	// Private fields have setters for invalid value checking

	probability   float64 // probability of a spike on each row, default 0
	magnitude     float64 // magnitude of spikes, default 0
	varyMagnitude bool    // whether to apply Gaussian variation to the magnitude of spikes, default false
	axis          string  // the axis to spike, empty targets every axis
}

// Parameters used to request a spike injector. These map onto the fields of
// spikeInjector.
type SpikeParams struct {
	Probability   float64 `yaml:"probability"`    // probability of a spike on each row
	Magnitude     float64 `yaml:"magnitude"`      // magnitude of spikes
	VaryMagnitude bool    `yaml:"vary_magnitude"` // whether to vary the magnitude of spikes, default false
	Axis          string  `yaml:"axis"`           // the axis to spike, empty targets every axis
}

// Returns a spikeInjector pointer with the requested parameters, checking
// for invalid values.
func NewSpike(params SpikeParams) (*spikeInjector, error) {
	spikeInjector := &spikeInjector{}

	// Invalid values checked by setters
	if err := spikeInjector.SetProbability(params.Probability); err != nil {
		return nil, err
	}

	// Fields that can never be invalid set directly
	spikeInjector.magnitude = params.Magnitude
	spikeInjector.varyMagnitude = params.VaryMagnitude
	spikeInjector.axis = params.Axis

	return spikeInjector, nil
}

func (s *spikeInjector) TypeAsString() string {
	return "spike"
}

// Validate fails when the injector names an axis the generation does not
// produce.
func (s *spikeInjector) Validate(env Env) error {
	if s.axis == "" {
		return nil
	}
	for _, axis := range env.Axes {
		if axis == s.axis {
			return nil
		}
	}
	return fmt.Errorf("spike injector targets unknown axis %q", s.axis)
}

// Inject walks every row of each targeted axis and applies a spike when the
// probability draw is met.
func (s *spikeInjector) Inject(r *rand.Rand, tbl Target, env Env) error {
	nRows := tbl.NRows()
	if nRows == 0 {
		return nil
	}

	for _, axis := range s.targetAxes(env) {
		for i := 0; i < nRows; i++ {
			// No spike if probability is not met
			if r.Float64() > s.probability {
				continue
			}

			delta := s.magnitude
			if s.varyMagnitude {
				delta *= r.NormFloat64()
			}

			if err := tbl.AddLift(axis, i, i+1, delta); err != nil {
				return err
			}
		}
	}

	return nil
}

// Returns the axes this injector perturbs: the configured axis, or every
// generated axis when none is named.
func (s *spikeInjector) targetAxes(env Env) []string {
	if s.axis == "" {
		return env.Axes
	}
	return []string{s.axis}
}

// Setters

// Set probability of a spike occurring on each row if 0 <= probability <= 1.
func (s *spikeInjector) SetProbability(probability float64) error {
	if probability < 0 || probability > 1 {
		return errors.New("probability must be between 0 and 1")
	}
	s.probability = probability
	return nil
}

// Getters

func (s *spikeInjector) GetProbability() float64 {
	return s.probability
}

func (s *spikeInjector) GetMagnitude() float64 {
	return s.magnitude
}

func (s *spikeInjector) GetAxis() string {
	return s.axis
}
