package anomaly

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Lift multiplier ranges. Threshold-relative lifts land well clear of the
// declared bound so detectors see the block regardless of where the
// baseline sits; noise-relative lifts scale with the calibrated noise floor
// and carry no crossing guarantee.
const (
	thresholdLiftMin = 1.2
	thresholdLiftMax = 1.5
	noiseLiftMin     = 2.5
	noiseLiftMax     = 4.0
)

// blockInjector additively lifts contiguous row ranges on randomly chosen
// axes. Each round draws a block duration, a start row and an axis, then
// applies one lift across the block. Blocks are independent: overlapping
// blocks on the same axis accumulate.
type blockInjector struct {
	// Private fields have setters for invalid value checking

	count          int     // number of independent injection rounds
	minDurationSec float64 // minimum block duration in seconds
	maxDurationSec float64 // maximum block duration in seconds
	forceAbove     bool    // true: lift relative to the axis upper threshold, false: relative to noise
}

// Parameters used to request a block injector. These map onto the fields of
// blockInjector.
type BlockParams struct {
	Count          int     `yaml:"count"`            // number of blocks to inject
	MinDurationSec float64 `yaml:"min_duration_sec"` // minimum block duration in seconds
	MaxDurationSec float64 `yaml:"max_duration_sec"` // maximum block duration in seconds
	ForceAbove     bool    `yaml:"force_above"`      // whether lifts are guaranteed to exceed the axis upper threshold
}

// Returns a blockInjector pointer with the requested parameters, checking
// for invalid values.
func NewBlock(params BlockParams) (*blockInjector, error) {
	blockInjector := &blockInjector{}

	// Invalid values checked by setters
	if err := blockInjector.SetCount(params.Count); err != nil {
		return nil, err
	}
	if err := blockInjector.SetDurationRange(params.MinDurationSec, params.MaxDurationSec); err != nil {
		return nil, err
	}

	// Fields that can never be invalid set directly
	blockInjector.forceAbove = params.ForceAbove

	return blockInjector, nil
}

func (b *blockInjector) TypeAsString() string {
	return "block"
}

// Validate fails when force-above mode is requested against a threshold map
// that lacks an entry for any axis the injector could draw. Checking every
// axis up front keeps the no-partial-output contract: a missing threshold
// surfaces before any row is perturbed, not mid-injection.
func (b *blockInjector) Validate(env Env) error {
	if !b.forceAbove || env.UpperThresholds == nil {
		return nil
	}
	for _, axis := range env.Axes {
		if _, ok := env.UpperThresholds[axis]; !ok {
			return fmt.Errorf("force above requested but no upper threshold declared for axis %q", axis)
		}
	}
	return nil
}

// Inject performs the configured number of injection rounds against tbl.
// Each round advances r by exactly four draws: duration, start row, axis,
// lift multiplier. An empty table or axis list is a no-op.
func (b *blockInjector) Inject(r *rand.Rand, tbl Target, env Env) error {
	nRows := tbl.NRows()
	if nRows == 0 || len(env.Axes) == 0 {
		return nil
	}

	for round := 0; round < b.count; round++ {
		durationSec := uniform(r, b.minDurationSec, b.maxDurationSec)
		lenRows := int(math.Round(durationSec / env.SampleIntervalSec))
		if lenRows < 1 {
			lenRows = 1
		}

		maxStart := nRows - lenRows
		if maxStart < 1 {
			maxStart = 1
		}
		start := r.IntN(maxStart)

		// Blocks that would overrun the table are truncated
		end := start + lenRows
		if end > nRows {
			end = nRows
		}

		axis := env.Axes[r.IntN(len(env.Axes))]

		var lift float64
		if b.forceAbove && env.UpperThresholds != nil {
			bound, ok := env.UpperThresholds[axis]
			if !ok {
				return fmt.Errorf("no upper threshold for axis %q", axis)
			}
			lift = math.Abs(bound) * uniform(r, thresholdLiftMin, thresholdLiftMax)
		} else {
			lift = math.Abs(env.NoiseStd[axis]) * uniform(r, noiseLiftMin, noiseLiftMax)
		}

		if err := tbl.AddLift(axis, start, end, lift); err != nil {
			return err
		}

		if env.Log != nil {
			env.Log.Debug().
				Str("block_id", uuid.New().String()).
				Str("axis", axis).
				Int("start", start).
				Int("end", end).
				Float64("lift", lift).
				Msg("injected anomaly block")
		}
	}

	return nil
}

// Setters

// Sets the number of injection rounds if count >= 0.
func (b *blockInjector) SetCount(count int) error {
	if count < 0 {
		return errors.New("count must be greater than or equal to 0")
	}
	b.count = count
	return nil
}

// Sets the block duration range in seconds if 0 < min <= max.
func (b *blockInjector) SetDurationRange(minSec, maxSec float64) error {
	if minSec <= 0 {
		return errors.New("min duration must be greater than 0")
	}
	if maxSec < minSec {
		return errors.New("max duration must be greater than or equal to min duration")
	}
	b.minDurationSec = minSec
	b.maxDurationSec = maxSec
	return nil
}

// Getters

func (b *blockInjector) GetCount() int {
	return b.count
}

func (b *blockInjector) GetDurationRange() (float64, float64) {
	return b.minDurationSec, b.maxDurationSec
}

func (b *blockInjector) GetForceAbove() bool {
	return b.forceAbove
}
