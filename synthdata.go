// Package synthdata generates synthetic time-series sensor data for testing
// anomaly-detection pipelines. Given per-axis trend models and residual
// statistics from real training data, it produces a plausible continuation
// series with injected anomalous segments whose detectability can be
// controlled.
package synthdata

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/synaptecltd/synthdata/anomaly"
	"github.com/synaptecltd/synthdata/trendmodel"
)

// defaultNoiseStd calibrates axis noise when no training residuals are
// supplied.
const defaultNoiseStd = 1.0

// Parameters used to request a generator. These map onto the fields of
// Generator.
type Params struct {
	Axes              []string             `yaml:"axes"`                // axis column names
	NRows             *int                 `yaml:"n_rows"`              // number of synthetic rows, nil defaults to the reference row count, 0 requests an empty table
	SampleIntervalSec float64              `yaml:"sample_interval_sec"` // sampling interval in seconds, non-positive estimates from the reference
	AnomalyBlocks     int                  `yaml:"anomaly_blocks"`      // number of anomalous blocks to inject
	BlockMinSec       float64              `yaml:"block_min_sec"`       // minimum block duration in seconds
	BlockMaxSec       float64              `yaml:"block_max_sec"`       // maximum block duration in seconds
	DriftPerSec       float64              `yaml:"drift_per_sec"`       // linear drift added per elapsed second, default 0
	Seed              uint64               `yaml:"seed"`                // random seed for reproducibility
	ForceAbove        bool                 `yaml:"force_above"`         // whether block lifts are guaranteed to exceed the axis upper threshold
	Residuals         map[string][]float64 `yaml:"residuals"`           // training prediction errors per axis, used to calibrate noise
	LowerThresholds   map[string]float64   `yaml:"lower_thresholds"`    // per-axis lower bound, unused by generation but carried for detector configs
	UpperThresholds   map[string]float64   `yaml:"upper_thresholds"`    // per-axis upper bound, read by force-above block injection
}

// DefaultParams returns generation parameters with the standard block and
// seed defaults. Axes, models and thresholds must still be supplied.
func DefaultParams() Params {
	return Params{
		AnomalyBlocks: 10,
		BlockMinSec:   20,
		BlockMaxSec:   25,
		Seed:          42,
		ForceAbove:    true,
	}
}

// Generator produces synthetic continuation tables. A generator is
// reusable and safe to call repeatedly; each Generate call owns its own
// seeded random source, so identical inputs produce identical tables.
// Concurrent calls on one generator are fine since Generate never mutates
// generator state.
type Generator struct {
	// Private fields have setters for invalid value checking

	axes              []string
	nRows             int // negative defers to the reference row count, 0 is an explicit empty table
	sampleIntervalSec float64
	anomalyBlocks     int
	blockMinSec       float64
	blockMaxSec       float64
	driftPerSec       float64
	seed              uint64
	forceAbove        bool
	noiseStd          map[string]float64 // per-axis residual standard deviation, defaultNoiseStd when absent
	lowerThresholds   map[string]float64
	upperThresholds   map[string]float64

	log zerolog.Logger
}

// Returns a Generator pointer with the requested parameters, checking for
// invalid values.
func New(params Params) (*Generator, error) {
	g := &Generator{nRows: -1, log: zerolog.Nop()}

	// Invalid values checked by setters
	if params.NRows != nil {
		if err := g.SetNRows(*params.NRows); err != nil {
			return nil, err
		}
	}
	if err := g.SetAnomalyBlocks(params.AnomalyBlocks); err != nil {
		return nil, err
	}
	if params.AnomalyBlocks > 0 {
		if err := g.SetBlockDuration(params.BlockMinSec, params.BlockMaxSec); err != nil {
			return nil, err
		}
	}

	// Fields that can never be invalid set directly
	g.axes = append([]string(nil), params.Axes...)
	g.sampleIntervalSec = params.SampleIntervalSec
	g.driftPerSec = params.DriftPerSec
	g.seed = params.Seed
	g.forceAbove = params.ForceAbove
	g.lowerThresholds = params.LowerThresholds
	g.upperThresholds = params.UpperThresholds
	g.noiseStd = noiseStdFromResiduals(g.axes, params.Residuals)

	return g, nil
}

// WithLogger sets the logger used for generation debug events and returns
// the generator.
func (g *Generator) WithLogger(log zerolog.Logger) *Generator {
	g.log = log
	return g
}

// Generate produces a synthetic continuation of the training reference. It
// builds the time axis, evaluates each axis's trend model plus calibrated
// Gaussian noise and optional drift, then applies anomaly injection. Extra
// injectors run after the generator's own block injector, in argument
// order. Returns the output table and the resolved sampling interval in
// seconds.
//
// Generation either fully succeeds or returns an error with no table;
// configuration problems (missing models, missing force-above thresholds)
// are surfaced before any random draw.
func (g *Generator) Generate(ref Reference, models trendmodel.Container, extra ...anomaly.Injector) (*Table, float64, error) {
	intervalSec := resolveIntervalSec(g.sampleIntervalSec, ref)

	nRows := g.nRows
	if nRows < 0 {
		nRows = ref.NRows()
	}

	for _, axis := range g.axes {
		if _, ok := models[axis]; !ok {
			return nil, 0, fmt.Errorf("no trend model for axis %q", axis)
		}
	}

	env := anomaly.Env{
		Axes:              g.axes,
		SampleIntervalSec: intervalSec,
		NoiseStd:          g.noiseStd,
		UpperThresholds:   g.upperThresholds,
		Log:               &g.log,
	}

	injectors := make([]anomaly.Injector, 0, 1+len(extra))
	if g.anomalyBlocks > 0 {
		blocks, err := anomaly.NewBlock(anomaly.BlockParams{
			Count:          g.anomalyBlocks,
			MinDurationSec: g.blockMinSec,
			MaxDurationSec: g.blockMaxSec,
			ForceAbove:     g.forceAbove,
		})
		if err != nil {
			return nil, 0, err
		}
		injectors = append(injectors, blocks)
	}
	injectors = append(injectors, extra...)

	// Surface configuration errors before any draw so no partial output
	// is ever produced
	for _, inj := range injectors {
		if err := inj.Validate(env); err != nil {
			return nil, 0, err
		}
	}

	times, numeric := buildTimeAxis(ref, nRows, intervalSec)
	tbl, err := NewTable(times, numeric, g.axes)
	if err != nil {
		return nil, 0, err
	}

	// One seeded source per call; draw order is axis-major for noise, then
	// block-major for injection, and must stay that way for reproducibility
	r := rand.New(rand.NewPCG(g.seed, 0))

	for _, axis := range g.axes {
		predicted := models[axis].Predict(numeric)
		if len(predicted) != nRows {
			return nil, 0, fmt.Errorf("model for axis %q predicted %d values for %d rows", axis, len(predicted), nRows)
		}

		std := g.noiseStd[axis]
		col := make([]float64, nRows)
		for i := range col {
			col[i] = predicted[i] + r.NormFloat64()*std + g.driftPerSec*numeric[i]
		}
		if err := tbl.setColumn(axis, col); err != nil {
			return nil, 0, err
		}
	}

	for _, inj := range injectors {
		if err := inj.Inject(r, tbl, env); err != nil {
			return nil, 0, err
		}
	}

	g.log.Debug().
		Float64("interval_sec", intervalSec).
		Int("rows", nRows).
		Int("axes", len(g.axes)).
		Int("anomaly_blocks", g.anomalyBlocks).
		Int("extra_injectors", len(extra)).
		Msg("generated synthetic table")

	return tbl, intervalSec, nil
}

// Setters

// Sets the number of synthetic rows if nRows >= 0. Zero is an explicit
// request for an empty table; leaving Params.NRows nil defers to the
// reference row count at generation time.
func (g *Generator) SetNRows(nRows int) error {
	if nRows < 0 {
		return errors.New("n_rows must be greater than or equal to 0")
	}
	g.nRows = nRows
	return nil
}

// Sets the number of anomaly blocks if anomalyBlocks >= 0.
func (g *Generator) SetAnomalyBlocks(anomalyBlocks int) error {
	if anomalyBlocks < 0 {
		return errors.New("anomaly_blocks must be greater than or equal to 0")
	}
	g.anomalyBlocks = anomalyBlocks
	return nil
}

// Sets the block duration range in seconds if 0 < min <= max.
func (g *Generator) SetBlockDuration(minSec, maxSec float64) error {
	if minSec <= 0 {
		return errors.New("block_min_sec must be greater than 0")
	}
	if maxSec < minSec {
		return errors.New("block_max_sec must be greater than or equal to block_min_sec")
	}
	g.blockMinSec = minSec
	g.blockMaxSec = maxSec
	return nil
}

// Getters

func (g *Generator) GetAxes() []string {
	return append([]string(nil), g.axes...)
}

func (g *Generator) GetNoiseStd() map[string]float64 {
	out := make(map[string]float64, len(g.noiseStd))
	for axis, std := range g.noiseStd {
		out[axis] = std
	}
	return out
}

// Returns the per-axis noise standard deviation: the population standard
// deviation of the axis's training residuals, or defaultNoiseStd when no
// residuals are available for that axis.
func noiseStdFromResiduals(axes []string, residuals map[string][]float64) map[string]float64 {
	noiseStd := make(map[string]float64, len(axes))
	for _, axis := range axes {
		samples := residuals[axis]
		if len(samples) == 0 {
			noiseStd[axis] = defaultNoiseStd
			continue
		}
		noiseStd[axis] = populationStd(samples)
	}
	return noiseStd
}

// Returns the population standard deviation of values.
func populationStd(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)
}
