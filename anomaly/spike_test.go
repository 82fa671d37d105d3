package anomaly

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSpikeInvalidProbability(t *testing.T) {
	_, err := NewSpike(SpikeParams{Probability: -0.1})
	assert.Error(t, err)

	_, err = NewSpike(SpikeParams{Probability: 1.1})
	assert.Error(t, err)
}

func TestSpikeValidateAxis(t *testing.T) {
	inj, err := NewSpike(SpikeParams{Probability: 0.5, Axis: "axis9"})
	assert.NoError(t, err)

	err = inj.Validate(Env{Axes: []string{"axis1", "axis2"}})
	assert.Error(t, err)
	assert.ErrorContains(t, err, "axis9")

	inj, err = NewSpike(SpikeParams{Probability: 0.5, Axis: "axis2"})
	assert.NoError(t, err)
	assert.NoError(t, inj.Validate(Env{Axes: []string{"axis1", "axis2"}}))

	// Unnamed axis targets everything and always validates
	inj, err = NewSpike(SpikeParams{Probability: 0.5})
	assert.NoError(t, err)
	assert.NoError(t, inj.Validate(Env{Axes: []string{"axis1"}}))
}

func TestSpikeInjectCertainProbability(t *testing.T) {
	inj, err := NewSpike(SpikeParams{Probability: 1.0, Magnitude: 3.0})
	assert.NoError(t, err)

	tbl := newFakeTarget(20, "axis1", "axis2")
	env := Env{Axes: []string{"axis1", "axis2"}}

	r := rand.New(rand.NewPCG(7, 0))
	assert.NoError(t, inj.Inject(r, tbl, env))

	for _, axis := range env.Axes {
		for i, v := range tbl.cols[axis] {
			assert.Equal(t, 3.0, v, "axis %s row %d", axis, i)
		}
	}
}

func TestSpikeInjectZeroProbability(t *testing.T) {
	inj, err := NewSpike(SpikeParams{Probability: 0.0, Magnitude: 3.0})
	assert.NoError(t, err)

	tbl := newFakeTarget(50, "axis1")
	r := rand.New(rand.NewPCG(8, 0))
	assert.NoError(t, inj.Inject(r, tbl, Env{Axes: []string{"axis1"}}))

	for _, v := range tbl.cols["axis1"] {
		assert.Zero(t, v)
	}
}

func TestSpikeInjectTargetsNamedAxisOnly(t *testing.T) {
	inj, err := NewSpike(SpikeParams{Probability: 1.0, Magnitude: 2.0, Axis: "axis2"})
	assert.NoError(t, err)

	tbl := newFakeTarget(10, "axis1", "axis2")
	r := rand.New(rand.NewPCG(9, 0))
	assert.NoError(t, inj.Inject(r, tbl, Env{Axes: []string{"axis1", "axis2"}}))

	for _, v := range tbl.cols["axis1"] {
		assert.Zero(t, v)
	}
	for _, v := range tbl.cols["axis2"] {
		assert.Equal(t, 2.0, v)
	}
}

func TestSpikeInjectVaryMagnitude(t *testing.T) {
	inj, err := NewSpike(SpikeParams{Probability: 1.0, Magnitude: 2.0, VaryMagnitude: true})
	assert.NoError(t, err)

	tbl := newFakeTarget(100, "axis1")
	r := rand.New(rand.NewPCG(10, 0))
	assert.NoError(t, inj.Inject(r, tbl, Env{Axes: []string{"axis1"}}))

	// Gaussian-scaled spikes vary row to row
	distinct := make(map[float64]struct{})
	for _, v := range tbl.cols["axis1"] {
		distinct[v] = struct{}{}
	}
	assert.Greater(t, len(distinct), 1)
}
