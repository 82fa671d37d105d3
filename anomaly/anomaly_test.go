package anomaly_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/synaptecltd/synthdata/anomaly"
	"gopkg.in/yaml.v2"
)

func TestContainerUnmarshalYAML(t *testing.T) {
	yamlStr := `
block1:
  type: block
  count: 5
  min_duration_sec: 20.0
  max_duration_sec: 25.0
  force_above: true
spike1:
  type: spike
  probability: 0.01
  magnitude: 4.0
  axis: axis1
`
	container := make(anomaly.Container)
	err := yaml.Unmarshal([]byte(yamlStr), &container)
	assert.NoError(t, err)
	assert.Len(t, container, 2)

	assert.Equal(t, "block", container["block1"].TypeAsString())
	assert.Equal(t, "spike", container["spike1"].TypeAsString())
}

func TestContainerUnmarshalYAMLErrors(t *testing.T) {
	testCases := []struct {
		name    string
		yamlStr string
	}{
		{
			name:    "missing type",
			yamlStr: "a:\n  count: 5\n",
		},
		{
			name:    "unknown type",
			yamlStr: "a:\n  type: wobble\n",
		},
		{
			name:    "invalid block params",
			yamlStr: "a:\n  type: block\n  count: 1\n  min_duration_sec: 0\n",
		},
		{
			name:    "invalid spike params",
			yamlStr: "a:\n  type: spike\n  probability: 2.0\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			container := make(anomaly.Container)
			err := yaml.Unmarshal([]byte(tc.yamlStr), &container)
			assert.Error(t, err)
		})
	}
}

func TestContainerAdd(t *testing.T) {
	inj, err := anomaly.NewSpike(anomaly.SpikeParams{Probability: 0.5})
	assert.NoError(t, err)

	container := make(anomaly.Container)
	id := container.Add(inj)

	assert.Len(t, container, 1)
	assert.Equal(t, inj, container[id.String()])
}

func TestContainerSortedIsStable(t *testing.T) {
	spike, err := anomaly.NewSpike(anomaly.SpikeParams{Probability: 0.5})
	assert.NoError(t, err)
	block, err := anomaly.NewBlock(anomaly.BlockParams{Count: 1, MinDurationSec: 1, MaxDurationSec: 1})
	assert.NoError(t, err)

	container := anomaly.Container{"b": spike, "a": block}

	first := container.Sorted()
	second := container.Sorted()
	assert.Equal(t, first, second)
	assert.Equal(t, "block", first[0].TypeAsString())
	assert.Equal(t, "spike", first[1].TypeAsString())
}

func TestGetDecodeHook(t *testing.T) {
	hook, err := anomaly.GetDecodeHook()
	assert.NoError(t, err)
	assert.NotNil(t, hook)
}

type countingTarget struct{ lifts int }

func (c *countingTarget) NRows() int { return 10 }
func (c *countingTarget) AddLift(string, int, int, float64) error {
	c.lifts++
	return nil
}

func TestContainerInjectAll(t *testing.T) {
	yamlStr := `
s1:
  type: spike
  probability: 1.0
  magnitude: 1.0
s2:
  type: spike
  probability: 1.0
  magnitude: 2.0
`
	container := make(anomaly.Container)
	assert.NoError(t, yaml.Unmarshal([]byte(yamlStr), &container))

	tbl := &countingTarget{}
	env := anomaly.Env{Axes: []string{"axis1"}, SampleIntervalSec: 1.0}

	r := rand.New(rand.NewPCG(11, 0))
	assert.NoError(t, container.InjectAll(r, tbl, env))
	assert.Equal(t, 20, tbl.lifts) // both spikes hit all 10 rows
}
