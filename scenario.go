package synthdata

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/synaptecltd/synthdata/anomaly"
	"github.com/synaptecltd/synthdata/trendmodel"
)

// Scenario is a complete yaml-configurable generation request: generator
// parameters, per-axis trend models and any extra injectors beyond the
// generator's own anomaly blocks.
type Scenario struct {
	Generator Params               `yaml:"generator"`
	Models    trendmodel.Container `yaml:"models"`
	Anomalies anomaly.Container    `yaml:"anomalies"`
}

// LoadScenario unmarshals a yaml scenario document. Generator parameters
// not present in the document keep the DefaultParams values.
func LoadScenario(data []byte) (*Scenario, error) {
	s := &Scenario{
		Generator: DefaultParams(),
		Models:    make(trendmodel.Container),
		Anomalies: make(anomaly.Container),
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	return s, nil
}

// Run builds the generator and produces the scenario's synthetic table.
// Extra injectors are applied in container key order so that repeated runs
// of the same scenario draw in the same sequence.
func (s *Scenario) Run(ref Reference) (*Table, float64, error) {
	g, err := New(s.Generator)
	if err != nil {
		return nil, 0, err
	}
	return g.Generate(ref, s.Models, s.Anomalies.Sorted()...)
}
