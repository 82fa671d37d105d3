// Package trendmodel defines the predictor contract the generator evaluates
// per axis, plus a small set of concrete models. Models map elapsed seconds
// to expected axis values; they capture the slow drift of a healthy sensor,
// not the noise or the anomalies around it.
package trendmodel

import (
	"errors"

	"github.com/synaptecltd/synthdata/shape"
)

// Model is the capability contract for per-axis trend prediction.
// Predict evaluates the model on a column of elapsed seconds and returns
// one predicted value per input. Implementations must not retain or
// mutate the input slice.
type Model interface {
	Predict(elapsedSec []float64) []float64
	TypeAsString() string
}

// Line predicts y = Intercept + Slope*t. This mirrors the coefficients of a
// fitted univariate linear regression; fitting itself is out of scope, the
// caller supplies the coefficients.
type Line struct {
	Intercept float64 `yaml:"intercept"`
	Slope     float64 `yaml:"slope"`
}

func (m *Line) Predict(elapsedSec []float64) []float64 {
	out := make([]float64, len(elapsedSec))
	for i, t := range elapsedSec {
		out[i] = m.Intercept + m.Slope*t
	}
	return out
}

func (m *Line) TypeAsString() string {
	return "line"
}

// Flat predicts a constant value for every input.
type Flat struct {
	Value float64 `yaml:"value"`
}

func (m *Flat) Predict(elapsedSec []float64) []float64 {
	out := make([]float64, len(elapsedSec))
	for i := range out {
		out[i] = m.Value
	}
	return out
}

func (m *Flat) TypeAsString() string {
	return "flat"
}

// shapeModel predicts y = Base + f(t, Amplitude, PeriodSec) where f is a
// named shape function. Used for axes without a fitted model.
type shapeModel struct {
	base      float64
	amplitude float64
	periodSec float64
	funcName  string

	shapeFunc shape.Function // set internally from funcName
}

// Parameters to request a shape model.
type ShapeParams struct {
	Base      float64 `yaml:"base"`       // offset added to the shape output
	Amplitude float64 `yaml:"amplitude"`  // amplitude passed to the shape function
	PeriodSec float64 `yaml:"period_sec"` // period passed to the shape function, in seconds
	FuncName  string  `yaml:"func"`       // name of the shape function, defaults to "linear" if empty
}

// Returns a shapeModel pointer with the requested parameters, checking for
// invalid values.
func NewShape(params ShapeParams) (*shapeModel, error) {
	m := &shapeModel{
		base:      params.Base,
		amplitude: params.Amplitude,
	}

	if err := m.SetPeriodSec(params.PeriodSec); err != nil {
		return nil, err
	}
	if err := m.SetFuncByName(params.FuncName); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *shapeModel) Predict(elapsedSec []float64) []float64 {
	out := make([]float64, len(elapsedSec))
	for i, t := range elapsedSec {
		out[i] = m.base + m.shapeFunc(t, m.amplitude, m.periodSec)
	}
	return out
}

func (m *shapeModel) TypeAsString() string {
	return "shape"
}

// Setters

// Sets the period of the shape function in seconds if periodSec > 0.
func (m *shapeModel) SetPeriodSec(periodSec float64) error {
	if periodSec <= 0 {
		return errors.New("period_sec must be greater than 0")
	}
	m.periodSec = periodSec
	return nil
}

// Sets the shape function by name. Defaults to "linear" if the name is empty.
func (m *shapeModel) SetFuncByName(name string) error {
	if name == "" {
		name = "linear"
	}
	shapeFunc, err := shape.FromName(name)
	if err != nil {
		return err
	}
	m.shapeFunc = shapeFunc
	m.funcName = name
	return nil
}

// Getters

func (m *shapeModel) GetFuncName() string {
	return m.funcName
}
