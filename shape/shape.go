package shape

import (
	"errors"
	"math"
)

// A shape function y=f(t,A,T). Takes amplitude, A, and period, T,
// as inputs and returns the value of the shape at elapsed time, t.
// Shape functions are deterministic so that seeded generation stays
// reproducible; calibrated noise is added by the generator, not here.
type Function func(t, A, T float64) float64

// A map between string name and shape function pairs
var shapeFunctions = map[string]Function{
	"linear":            linearRamp,
	"sine":              sineWave,
	"cosine":            cosineWave,
	"exponential":       exponentialRamp,
	"exponential_decay": exponentialDecay,
	"parabolic":         parabolicRamp,
	"step":              stepFunction,
	"square":            squareWave,
	"sawtooth":          sawtoothWave,
	"flat":              flat,
}

// Returns the names of all registered shape functions.
func Names() []string {
	names := make([]string, 0, len(shapeFunctions))
	for name := range shapeFunctions {
		names = append(names, name)
	}
	return names
}

// Returns the named shape function.
func FromName(name string) (Function, error) {
	shapeFunc, ok := shapeFunctions[name]
	if !ok {
		return nil, errors.New("shape function not found")
	}

	return shapeFunc, nil
}

// Returns a linear ramp y=(A/T)*t where A is the magnitude of the ramp, T is
// its duration, and t is elapsed time.
func linearRamp(t, A, T float64) float64 {
	m := A / T // slope of the ramp
	return m * t
}

// Returns a sine wave y=A*sin(2*pi*t/T) where A is the amplitude,
// T is the period, and t is elapsed time.
func sineWave(t, A, T float64) float64 {
	return A * math.Sin(2*math.Pi*t/T)
}

// Returns a cosine wave y=A*cos(2*pi*t/T) where A is the amplitude,
// T is the period, and t is elapsed time.
func cosineWave(t, A, T float64) float64 {
	return A * math.Cos(2*math.Pi*t/T)
}

// Returns an exponential ramp y=A*exp(t/T) - A where A is the amplitude,
// T is the time constant, and t is elapsed time.
func exponentialRamp(t, A, T float64) float64 {
	return A*math.Exp(t/T) - A
}

// Returns an exponential decay y=A*exp(-t/T) where A is the amplitude,
// T is the time constant, and t is elapsed time.
func exponentialDecay(t, A, T float64) float64 {
	return A * math.Exp(-t/T)
}

// Returns a parabolic ramp of amplitude A every period T.
func parabolicRamp(t, A, T float64) float64 {
	return A * (t / T) * (t / T) // faster power of two compared to math.Pow(t/T, 2)
}

// Returns a step function of amplitude A every period T.
func stepFunction(t, A, T float64) float64 {
	if math.Mod(t, T) < T/2 {
		return 0
	} else {
		return A
	}
}

// Returns a square wave y=A if sin(2*pi*t/T) >= 0, else -A,
// where A is the amplitude, T is the period, and t is elapsed time.
func squareWave(t, A, T float64) float64 {
	if math.Sin(2*math.Pi*t/T) >= 0 {
		return A
	} else {
		return -A
	}
}

// Returns a sawtooth wave y=(2*A/pi)*atan(tan(pi*t/T)),
// where A is the amplitude, T is the period, and t is elapsed time.
func sawtoothWave(t, A, T float64) float64 {
	return (2 * A / math.Pi) * math.Atan(math.Tan(math.Pi*t/T))
}

// flat returns a constant value equal to A (amplitude),
// independent of time t or period T.
func flat(t, A, T float64) float64 {
	return A
}
