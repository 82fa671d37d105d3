package synthdata

import (
	"math"
	"sort"
	"time"
)

// fallbackIntervalSec is used when no usable interval can be resolved from
// the caller or the training reference.
const fallbackIntervalSec = 1.0

// Reference describes the training window a synthetic series continues
// from. Only the timestamps are consulted: they anchor the start of the
// synthetic series and calibrate its sampling cadence.
type Reference struct {
	Times []time.Time
}

// NRows returns the number of observations in the reference.
func (ref Reference) NRows() int {
	return len(ref.Times)
}

// End returns the last timestamp of the reference, or the zero time when
// the reference is empty.
func (ref Reference) End() time.Time {
	if len(ref.Times) == 0 {
		return time.Time{}
	}
	end := ref.Times[0]
	for _, t := range ref.Times[1:] {
		if t.After(end) {
			end = t
		}
	}
	return end
}

// MedianIntervalSec returns the median of consecutive timestamp differences
// in seconds. Returns NaN for fewer than two observations; the result may
// be zero or negative for duplicate or non-monotonic timestamps, which
// callers must treat as unusable.
func (ref Reference) MedianIntervalSec() float64 {
	if len(ref.Times) < 2 {
		return math.NaN()
	}

	diffs := make([]float64, len(ref.Times)-1)
	for i := 1; i < len(ref.Times); i++ {
		diffs[i-1] = ref.Times[i].Sub(ref.Times[i-1]).Seconds()
	}
	sort.Float64s(diffs)

	mid := len(diffs) / 2
	if len(diffs)%2 == 1 {
		return diffs[mid]
	}
	return (diffs[mid-1] + diffs[mid]) / 2
}

// resolveIntervalSec applies the interval resolution policy: a finite
// positive caller value wins, else the reference median, else 1.0s.
func resolveIntervalSec(requested float64, ref Reference) float64 {
	if !math.IsNaN(requested) && !math.IsInf(requested, 0) && requested > 0 {
		return requested
	}

	median := ref.MedianIntervalSec()
	if math.IsNaN(median) || math.IsInf(median, 0) || median <= 0 {
		return fallbackIntervalSec
	}
	return median
}

// buildTimeAxis returns nRows timestamps starting one interval after the
// reference end, plus the parallel elapsed-seconds column. The elapsed
// values are computed as i*interval directly so that TimeNumeric[0] is
// exactly 0 and spacing is exact regardless of duration rounding.
func buildTimeAxis(ref Reference, nRows int, intervalSec float64) ([]time.Time, []float64) {
	step := time.Duration(intervalSec * float64(time.Second))
	start := ref.End().Add(step)

	times := make([]time.Time, nRows)
	numeric := make([]float64, nRows)
	for i := 0; i < nRows; i++ {
		times[i] = start.Add(time.Duration(i) * step)
		numeric[i] = float64(i) * intervalSec
	}
	return times, numeric
}
