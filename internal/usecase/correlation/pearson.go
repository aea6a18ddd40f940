// Package correlation scores cross-symbol price co-movement from one-second
// bar files: Pearson coefficients per bar kind, combined into a weighted
// overall score per symbol pair.
package correlation

import "math"

// varianceEpsilon guards against near-zero variance terms, where the
// coefficient is numerically meaningless.
const varianceEpsilon = 1e-9

// Pearson computes the Pearson correlation coefficient of two equal-length
// series. The second return is false when the coefficient is undefined:
// mismatched or too-short inputs, or a degenerate (near-constant) series.
func Pearson(x, y []float64) (float64, bool) {
	n := len(x)
	if n < 2 || n != len(y) {
		return 0, false
	}

	var sumX, sumY, sumXY, sumXSq, sumYSq float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumXSq += x[i] * x[i]
		sumYSq += y[i] * y[i]
	}

	fn := float64(n)
	numerator := fn*sumXY - sumX*sumY
	denomX := fn*sumXSq - sumX*sumX
	denomY := fn*sumYSq - sumY*sumY
	if denomX < varianceEpsilon || denomY < varianceEpsilon {
		return 0, false
	}

	denominator := math.Sqrt(denomX * denomY)
	if math.Abs(denominator) < varianceEpsilon {
		return 0, false
	}
	return numerator / denominator, true
}

// TrimToSameLength shortens the longer of two series to the length of the
// shorter one by sampling it at an even stride, preserving its shape rather
// than cutting off its tail. Either input empty yields two empty series.
func TrimToSameLength(a, b []float64) ([]float64, []float64) {
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}
	switch {
	case len(a) > len(b):
		return strideSample(a, len(b)), b
	case len(b) > len(a):
		return a, strideSample(b, len(a))
	default:
		return a, b
	}
}

func strideSample(series []float64, target int) []float64 {
	step := len(series) / target
	if step < 1 {
		step = 1
	}
	out := make([]float64, 0, target)
	for i := 0; i < len(series) && len(out) < target; i += step {
		out = append(out, series[i])
	}
	return out
}
