// Airtime - TV Schedule Analytics and Program Recommendations
// Copyright 2026 Airtime Analytics
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/airtime-analytics/airtime

package recommend

const (
	minmaxEpsilon = 1e-9
	ridgeEpsilon  = 1e-9
)

// LearnWeights re-estimates the blend weights from a candidate table by
// regressing a proxy target onto the three raw signals. The target is
// built from the best available supervision: rating means when present
// and non-degenerate, appearance frequency otherwise, and a constant
// when neither carries information. Negative slopes are clipped to zero
// and the remainder is renormalized to sum to one.
func LearnWeights(cands []Candidate) (LearnedWeights, bool) {
	if len(cands) == 0 {
		return LearnedWeights{}, false
	}

	n := len(cands)
	x := make([][3]float64, n)
	for i, c := range cands {
		x[i] = [3]float64{c.SlotPopScore, c.ContentSim, c.TrendZ}
	}
	y := buildTarget(cands)

	slopes := fitSlopes(x, y)
	for i := range slopes {
		if slopes[i] < 0 {
			slopes[i] = 0
		}
	}
	w := Weights{Slot: slopes[0], Sim: slopes[1], Trend: slopes[2]}
	w = w.Normalize()

	fitted := make([]float64, n)
	for i := range x {
		fitted[i] = w.Slot*x[i][0] + w.Sim*x[i][1] + w.Trend*x[i][2]
	}
	return LearnedWeights{Weights: w, Fitted: fitted}, true
}

// buildTarget picks the strongest supervision signal available in the
// candidate table and min-max scales it into [0, 1].
func buildTarget(cands []Candidate) []float64 {
	n := len(cands)

	hasRating := false
	ratings := make([]float64, n)
	for i, c := range cands {
		if c.RatingMean != nil {
			hasRating = true
			ratings[i] = *c.RatingMean
		}
	}
	if hasRating {
		if t, ok := minmax(ratings); ok {
			return t
		}
	}

	freqs := make([]float64, n)
	for i, c := range cands {
		freqs[i] = float64(c.Freq)
	}
	if t, ok := minmax(freqs); ok {
		return t
	}

	t := make([]float64, n)
	for i := range t {
		t[i] = 0.5
	}
	return t
}

// minmax scales values to [0, 1]. It reports false when the values are
// all equal, in which case the caller falls through to a weaker target.
func minmax(values []float64) ([]float64, bool) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return nil, false
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo + minmaxEpsilon)
	}
	return out, true
}

// fitSlopes solves an ordinary least squares fit of y on the three
// signal columns with an intercept, returning only the slopes. The fit
// is computed on mean-centered data so a constant target yields exactly
// zero slopes, and the normal equations carry a tiny ridge term so
// collinear or constant columns cannot make the system singular.
func fitSlopes(x [][3]float64, y []float64) [3]float64 {
	n := float64(len(x))
	var xm [3]float64
	var ym float64
	for i := range x {
		for j := 0; j < 3; j++ {
			xm[j] += x[i][j]
		}
		ym += y[i]
	}
	for j := range xm {
		xm[j] /= n
	}
	ym /= n

	var a [3][3]float64
	var b [3]float64
	for i := range x {
		var d [3]float64
		for j := 0; j < 3; j++ {
			d[j] = x[i][j] - xm[j]
		}
		dy := y[i] - ym
		for p := 0; p < 3; p++ {
			for q := 0; q < 3; q++ {
				a[p][q] += d[p] * d[q]
			}
			b[p] += d[p] * dy
		}
	}
	for p := 0; p < 3; p++ {
		a[p][p] += ridgeEpsilon
	}
	return solve3(a, b)
}

// solve3 solves a 3x3 linear system by Gaussian elimination with
// partial pivoting. The ridge term applied by the caller keeps the
// matrix invertible.
func solve3(a [3][3]float64, b [3]float64) [3]float64 {
	for col := 0; col < 3; col++ {
		pivot := col
		for r := col + 1; r < 3; r++ {
			if abs(a[r][col]) > abs(a[pivot][col]) {
				pivot = r
			}
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			b[col], b[pivot] = b[pivot], b[col]
		}
		if a[col][col] == 0 {
			continue
		}
		for r := col + 1; r < 3; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < 3; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	var sol [3]float64
	for r := 2; r >= 0; r-- {
		if a[r][r] == 0 {
			continue
		}
		s := b[r]
		for c := r + 1; c < 3; c++ {
			s -= a[r][c] * sol[c]
		}
		sol[r] = s / a[r][r]
	}
	return sol
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
