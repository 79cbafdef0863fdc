package fit

import (
	"math"

	"github.com/yanun0323/errors"

	"main/internal/model"
)

// minSamples is the smallest dataset a fit accepts; below this the normal
// equations are meaningless even when solvable.
const minSamples = 3

// Fit solves the ordinary least-squares regression of slippage on
// (spread_pct, imbalance) with an intercept, via the 3x3 normal equations.
func Fit(samples []Sample) (model.Linear, error) {
	if len(samples) < minSamples {
		return model.Linear{}, errors.Errorf("not enough samples: %d, need >= %d", len(samples), minSamples)
	}

	// Accumulate X'X and X'y for X = [1, spread, imbalance].
	var n, sumS, sumI, sumSS, sumSI, sumII, sumY, sumSY, sumIY float64
	for _, sample := range samples {
		s, i, y := sample.SpreadPct, sample.Imbalance, sample.SlippagePct
		n++
		sumS += s
		sumI += i
		sumSS += s * s
		sumSI += s * i
		sumII += i * i
		sumY += y
		sumSY += s * y
		sumIY += i * y
	}

	a := [3][4]float64{
		{n, sumS, sumI, sumY},
		{sumS, sumSS, sumSI, sumSY},
		{sumI, sumSI, sumII, sumIY},
	}
	beta, err := solve3(a)
	if err != nil {
		return model.Linear{}, err
	}

	return model.Linear{
		Intercept: beta[0],
		Coef:      [2]float64{beta[1], beta[2]},
	}, nil
}

// solve3 runs Gaussian elimination with partial pivoting on a 3x4 augmented
// matrix.
func solve3(a [3][4]float64) ([3]float64, error) {
	var beta [3]float64
	for col := 0; col < 3; col++ {
		pivot := col
		for row := col + 1; row < 3; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return beta, errors.New("degenerate dataset: features are collinear")
		}
		a[col], a[pivot] = a[pivot], a[col]

		for row := col + 1; row < 3; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < 4; k++ {
				a[row][k] -= factor * a[col][k]
			}
		}
	}

	for row := 2; row >= 0; row-- {
		sum := a[row][3]
		for k := row + 1; k < 3; k++ {
			sum -= a[row][k] * beta[k]
		}
		beta[row] = sum / a[row][row]
	}
	return beta, nil
}
