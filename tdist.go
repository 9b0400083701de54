package mylm

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TDistribution is the Student-t primitive used for p-values and interval
// critical values. Survival(x) is the upper tail probability P(T > x) and
// Quantile(p) the inverse of the CDF.
type TDistribution interface {
	Survival(x float64) float64
	Quantile(p float64) float64
}

// TDistFunc returns the Student-t distribution with nu degrees of freedom.
type TDistFunc func(nu float64) TDistribution

// StudentsT is the default TDistFunc, backed by gonum's distuv.StudentsT.
func StudentsT(nu float64) TDistribution {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}
}

// twoSidedP returns 2·P(T > |t|).
func twoSidedP(dist TDistribution, t float64) float64 {
	if math.IsNaN(t) {
		return math.NaN()
	}
	if t < 0 {
		t = -t
	}
	return 2 * dist.Survival(t)
}

// criticalValue returns the 1-alpha/2 quantile for a central interval of the
// given level.
func criticalValue(dist TDistribution, level float64) float64 {
	alpha := 1 - level
	return dist.Quantile(1 - alpha/2)
}
