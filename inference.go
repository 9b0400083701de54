package mylm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// CoefficientRow is one line of a coefficient table.
type CoefficientRow struct {
	Name     string
	Estimate float64
	StdError float64
	TValue   float64
	PValue   float64
}

// infer fills standard errors, t statistics, p-values and the overall F
// test. A zero standard error gives an infinite or NaN t statistic, which is
// left as is.
func (m *Model) infer() {
	m.se = make([]float64, m.p)
	m.tstat = make([]float64, m.p)
	m.pval = make([]float64, m.p)
	for j := 0; j < m.p; j++ {
		m.se[j] = math.Sqrt(m.vcov.At(j, j))
		m.tstat[j] = m.coef[j] / m.se[j]
		m.pval[j] = twoSidedP(m.dist, m.tstat[j])
	}

	m.fstat, m.fpval = math.NaN(), math.NaN()
	if !m.intercept || m.p < 2 || m.tss == 0 {
		return
	}
	df1 := float64(m.p - 1)
	df2 := float64(m.n - m.p)
	m.fstat = ((m.tss - m.rss) / df1) / (m.rss / df2)
	switch {
	case math.IsNaN(m.fstat):
	case math.IsInf(m.fstat, 1):
		m.fpval = 0
	default:
		m.fpval = distuv.F{D1: df1, D2: df2}.Survival(m.fstat)
	}
}

// StandardErrors returns sqrt(diag(VarianceCovariance)).
func (m *Model) StandardErrors() []float64 { return append([]float64(nil), m.se...) }

// TStatistics returns coefficient / standard error.
func (m *Model) TStatistics() []float64 { return append([]float64(nil), m.tstat...) }

// PValues returns two-sided p-values against Student-t with n-p degrees of freedom.
func (m *Model) PValues() []float64 { return append([]float64(nil), m.pval...) }

// FStatistic returns the overall F statistic against the intercept-only
// model. It is NaN without an intercept column, with p < 2 or for a
// constant response.
func (m *Model) FStatistic() float64 { return m.fstat }

// FPValue returns the upper tail probability of FStatistic.
func (m *Model) FPValue() float64 { return m.fpval }

// ConfInt returns coefficient confidence limits β ± t·se at the given level.
func (m *Model) ConfInt(level float64) (lower, upper []float64, err error) {
	if !(level > 0 && level < 1) {
		return nil, nil, fmt.Errorf("%w: got %v", ErrInvalidLevel, level)
	}
	tval := criticalValue(m.dist, level)
	lower = make([]float64, m.p)
	upper = make([]float64, m.p)
	for j := range m.coef {
		margin := tval * m.se[j]
		lower[j] = m.coef[j] - margin
		upper[j] = m.coef[j] + margin
	}
	return lower, upper, nil
}

// LogLikelihood returns the Gaussian log-likelihood at the ML variance RSS/n.
func (m *Model) LogLikelihood() float64 {
	n := float64(m.n)
	return -n / 2 * (math.Log(2*math.Pi) + math.Log(m.rss/n) + 1)
}

// AIC counts the p coefficients plus the residual variance as parameters.
func (m *Model) AIC() float64 {
	return -2*m.LogLikelihood() + 2*float64(m.p+1)
}

// BIC is AIC with a log(n) penalty per parameter.
func (m *Model) BIC() float64 {
	return -2*m.LogLikelihood() + math.Log(float64(m.n))*float64(m.p+1)
}

// Summary returns the coefficient table in column order.
func (m *Model) Summary() []CoefficientRow {
	rows := make([]CoefficientRow, m.p)
	for j := range rows {
		rows[j] = CoefficientRow{
			Name:     m.names[j],
			Estimate: m.coef[j],
			StdError: m.se[j],
			TValue:   m.tstat[j],
			PValue:   m.pval[j],
		}
	}
	return rows
}
