package mylm

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/syl051088/MyLM/design"
)

// Interval selects the kind of interval returned by PredictInterval.
type Interval int

const (
	// IntervalNone returns point predictions only.
	IntervalNone Interval = iota
	// IntervalConfidence bounds the mean response at each row.
	IntervalConfidence
	// IntervalPrediction bounds a single new observation at each row.
	IntervalPrediction
)

func (i Interval) String() string {
	switch i {
	case IntervalNone:
		return "none"
	case IntervalConfidence:
		return "confidence"
	case IntervalPrediction:
		return "prediction"
	}
	return fmt.Sprintf("Interval(%d)", int(i))
}

// ParseInterval maps "none", "confidence" and "prediction" to an Interval.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return IntervalNone, nil
	case "confidence":
		return IntervalConfidence, nil
	case "prediction":
		return IntervalPrediction, nil
	}
	return IntervalNone, fmt.Errorf("mylm: unknown interval %q", s)
}

// Prediction holds point predictions and, unless Interval is IntervalNone,
// the interval limits and the standard error behind each margin.
type Prediction struct {
	Interval Interval
	Level    float64
	Fit      []float64
	Lower    []float64
	Upper    []float64
	SE       []float64
}

// Predict returns newX·β. A nil newX returns the fitted values.
func (m *Model) Predict(newX mat.Matrix) ([]float64, error) {
	if design.IsNil(newX) {
		return m.FittedValues(), nil
	}
	if err := m.checkMatrix(newX); err != nil {
		return nil, err
	}
	return m.pointPredict(newX), nil
}

// PredictInterval returns predictions for newX with optional confidence or
// prediction intervals at the given level. A nil newX evaluates the training
// rows. The level is ignored for IntervalNone.
func (m *Model) PredictInterval(newX mat.Matrix, kind Interval, level float64) (*Prediction, error) {
	switch kind {
	case IntervalNone, IntervalConfidence, IntervalPrediction:
	default:
		return nil, fmt.Errorf("mylm: unknown interval %v", kind)
	}
	if kind != IntervalNone && !(level > 0 && level < 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidLevel, level)
	}

	var X mat.Matrix = m.x
	fit := m.FittedValues()
	if !design.IsNil(newX) {
		if err := m.checkMatrix(newX); err != nil {
			return nil, err
		}
		X = newX
		fit = m.pointPredict(newX)
	}

	pred := &Prediction{Interval: kind, Level: level, Fit: fit}
	if kind == IntervalNone {
		return pred, nil
	}

	h := leverage(X, m.invGram)
	tval := criticalValue(m.dist, level)
	pred.Lower = make([]float64, len(fit))
	pred.Upper = make([]float64, len(fit))
	pred.SE = make([]float64, len(fit))
	for i := range fit {
		v := h[i]
		if kind == IntervalPrediction {
			v++
		}
		se := math.Sqrt(m.sigma2 * v)
		margin := tval * se
		pred.SE[i] = se
		pred.Lower[i] = fit[i] - margin
		pred.Upper[i] = fit[i] + margin
	}
	return pred, nil
}

// PredictDesign is PredictInterval for a named design. The columns of d must
// match the training columns by name and order. A nil d evaluates the
// training rows.
func (m *Model) PredictDesign(d *design.Matrix, kind Interval, level float64) (*Prediction, error) {
	if d == nil {
		return m.PredictInterval(nil, kind, level)
	}
	if names := d.Names(); !design.SameColumns(names, m.names) {
		return nil, fmt.Errorf("%w: columns %v, model has %v", ErrIncompatibleDesign, names, m.names)
	}
	return m.PredictInterval(d.Dense(), kind, level)
}

// Leverage returns the diagonal of the hat matrix for the training rows.
func (m *Model) Leverage() []float64 {
	return leverage(m.x, m.invGram)
}

func (m *Model) checkMatrix(X mat.Matrix) error {
	r, c := X.Dims()
	if c != m.p {
		return fmt.Errorf("%w: %d columns, model has %d", ErrIncompatibleDesign, c, m.p)
	}
	if r == 0 {
		return ErrEmptyInput
	}
	return design.CheckFinite(X)
}

func (m *Model) pointPredict(X mat.Matrix) []float64 {
	r, _ := X.Dims()
	var pred mat.VecDense
	pred.MulVec(X, mat.NewVecDense(m.p, m.Coefficients()))
	out := make([]float64, r)
	for i := range out {
		out[i] = pred.AtVec(i)
	}
	return out
}

// leverage returns h[i] = xᵢ·G⁻¹·xᵢᵗ for every row xᵢ of X.
func leverage(X mat.Matrix, invGram mat.Symmetric) []float64 {
	r, c := X.Dims()
	var xg mat.Dense
	xg.Mul(X, invGram)
	h := make([]float64, r)
	row := make([]float64, c)
	rowG := make([]float64, c)
	for i := range h {
		mat.Row(row, i, X)
		mat.Row(rowG, i, &xg)
		h[i] = floats.Dot(row, rowG)
	}
	return h
}
