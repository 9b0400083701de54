package mylm

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Score returns the R² of the model's predictions on (X, y).
func (m *Model) Score(X mat.Matrix, y []float64) (float64, error) {
	pred, err := m.evaluate(X, y)
	if err != nil {
		return 0, err
	}
	return rSquared(residualSumOfSquares(y, pred), totalSumOfSquares(y)), nil
}

// MSE returns the mean squared error on (X, y).
func (m *Model) MSE(X mat.Matrix, y []float64) (float64, error) {
	pred, err := m.evaluate(X, y)
	if err != nil {
		return 0, err
	}
	return residualSumOfSquares(y, pred) / float64(len(y)), nil
}

// MAE returns the mean absolute error on (X, y).
func (m *Model) MAE(X mat.Matrix, y []float64) (float64, error) {
	pred, err := m.evaluate(X, y)
	if err != nil {
		return 0, err
	}
	return meanAbsoluteError(y, pred), nil
}

func (m *Model) evaluate(X mat.Matrix, y []float64) ([]float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return nil, err
	}
	if len(pred) != len(y) {
		return nil, fmt.Errorf("%w: %d predictions, %d observations", ErrDimensionMismatch, len(pred), len(y))
	}
	if len(y) == 0 {
		return nil, ErrEmptyInput
	}
	return pred, nil
}

// --- Evaluation Metrics ---

// residualSumOfSquares calculates Σ(y - ŷ)²
func residualSumOfSquares(yTrue, yPred []float64) float64 {
	diff := floats.SubTo(make([]float64, len(yTrue)), yTrue, yPred)
	return floats.Dot(diff, diff)
}

// meanAbsoluteError calculates MAE
func meanAbsoluteError(yTrue, yPred []float64) float64 {
	diff := floats.SubTo(make([]float64, len(yTrue)), yTrue, yPred)
	return floats.Norm(diff, 1) / float64(len(yTrue))
}
