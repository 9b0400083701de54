// Package design holds numeric design matrices together with their column
// names.
//
// A Matrix is what the regression engine consumes: every entry is a finite
// float64 and every column has a unique name. Missing values are rejected
// here, before any fitting takes place.
package design

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// InterceptName is the conventional name of the column of ones.
const InterceptName = "(Intercept)"

var (
	// ErrMissingValue reports a NaN or infinite entry in the input.
	ErrMissingValue = errors.New("design: missing value")
	// ErrNoColumns reports a matrix without columns or without rows.
	ErrNoColumns = errors.New("design: no data")
	// ErrDuplicateName reports two columns sharing a name.
	ErrDuplicateName = errors.New("design: duplicate column name")
)

// Matrix is a dense design matrix with ordered column names.
type Matrix struct {
	names []string
	data  *mat.Dense
}

// New wraps X after checking that it holds only finite values. When names is
// empty the columns are called x1..xp.
func New(X mat.Matrix, names ...string) (*Matrix, error) {
	if IsNil(X) {
		return nil, ErrNoColumns
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, ErrNoColumns
	}
	if len(names) == 0 {
		names = DefaultNames(c)
	}
	if len(names) != c {
		return nil, fmt.Errorf("design: %d names for %d columns", len(names), c)
	}
	seen := make(map[string]struct{}, c)
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, n)
		}
		seen[n] = struct{}{}
	}
	if err := CheckFinite(X); err != nil {
		return nil, err
	}
	return &Matrix{
		names: append([]string(nil), names...),
		data:  mat.DenseCopyOf(X),
	}, nil
}

// FromRows builds a Matrix from row-major data. With intercept set a leading
// column of ones named InterceptName is added.
func FromRows(rows [][]float64, names []string, intercept bool) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrNoColumns
	}
	c := len(rows[0])
	if len(names) == 0 {
		names = DefaultNames(c)
	}
	offset := 0
	if intercept {
		offset = 1
	}
	X := mat.NewDense(len(rows), c+offset, nil)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("design: row %d has %d values, want %d", i, len(row), c)
		}
		if intercept {
			X.Set(i, 0, 1)
		}
		for j, v := range row {
			X.Set(i, j+offset, v)
		}
	}
	if intercept {
		names = append([]string{InterceptName}, names...)
	}
	return New(X, names...)
}

// DefaultNames returns x1..xp.
func DefaultNames(p int) []string {
	names := make([]string, p)
	for j := range names {
		names[j] = "x" + strconv.Itoa(j+1)
	}
	return names
}

// IsNil reports whether X is a nil interface or a typed nil pointer such as
// (*mat.Dense)(nil) or (*mat.VecDense)(nil).
func IsNil(X mat.Matrix) bool {
	if X == nil {
		return true
	}
	v := reflect.ValueOf(X)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// CheckFiniteVec returns ErrMissingValue for the first non-finite entry of v.
// name labels the vector in the error.
func CheckFiniteVec(name string, v []float64) error {
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s[%d]", ErrMissingValue, name, i)
		}
	}
	return nil
}

// CheckFinite returns ErrMissingValue for the first non-finite entry of X.
func CheckFinite(X mat.Matrix) error {
	r, c := X.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w at row %d, column %d", ErrMissingValue, i, j)
			}
		}
	}
	return nil
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (r, c int) { return m.data.Dims() }

// Names returns a copy of the column names.
func (m *Matrix) Names() []string { return append([]string(nil), m.names...) }

// Dense returns the underlying matrix. Callers must not modify it.
func (m *Matrix) Dense() *mat.Dense { return m.data }

// Index returns the position of the named column, or -1.
func (m *Matrix) Index(name string) int {
	for j, n := range m.names {
		if n == name {
			return j
		}
	}
	return -1
}

// HasIntercept reports whether some column is identically one.
func (m *Matrix) HasIntercept() bool {
	return InterceptColumn(m.data) >= 0
}

// InterceptColumn returns the index of the first column of ones in X, or -1.
func InterceptColumn(X mat.Matrix) int {
	r, c := X.Dims()
	for j := 0; j < c; j++ {
		ones := r > 0
		for i := 0; i < r && ones; i++ {
			ones = X.At(i, j) == 1
		}
		if ones {
			return j
		}
	}
	return -1
}

// SameColumns reports whether names matches want element by element.
func SameColumns(names, want []string) bool {
	if len(names) != len(want) {
		return false
	}
	for i := range names {
		if names[i] != want[i] {
			return false
		}
	}
	return true
}
