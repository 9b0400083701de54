package mylm

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/syl051088/MyLM/design"
)

// DefaultMaxCondition is the largest condition number of XᵗX accepted by Fit.
const DefaultMaxCondition = 1e13

// Model is a fitted ordinary least squares regression. It is immutable: every
// accessor returns a copy, so a Model may be shared between goroutines.
type Model struct {
	names     []string
	x         *mat.Dense // training design
	intercept bool

	coef   []float64
	fitted []float64
	resid  []float64

	n, p   int
	rss    float64
	tss    float64
	sigma2 float64

	invGram *mat.SymDense // (XᵗX)⁻¹
	vcov    *mat.SymDense // sigma2 · (XᵗX)⁻¹

	se    []float64
	tstat []float64
	pval  []float64

	r2    float64
	adjR2 float64
	fstat float64
	fpval float64

	dist TDistribution // Student-t with n-p degrees of freedom
}

// Config holds fitting parameters.
type Config struct {
	MaxCondition float64        // Largest accepted condition number of XᵗX
	TDist        TDistFunc      // Student-t primitive (default: StudentsT)
	Verbose      bool           // Emit debug events through Logger
	Logger       zerolog.Logger // Destination for debug events
}

// NewDefaultConfig returns recommended default parameters.
func NewDefaultConfig() *Config {
	return &Config{
		MaxCondition: DefaultMaxCondition,
		TDist:        StudentsT,
		Verbose:      false,
		Logger:       zerolog.Nop(),
	}
}

func (c *Config) logger() zerolog.Logger {
	if !c.Verbose {
		return zerolog.Nop()
	}
	return c.Logger
}

// Fit estimates an OLS model from the design matrix X and response y using
// the normal equations. Columns are named x1..xp; use FitDesign to keep
// names from a design.Matrix. A nil cfg means NewDefaultConfig().
//
// Fit fails with ErrEmptyInput, ErrDimensionMismatch, ErrInsufficientDF,
// design.ErrMissingValue or ErrSingularSystem and never returns a partial
// model.
func Fit(X mat.Matrix, y []float64, cfg *Config) (*Model, error) {
	if design.IsNil(X) {
		return nil, ErrEmptyInput
	}
	if r, c := X.Dims(); r == 0 || c == 0 {
		return nil, ErrEmptyInput
	}
	d, err := design.New(X)
	if err != nil {
		return nil, err
	}
	return FitDesign(d, y, cfg)
}

// FitDesign is Fit for a named design matrix. Coefficients are keyed by the
// design's column names.
func FitDesign(d *design.Matrix, y []float64, cfg *Config) (*Model, error) {
	if d == nil {
		return nil, ErrEmptyInput
	}
	cfg = withDefaults(cfg)
	log := cfg.logger()
	start := time.Now()

	X := d.Dense()
	n, p := X.Dims()
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if len(y) != n {
		return nil, fmt.Errorf("%w: X has %d rows, y has %d values", ErrDimensionMismatch, n, len(y))
	}
	if n <= p {
		return nil, fmt.Errorf("%w: n=%d, p=%d", ErrInsufficientDF, n, p)
	}
	if err := design.CheckFiniteVec("y", y); err != nil {
		return nil, err
	}

	log.Debug().Int("n", n).Int("p", p).Strs("columns", d.Names()).Msg("fitting ols model")

	// G = XᵗX
	var gram mat.SymDense
	gram.SymOuterK(1, X.T())

	invGram, cond, err := invertGram(&gram, cfg.MaxCondition)
	log.Debug().Float64("condition", cond).Msg("gram matrix factorized")
	if err != nil {
		return nil, err
	}

	yv := mat.NewVecDense(n, append([]float64(nil), y...))

	// c = Xᵗy, β = G⁻¹c
	var xty, beta mat.VecDense
	xty.MulVec(X.T(), yv)
	beta.MulVec(invGram, &xty)
	coef := append([]float64(nil), beta.RawVector().Data...)
	if hasNonFinite(coef) {
		return nil, &SingularError{Condition: cond, Limit: cfg.MaxCondition}
	}

	var fitted, resid mat.VecDense
	fitted.MulVec(X, &beta)
	resid.SubVec(yv, &fitted)

	rss := mat.Dot(&resid, &resid)
	dfResid := n - p
	sigma2 := rss / float64(dfResid)

	vcov := mat.NewSymDense(p, nil)
	vcov.ScaleSym(sigma2, invGram)

	tss := totalSumOfSquares(y)
	r2 := rSquared(rss, tss)

	m := &Model{
		names:     d.Names(),
		x:         mat.DenseCopyOf(X),
		intercept: d.HasIntercept(),
		coef:      coef,
		fitted:    append([]float64(nil), fitted.RawVector().Data...),
		resid:     append([]float64(nil), resid.RawVector().Data...),
		n:         n,
		p:         p,
		rss:       rss,
		tss:       tss,
		sigma2:    sigma2,
		invGram:   invGram,
		vcov:      vcov,
		r2:        r2,
		adjR2:     adjustedRSquared(r2, n, p),
		dist:      cfg.TDist(float64(dfResid)),
	}
	m.infer()

	log.Debug().
		Floats64("coefficients", m.coef).
		Float64("sigma", math.Sqrt(sigma2)).
		Float64("r2", r2).
		Dur("elapsed", time.Since(start)).
		Msg("ols model fitted")

	return m, nil
}

// Names returns the column names in coefficient order.
func (m *Model) Names() []string { return append([]string(nil), m.names...) }

// Coefficients returns the estimated coefficients in column order.
func (m *Model) Coefficients() []float64 { return append([]float64(nil), m.coef...) }

// Coefficient returns the coefficient of the named column.
func (m *Model) Coefficient(name string) (float64, bool) {
	for j, n := range m.names {
		if n == name {
			return m.coef[j], true
		}
	}
	return 0, false
}

// FittedValues returns X·β for the training rows.
func (m *Model) FittedValues() []float64 { return append([]float64(nil), m.fitted...) }

// Residuals returns y - X·β.
func (m *Model) Residuals() []float64 { return append([]float64(nil), m.resid...) }

// SigmaSquared returns the unbiased residual variance RSS/(n-p).
func (m *Model) SigmaSquared() float64 { return m.sigma2 }

// Sigma returns the residual standard error.
func (m *Model) Sigma() float64 { return math.Sqrt(m.sigma2) }

// RSS returns the residual sum of squares.
func (m *Model) RSS() float64 { return m.rss }

// TSS returns the total sum of squares about the mean of y.
func (m *Model) TSS() float64 { return m.tss }

// InverseGram returns a copy of (XᵗX)⁻¹.
func (m *Model) InverseGram() *mat.SymDense { return copySym(m.invGram) }

// VarianceCovariance returns a copy of σ²(XᵗX)⁻¹.
func (m *Model) VarianceCovariance() *mat.SymDense { return copySym(m.vcov) }

// RSquared returns 1 - RSS/TSS. It is NaN when y is constant.
func (m *Model) RSquared() float64 { return m.r2 }

// AdjustedRSquared returns 1 - (1-R²)(n-1)/(n-p).
func (m *Model) AdjustedRSquared() float64 { return m.adjR2 }

// DFResidual returns n - p.
func (m *Model) DFResidual() int { return m.n - m.p }

// N returns the number of training observations.
func (m *Model) N() int { return m.n }

// P returns the number of coefficients.
func (m *Model) P() int { return m.p }

// HasIntercept reports whether the training design contains a column of ones.
func (m *Model) HasIntercept() bool { return m.intercept }

// --- Helper Functions ---

func withDefaults(cfg *Config) *Config {
	if cfg == nil {
		return NewDefaultConfig()
	}
	c := *cfg
	if c.MaxCondition <= 0 {
		c.MaxCondition = DefaultMaxCondition
	}
	if c.TDist == nil {
		c.TDist = StudentsT
	}
	return &c
}

// invertGram inverts the Gram matrix through its Cholesky factorization. A
// failed factorization, a condition number above limit or a gonum condition
// error all yield a *SingularError.
func invertGram(gram *mat.SymDense, limit float64) (*mat.SymDense, float64, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(gram); !ok {
		return nil, math.Inf(1), &SingularError{Condition: math.Inf(1), Limit: limit}
	}
	cond := chol.Cond()
	if math.IsNaN(cond) || cond > limit {
		return nil, cond, &SingularError{Condition: cond, Limit: limit}
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, cond, &SingularError{Condition: cond, Limit: limit, err: err}
	}
	if hasNonFinite(inv.RawSymmetric().Data) {
		return nil, cond, &SingularError{Condition: cond, Limit: limit}
	}
	return &inv, cond, nil
}

// totalSumOfSquares returns Σ(y - ȳ)².
func totalSumOfSquares(y []float64) float64 {
	dev := append([]float64(nil), y...)
	floats.AddConst(-stat.Mean(y, nil), dev)
	return floats.Dot(dev, dev)
}

// rSquared returns NaN for a constant response instead of inventing 0 or 1.
func rSquared(rss, tss float64) float64 {
	if tss == 0 {
		return math.NaN()
	}
	return 1 - rss/tss
}

func adjustedRSquared(r2 float64, n, p int) float64 {
	return 1 - (1-r2)*float64(n-1)/float64(n-p)
}

func hasNonFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return true
		}
	}
	return false
}

func copySym(s *mat.SymDense) *mat.SymDense {
	c := mat.NewSymDense(s.SymmetricDim(), nil)
	c.CopySym(s)
	return c
}
