package ml

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Regressor is a supervised regression model over a fixed feature layout.
// Predict must be called with the same feature columns Fit was trained on.
type Regressor interface {
	Fit(x *mat.Dense, y []float64) error
	Predict(x *mat.Dense) []float64
}

// ErrNotFitted is returned by Predict-dependent paths when Fit has not
// succeeded yet.
var ErrNotFitted = errors.New("model has not been fitted")

// OLS is an ordinary-least-squares regressor with an intercept term,
// solved via QR decomposition.
type OLS struct {
	coef   *mat.VecDense // intercept first, then one weight per feature
	fitted bool
}

// NewOLS creates an unfitted OLS regressor.
func NewOLS() *OLS {
	return &OLS{}
}

// Fit learns the least-squares coefficients for x -> y.
func (m *OLS) Fit(x *mat.Dense, y []float64) error {
	n, p := x.Dims()
	if n != len(y) {
		return fmt.Errorf("feature rows (%d) and target length (%d) differ", n, len(y))
	}
	if n == 0 {
		return errors.New("cannot fit on zero rows")
	}

	// Augment with a leading ones column for the intercept.
	a := mat.NewDense(n, p+1, nil)
	for i := 0; i < n; i++ {
		a.Set(i, 0, 1)
		for j := 0; j < p; j++ {
			a.Set(i, j+1, x.At(i, j))
		}
	}

	var qr mat.QR
	qr.Factorize(a)

	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, mat.NewVecDense(n, y)); err != nil {
		// An ill-conditioned solve still yields usable coefficients.
		if _, ok := err.(mat.Condition); !ok {
			return fmt.Errorf("least squares solve failed: %w", err)
		}
	}

	m.coef = &coef
	m.fitted = true
	return nil
}

// Predict returns one prediction per row of x. Calling Predict before a
// successful Fit returns nil.
func (m *OLS) Predict(x *mat.Dense) []float64 {
	if !m.fitted {
		return nil
	}

	n, p := x.Dims()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := m.coef.AtVec(0)
		for j := 0; j < p && j+1 < m.coef.Len(); j++ {
			sum += m.coef.AtVec(j+1) * x.At(i, j)
		}
		out[i] = sum
	}
	return out
}

// Coefficients returns the intercept and per-feature weights of a
// fitted model.
func (m *OLS) Coefficients() (intercept float64, weights []float64, err error) {
	if !m.fitted {
		return 0, nil, ErrNotFitted
	}
	weights = make([]float64, m.coef.Len()-1)
	for j := range weights {
		weights[j] = m.coef.AtVec(j + 1)
	}
	return m.coef.AtVec(0), weights, nil
}
