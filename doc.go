// Package mylm fits ordinary least squares regressions through the normal
// equations and reports the usual inferential statistics.
//
// # Fitting
//
// The design matrix must already be numeric, with a column of ones when an
// intercept is wanted:
//
//	X := mat.NewDense(4, 2, []float64{
//		1, 2,
//		1, 3,
//		1, 4,
//		1, 5,
//	})
//	model, err := mylm.Fit(X, []float64{2, 4, 5, 4}, nil)
//
// Use the design package to attach column names, or to load data from CSV:
//
//	d, y, err := design.LoadCSV("train.csv", design.DefaultCSVOptions())
//	model, err := mylm.FitDesign(d, y, nil)
//
// Fit returns ErrEmptyInput, ErrDimensionMismatch, ErrInsufficientDF or
// ErrSingularSystem; test for them with errors.Is.
//
// # Inference
//
// StandardErrors, TStatistics and PValues are derived from σ²(XᵗX)⁻¹ with a
// Student-t reference distribution on n-p degrees of freedom. RSquared is
// NaN for a constant response and a zero standard error yields an infinite
// t statistic; neither is turned into an error.
//
// # Prediction
//
//	pred, err := model.PredictInterval(newX, mylm.IntervalPrediction, 0.95)
//	// pred.Fit, pred.Lower, pred.Upper
//
// Confidence intervals use σ²h and prediction intervals σ²(1+h), where h is
// the leverage of each new row against the stored (XᵗX)⁻¹.
//
// A Model is never modified after Fit returns and may be used from several
// goroutines at once.
package mylm
