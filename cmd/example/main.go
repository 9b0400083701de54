package main

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	mylm "github.com/syl051088/MyLM"
)

func main() {
	X := mat.NewDense(4, 2, []float64{
		1, 2,
		1, 3,
		1, 4,
		1, 5,
	})
	y := []float64{2, 4, 5, 4}

	model, err := mylm.Fit(X, y, nil)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Coefficients:", model.Coefficients())
	fmt.Println("Std. errors: ", model.StandardErrors())
	fmt.Printf("R²: %.4f  adjusted R²: %.4f\n", model.RSquared(), model.AdjustedRSquared())

	newX := mat.NewDense(1, 2, []float64{1, 6})
	for _, kind := range []mylm.Interval{mylm.IntervalConfidence, mylm.IntervalPrediction} {
		pred, err := model.PredictInterval(newX, kind, 0.95)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("x=6 %-10s fit=%.4f [%.4f, %.4f]\n", kind, pred.Fit[0], pred.Lower[0], pred.Upper[0])
	}
}
