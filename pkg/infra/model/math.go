package model

import "math"

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
