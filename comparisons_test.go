package main

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

func compMat(a, b *mat.Dense, eps float64) bool {
	var diff mat.Dense
	diff.Sub(a, b)
	return mat.Norm(&diff, 2) < eps
}

// compEnergies compares indices exactly and values to within eps
func compEnergies(a, b []Energy, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Index != b[i].Index ||
			math.Abs(a[i].Value-b[i].Value) > eps {
			return false
		}
	}
	return true
}
