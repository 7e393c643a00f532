package main

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// tolerances for the unit matrix check, the numpy.allclose defaults
const (
	RTOL = 1e-5
	ATOL = 1e-8
)

type Validation struct {
	// Trace of DENSITY*OVERLAP, which should be the electron count
	Trace float64
	// whether LCAOMOᵗ*OVERLAP*LCAOMO is the identity within tolerance
	Unit   bool
	MaxDev float64
	RMSD   float64
}

// Validate computes Tr(PS) and checks that c is orthonormal in the
// metric s. A failed check is reported in the result, not as an error
func Validate(p, s, c mat.Matrix) Validation {
	var ps mat.Dense
	ps.Mul(p, s)
	csc := Transform(s, c)
	n, _ := csc.Dims()
	eye := Identity(n)
	return Validation{
		Trace:  mat.Trace(&ps),
		Unit:   AllClose(csc, eye, RTOL, ATOL),
		MaxDev: MaxDev(csc, eye),
		RMSD:   RMSD(csc, eye),
	}
}

// Transform returns cᵗ*a*c, multiplied left to right
func Transform(a, c mat.Matrix) *mat.Dense {
	var ca, ret mat.Dense
	ca.Mul(c.T(), a)
	ret.Mul(&ca, c)
	return &ret
}

// AllClose reports whether every element satisfies
// |a - b| <= atol + rtol*|b|. NaNs are never close
func AllClose(a, b mat.Matrix, rtol, atol float64) bool {
	r, c := a.Dims()
	if br, bc := b.Dims(); br != r || bc != c {
		return false
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x, y := a.At(i, j), b.At(i, j)
			if !(math.Abs(x-y) <= atol+rtol*math.Abs(y)) {
				return false
			}
		}
	}
	return true
}

// MaxDev returns the largest absolute element of a - b
func MaxDev(a, b mat.Matrix) float64 {
	var diff mat.Dense
	diff.Sub(a, b)
	diff.Apply(func(_, _ int, v float64) float64 {
		return math.Abs(v)
	}, &diff)
	return mat.Max(&diff)
}

// RMSD computes the root-mean-square deviation between the elements
// of a and b
func RMSD(a, b *mat.Dense) (ret float64) {
	as := a.RawMatrix().Data
	bs := b.RawMatrix().Data
	if len(as) != len(bs) {
		panic("dimension mismatch")
	}
	var count int
	for i := range as {
		// deviation
		diff := as[i] - bs[i]
		// square
		ret += diff * diff
		count++
	}
	// mean
	ret /= float64(count)
	// root
	return math.Sqrt(ret)
}
