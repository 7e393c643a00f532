package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// fortran exponents like 1.0D-03
var expReplacer = strings.NewReplacer("D", "E", "d", "e")

// toFloat converts a list of strings to float64s using
// strconv.ParseFloat
func toFloat(strs []string) ([]float64, error) {
	ret := make([]float64, len(strs))
	var err error
	for i, s := range strs {
		if isHex(s) {
			return nil, fmt.Errorf("%q: %w", s, ErrNonNumericToken)
		}
		ret[i], err = strconv.ParseFloat(expReplacer.Replace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, ErrNonNumericToken)
		}
	}
	return ret, nil
}

// isHex reports whether s is a hex float like 0x1p-2, which
// strconv.ParseFloat accepts but FILE47 writers never produce
func isHex(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// FormatFloat returns the shortest representation of f that reads
// back to the same value. Integral values keep a trailing ".0" and
// very small or very large ones use exponent notation
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// DumpMat writes m to stderr under a title line
func DumpMat(name string, m mat.Matrix) {
	fmt.Fprintln(os.Stderr, name)
	WriteMat(os.Stderr, m)
}

func WriteMat(w io.Writer, m mat.Matrix) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		fmt.Fprintf(w, "%5d", i)
		for j := 0; j < c; j++ {
			fmt.Fprintf(w, "%12.8f", m.At(i, j))
		}
		fmt.Fprint(w, "\n")
	}
	fmt.Fprint(w, "\n")
}

func Identity(n int) *mat.Dense {
	ret := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		ret.Set(i, i, 1.0)
	}
	return ret
}
