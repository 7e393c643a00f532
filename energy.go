package main

import (
	"gonum.org/v1/gonum/mat"
)

const (
	// hartree to eV
	HtToEv = 27.211407953
)

// Energy is an orbital energy in eV. Index starts at 1
type Energy struct {
	Index int
	Value float64
}

// Filter selects the energies to report: all of them, or those
// strictly between Min and Max
type Filter struct {
	All bool
	Min float64
	Max float64
}

var DefaultFilter = Filter{Min: -50, Max: 50}

func (f Filter) Keep(e float64) bool {
	return f.All || (f.Min < e && e < f.Max)
}

// Energies returns the diagonal of cᵗ*fock*c converted to eV, keeping
// only the entries that pass filter
func Energies(fock, c mat.Matrix, filter Filter) []Energy {
	e := Transform(fock, c)
	n, _ := e.Dims()
	ret := make([]Energy, 0, n)
	for i := 0; i < n; i++ {
		v := e.At(i, i) * HtToEv
		if filter.Keep(v) {
			ret = append(ret, Energy{Index: i + 1, Value: v})
		}
	}
	return ret
}
