package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const (
	CanonicalTitle = "Canonical Orbital energies (eV):"
	LMOTitle       = "Requested LMO energies (eV):"
)

// WriteTests writes the trace and unit matrix results to w
func WriteTests(w io.Writer, v Validation) error {
	nw := bufio.NewWriter(w)
	fmt.Fprintf(nw, "TESTS:\nTrace(DENSITY*OVERLAP) = %s\n", FormatFloat(v.Trace))
	fmt.Fprint(nw, "The above should be equal to the number of electrons "+
		"to machine precision\n\n")
	if v.Unit {
		fmt.Fprint(nw, "LCAOMO.T*OVERLAP*LCAOMO is confirmed to be "+
			"a unit matrix! :)\n\n")
	} else {
		fmt.Fprint(nw, "WARNING: LCAOMO.T*OVERLAP*LCAOMO is NOT "+
			"a unit matrix! :(\n\n")
	}
	return nw.Flush()
}

// WriteEnergies writes title followed by one "index: value" line per
// energy
func WriteEnergies(w io.Writer, title string, energies []Energy) error {
	nw := bufio.NewWriter(w)
	fmt.Fprintln(nw, title)
	for _, e := range energies {
		fmt.Fprintf(nw, "%d: %s\n", e.Index, FormatFloat(e.Value))
	}
	return nw.Flush()
}

// Report is the output file. Tests creates or truncates it and every
// later section is appended
type Report struct {
	Filename string
}

func (r Report) Tests(v Validation) error {
	return r.section(os.O_TRUNC, func(w io.Writer) error {
		return WriteTests(w, v)
	})
}

func (r Report) Energies(title string, energies []Energy) error {
	return r.section(os.O_APPEND, func(w io.Writer) error {
		return WriteEnergies(w, title, energies)
	})
}

func (r Report) section(mode int, write func(io.Writer) error) error {
	f, err := os.OpenFile(r.Filename, os.O_WRONLY|os.O_CREATE|mode, 0644)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", r.Filename, err)
	}
	return f.Close()
}
