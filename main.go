package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"runtime/pprof"
)

// Flags
var (
	file47 = flag.String("f", "", "path to the FILE47 input file")
	dmat   = flag.String("d", "",
		"path to LMO coefficients file, e.g. dmat for NLMOs")
	printAll = flag.Bool("a", false,
		"print the full list of MO energies instead of -50 eV < E < 50 eV")
	output   = flag.String("o", "transmat.out", "file to write the results to")
	plotFile = flag.String("plot", "",
		"write an orbital energy level diagram to this image file")
	confFile   = flag.String("config", "", "TOML file with default settings")
	debug      = flag.Bool("debug", false, "dump the parsed matrices to stderr")
	cpuprofile = flag.String("cpu", "", "write a CPU profile")
)

// Errors
var (
	ErrMissingHeaderToken  = errors.New("NBAS= not found in header")
	ErrNonIntegerBasisSize = errors.New("basis size is not a positive integer")
	ErrNonNumericToken     = errors.New("value is not a number")
	ErrTokenCount          = errors.New("more than 3 values on a line")
	ErrOverflow            = errors.New("more values than NBAS*NBAS")
	ErrIncompleteSection   = errors.New("fewer values than NBAS*NBAS")
	ErrMarkerOrder         = errors.New("section marker out of order")
	ErrUnreadableFile      = errors.New("unreadable file")
)

// applyFlags overrides the fields of rc for each flag given on the
// command line
func applyFlags(rc *RawConf) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "f":
			rc.File47 = *file47
		case "d":
			rc.Dmat = *dmat
		case "a":
			rc.PrintAll = *printAll
		case "o":
			rc.Output = *output
		case "plot":
			rc.Plot = *plotFile
		}
	})
	if *file47 == "" && flag.NArg() > 0 {
		rc.File47 = flag.Arg(0)
	}
}

// Run reads the FILE47 and optional dmat named in conf and writes the
// report
func Run(conf Config) error {
	f47, err := LoadFile47(conf.File47)
	if err != nil {
		return err
	}
	log.Printf("read %s with NBAS = %d\n", conf.File47, f47.NBas)
	if *debug {
		DumpMat("FOCK", f47.Fock)
		DumpMat("OVERLAP", f47.Overlap)
		DumpMat("LCAOMO", f47.Coeffs)
		DumpMat("DENSITY", f47.Density)
	}
	v := Validate(f47.Density, f47.Overlap, f47.Coeffs)
	if !v.Unit {
		log.Printf("warning: LCAOMO.T*OVERLAP*LCAOMO deviates from "+
			"the unit matrix by up to %g (RMSD %g)\n", v.MaxDev, v.RMSD)
	}
	report := Report{Filename: conf.Output}
	if err := report.Tests(v); err != nil {
		return err
	}
	canon := Energies(f47.Fock, f47.Coeffs, conf.Filter)
	if err := report.Energies(CanonicalTitle, canon); err != nil {
		return err
	}
	names := []string{"canonical"}
	levels := [][]Energy{canon}
	if conf.Dmat != "" {
		d, err := LoadDmat(conf.Dmat, f47.NBas)
		if err != nil {
			return err
		}
		if *debug {
			DumpMat("dmat", d)
		}
		lmo := Energies(f47.Fock, d, conf.Filter)
		if err := report.Energies(LMOTitle, lmo); err != nil {
			return err
		}
		names = append(names, "LMO")
		levels = append(levels, lmo)
	}
	log.Printf("wrote %s\n", conf.Output)
	if conf.Plot != "" {
		if err := PlotLevels(conf.Plot, names, levels...); err != nil {
			return err
		}
		log.Printf("wrote %s\n", conf.Plot)
	}
	return nil
}

func main() {
	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	rc := DefaultRawConf()
	if *confFile != "" {
		var err error
		rc, err = LoadConfig(*confFile)
		if err != nil {
			log.Fatal(err)
		}
	}
	applyFlags(&rc)
	conf, err := rc.ToConfig()
	if err != nil {
		log.Fatalf("%v, aborting\n", err)
	}
	if err := Run(conf); err != nil {
		log.Fatal(err)
	}
}
