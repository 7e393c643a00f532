package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"
)

type RawConf struct {
	File47   string
	Dmat     string
	PrintAll bool `toml:"print_all"`
	Output   string
	Window   []float64
	Plot     string
}

// DefaultRawConf returns the settings used when neither a config file
// nor a flag says otherwise
func DefaultRawConf() RawConf {
	return RawConf{
		Output: "transmat.out",
		Window: []float64{DefaultFilter.Min, DefaultFilter.Max},
	}
}

func (rc RawConf) ToConfig() (conf Config, err error) {
	if rc.File47 == "" {
		return conf, fmt.Errorf("no FILE47 given")
	}
	if len(rc.Window) != 2 || rc.Window[0] >= rc.Window[1] {
		return conf, fmt.Errorf("window must be [min, max], got %v",
			rc.Window)
	}
	conf.File47 = rc.File47
	conf.Dmat = rc.Dmat
	conf.Output = rc.Output
	conf.Plot = rc.Plot
	conf.Filter = Filter{
		All: rc.PrintAll,
		Min: rc.Window[0],
		Max: rc.Window[1],
	}
	return
}

type Config struct {
	File47 string
	Dmat   string
	Output string
	Plot   string
	Filter Filter
}

// LoadConfig reads a TOML config file on top of DefaultRawConf
func LoadConfig(filename string) (RawConf, error) {
	rc := DefaultRawConf()
	cont, err := os.ReadFile(filename)
	if err != nil {
		return rc, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	err = toml.Unmarshal(cont, &rc)
	if err != nil {
		return rc, fmt.Errorf("%s: %w", filename, err)
	}
	return rc, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error {
	return r.close()
}

// open returns a reader for filename, decompressing .gz and .zst
// files on the fly
func open(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	switch filepath.Ext(filename) {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %s: %w",
				ErrUnreadableFile, filename, err)
		}
		return readCloser{z, func() error {
			return errors.Join(z.Close(), f.Close())
		}}, nil
	case ".zst":
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %s: %w",
				ErrUnreadableFile, filename, err)
		}
		return readCloser{d, func() error {
			d.Close()
			return f.Close()
		}}, nil
	}
	return f, nil
}

// readLines reads all of r into memory, one string per line
func readLines(r io.Reader) (lines []string, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	return lines, nil
}

// LoadFile47 reads the FILE47 in filename
func LoadFile47(filename string) (*File47, error) {
	f, err := open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ret, err := ReadFile47(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ret, nil
}

// LoadDmat reads the n x n LMO coefficients in filename
func LoadDmat(filename string, n int) (*mat.Dense, error) {
	f, err := open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ret, err := ReadDmat(f, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return ret, nil
}
