package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Block is one of the matrices stored in a FILE47. The order of the
// constants is the order NBO writes them in
type Block int

const (
	idle Block = iota - 1
	Overlap
	Density
	Fock
	LCAOMO
	NBlocks
)

// blockInfo holds the on-disk convention of each block. Everything
// but the Fock matrix is stored column by column, so it is transposed
// after the row-major reshape.
var blockInfo = [NBlocks]struct {
	Marker    string
	Transpose bool
}{
	Overlap: {"$OVERLAP", true},
	Density: {"$DENSITY", true},
	Fock:    {"$FOCK", false},
	LCAOMO:  {"$LCAOMO", true},
}

func (b Block) String() string {
	if b < 0 || b >= NBlocks {
		return fmt.Sprintf("Block(%d)", int(b))
	}
	return blockInfo[b].Marker
}

// Transpose reports whether b is stored column-major
func (b Block) Transpose() bool {
	return blockInfo[b].Transpose
}

// File47 holds the matrices read from an NBO FILE47, all NBas x NBas
type File47 struct {
	NBas    int
	Fock    *mat.Dense
	Overlap *mat.Dense
	Coeffs  *mat.Dense
	Density *mat.Dense
}

// maxNBas keeps NBas*NBas within an int32
const maxNBas = 46340

// ParseHeader returns the basis size from the NBAS= keyword on the
// first line of a FILE47
func ParseHeader(line string) (int, error) {
	fields := strings.Fields(line)
	for i, field := range fields {
		if field != "NBAS=" {
			continue
		}
		if i+1 == len(fields) {
			return 0, fmt.Errorf("no value after NBAS=: %w",
				ErrNonIntegerBasisSize)
		}
		n, err := strconv.Atoi(fields[i+1])
		if err != nil || n < 1 {
			return 0, fmt.Errorf("NBAS= %q: %w",
				fields[i+1], ErrNonIntegerBasisSize)
		}
		if n > maxNBas {
			return 0, fmt.Errorf("NBAS= %d is larger than %d: %w",
				n, maxNBas, ErrNonIntegerBasisSize)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%q: %w", strings.TrimSpace(line),
		ErrMissingHeaderToken)
}

// Buffer collects the values of one block in the order they appear
// in the file until it holds Size*Size of them
type Buffer struct {
	Name      string
	Size      int
	Transpose bool
	Data      []float64
}

// NewBuffer returns an empty buffer for an n x n matrix. Data grows as
// values arrive, so a header alone never allocates n*n values
func NewBuffer(name string, n int, transpose bool) *Buffer {
	return &Buffer{
		Name:      name,
		Size:      n,
		Transpose: transpose,
	}
}

func (b *Buffer) Cap() int {
	return b.Size * b.Size
}

func (b *Buffer) Full() bool {
	return len(b.Data) == b.Cap()
}

// Push appends the one to three values on line to b. Blank lines are
// skipped
func (b *Buffer) Push(line string) error {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 0:
		return nil
	case len(fields) > 3:
		return fmt.Errorf("%s: %d values on one line: %w",
			b.Name, len(fields), ErrTokenCount)
	case len(b.Data)+len(fields) > b.Cap():
		return fmt.Errorf("%s: %d values past %d of %d: %w",
			b.Name, len(fields), len(b.Data), b.Cap(), ErrOverflow)
	}
	vals, err := toFloat(fields)
	if err != nil {
		return fmt.Errorf("%s: %w", b.Name, err)
	}
	b.Data = append(b.Data, vals...)
	return nil
}

// Matrix reshapes the full buffer into a Size x Size matrix, filling
// it row by row and transposing it if b.Transpose is set
func (b *Buffer) Matrix() (*mat.Dense, error) {
	if !b.Full() {
		return nil, fmt.Errorf("%s: read %d of %d values: %w",
			b.Name, len(b.Data), b.Cap(), ErrIncompleteSection)
	}
	m := mat.NewDense(b.Size, b.Size, b.Data)
	if !b.Transpose {
		return m, nil
	}
	var t mat.Dense
	t.CloneFrom(m.T())
	return &t, nil
}

// sectionScanner feeds FILE47 lines to the buffer of the block being
// read. Each marker must appear once, in Block order, and its block
// must be full before the next marker. Lines outside of a block are
// ignored.
type sectionScanner struct {
	bufs   [NBlocks]*Buffer
	cur    Block
	next   Block
	lineno int
}

func newSectionScanner(n int) *sectionScanner {
	s := &sectionScanner{cur: idle}
	for b := Overlap; b < NBlocks; b++ {
		s.bufs[b] = NewBuffer(b.String(), n, b.Transpose())
	}
	return s
}

func findMarker(line string) (Block, bool) {
	for b := Overlap; b < NBlocks; b++ {
		if strings.Contains(line, blockInfo[b].Marker) {
			return b, true
		}
	}
	return idle, false
}

func (s *sectionScanner) Scan(line string) error {
	s.lineno++
	if b, ok := findMarker(line); ok {
		switch {
		case s.cur != idle:
			buf := s.bufs[s.cur]
			return fmt.Errorf("line %d: %s after %d of %d values of %s: %w: %w",
				s.lineno, b, len(buf.Data), buf.Cap(), s.cur,
				ErrMarkerOrder, ErrIncompleteSection)
		case b < s.next:
			return fmt.Errorf("line %d: repeated %s: %w",
				s.lineno, b, ErrMarkerOrder)
		case b > s.next:
			return fmt.Errorf("line %d: %s before %s: %w",
				s.lineno, b, s.next, ErrMarkerOrder)
		}
		s.cur = b
		s.next = b + 1
		return nil
	}
	if s.cur == idle {
		return nil
	}
	buf := s.bufs[s.cur]
	if strings.Contains(line, "$END") {
		return fmt.Errorf("line %d: %s ended after %d of %d values: %w",
			s.lineno, s.cur, len(buf.Data), buf.Cap(),
			ErrIncompleteSection)
	}
	if err := buf.Push(line); err != nil {
		return fmt.Errorf("line %d: %w", s.lineno, err)
	}
	if buf.Full() {
		s.cur = idle
	}
	return nil
}

// Matrix returns the reshaped matrix for block b
func (s *sectionScanner) Matrix(b Block) (*mat.Dense, error) {
	if b >= s.next {
		return nil, fmt.Errorf("%s not found: %w", b, ErrIncompleteSection)
	}
	return s.bufs[b].Matrix()
}

// ReadFile47 reads the header and the overlap, density, Fock and
// LCAOMO matrices from r
func ReadFile47(r io.Reader) (*File47, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty file: %w", ErrMissingHeaderToken)
	}
	n, err := ParseHeader(lines[0])
	if err != nil {
		return nil, err
	}
	s := newSectionScanner(n)
	for _, line := range lines {
		if err := s.Scan(line); err != nil {
			return nil, err
		}
	}
	var mats [NBlocks]*mat.Dense
	for b := Overlap; b < NBlocks; b++ {
		mats[b], err = s.Matrix(b)
		if err != nil {
			return nil, err
		}
	}
	return &File47{
		NBas:    n,
		Fock:    mats[Fock],
		Overlap: mats[Overlap],
		Coeffs:  mats[LCAOMO],
		Density: mats[Density],
	}, nil
}

// dmatSkip is the number of title lines NBO writes ahead of the
// coefficients in an LMO coefficient file
const dmatSkip = 3

// ReadDmat reads an n x n LMO coefficient matrix from r. It is stored
// like the LCAOMO block of a FILE47
func ReadDmat(r io.Reader, n int) (*mat.Dense, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	buf := NewBuffer("dmat", n, LCAOMO.Transpose())
	for i, line := range lines {
		if i < dmatSkip || buf.Full() {
			continue
		}
		if err := buf.Push(line); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return buf.Matrix()
}
