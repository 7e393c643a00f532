package main

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		line string
		want int
		err  error
	}{
		{line: "NBAS= 2", want: 2},
		{
			line: " $GENNBO  NATOMS=    3  NBAS=   24  UPPER  BODM  $END",
			want: 24,
		},
		{line: " $GENNBO  NATOMS=    3  $END", err: ErrMissingHeaderToken},
		{line: "", err: ErrMissingHeaderToken},
		{line: "NBAS=24", err: ErrMissingHeaderToken},
		{line: "NBAS= two", err: ErrNonIntegerBasisSize},
		{line: "NBAS= 2.5", err: ErrNonIntegerBasisSize},
		{line: "NBAS= 0", err: ErrNonIntegerBasisSize},
		{line: "NBAS= -3", err: ErrNonIntegerBasisSize},
		{line: "NATOMS= 2 NBAS=", err: ErrNonIntegerBasisSize},
		{line: "NBAS= 46340", want: 46340},
		{line: "NBAS= 46341", err: ErrNonIntegerBasisSize},
		{line: "NBAS= 4000000000", err: ErrNonIntegerBasisSize},
		{line: "NBAS= 99999999999999999999", err: ErrNonIntegerBasisSize},
	}
	for _, test := range tests {
		got, err := ParseHeader(test.line)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: got error %v, wanted %v\n",
				test.line, err, test.err)
		}
		if got != test.want {
			t.Errorf("%q: got %v, wanted %v\n", test.line, got, test.want)
		}
	}
}

func TestBufferPush(t *testing.T) {
	buf := NewBuffer("test", 3, false)
	lines := []string{
		"  1.0  2.0  3.0",
		"",
		"  4.0E+00",
		"  5.0  -6.0D-01",
		"  7 8 9",
	}
	for _, line := range lines {
		if err := buf.Push(line); err != nil {
			t.Fatalf("pushing %q: %v", line, err)
		}
	}
	want := []float64{1, 2, 3, 4, 5, -0.6, 7, 8, 9}
	if !reflect.DeepEqual(buf.Data, want) {
		t.Errorf("got %v, wanted %v\n", buf.Data, want)
	}
	if !buf.Full() {
		t.Errorf("got %d values, wanted a full buffer\n", len(buf.Data))
	}
}

func TestBufferPushErrors(t *testing.T) {
	tests := []struct {
		fill []string
		line string
		err  error
	}{
		{line: "1.0 2.0 3.0 4.0", err: ErrTokenCount},
		{line: "1.0 abc", err: ErrNonNumericToken},
		{line: "$END", err: ErrNonNumericToken},
		{fill: []string{"1 2 3"}, line: "4 5", err: ErrOverflow},
		{fill: []string{"1 2 3", "4"}, line: "5", err: ErrOverflow},
	}
	for _, test := range tests {
		buf := NewBuffer("test", 2, false)
		for _, line := range test.fill {
			if err := buf.Push(line); err != nil {
				t.Fatalf("pushing %q: %v", line, err)
			}
		}
		before := len(buf.Data)
		err := buf.Push(test.line)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: got %v, wanted %v\n", test.line, err, test.err)
		}
		if len(buf.Data) != before {
			t.Errorf("%q: buffer grew from %d to %d on error\n",
				test.line, before, len(buf.Data))
		}
	}
}

func TestBufferMatrix(t *testing.T) {
	tests := []struct {
		transpose bool
		want      *mat.Dense
	}{
		{false, mat.NewDense(2, 2, []float64{1, 2, 3, 4})},
		{true, mat.NewDense(2, 2, []float64{1, 3, 2, 4})},
	}
	for _, test := range tests {
		buf := NewBuffer("test", 2, test.transpose)
		buf.Push("1 2 3")
		buf.Push("4")
		got, err := buf.Matrix()
		if err != nil {
			t.Fatal(err)
		}
		if !mat.Equal(got, test.want) {
			t.Errorf("transpose=%v: got %v, wanted %v\n",
				test.transpose, mat.Formatted(got), mat.Formatted(test.want))
		}
	}
	buf := NewBuffer("test", 2, true)
	buf.Push("1 2 3")
	if _, err := buf.Matrix(); !errors.Is(err, ErrIncompleteSection) {
		t.Errorf("got %v, wanted %v\n", err, ErrIncompleteSection)
	}
}

func TestReadFile47(t *testing.T) {
	got, err := LoadFile47("testfiles/order.47")
	if err != nil {
		t.Fatal(err)
	}
	if got.NBas != 2 {
		t.Errorf("NBas: got %v, wanted %v\n", got.NBas, 2)
	}
	tests := []struct {
		name string
		got  *mat.Dense
		want *mat.Dense
	}{
		{"FOCK", got.Fock, mat.NewDense(2, 2, []float64{1, 2, 3, 4})},
		{"OVERLAP", got.Overlap, mat.NewDense(2, 2, []float64{1, 3, 2, 4})},
		{"DENSITY", got.Density, mat.NewDense(2, 2, []float64{5, 7, 6, 8})},
		{"LCAOMO", got.Coeffs, mat.NewDense(2, 2, []float64{9, 11, 10, 12})},
	}
	for _, test := range tests {
		if !compMat(test.got, test.want, 1e-12) {
			t.Errorf("%s: got %v, wanted %v\n", test.name,
				mat.Formatted(test.got), mat.Formatted(test.want))
		}
	}
}

func TestReadFile47Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		err  error
	}{
		{"empty", "", ErrMissingHeaderToken},
		{"no header", " $GENNBO NATOMS= 1 $END\n", ErrMissingHeaderToken},
		{"bad header", "NBAS= x\n", ErrNonIntegerBasisSize},
		{
			"no sections",
			"NBAS= 1\n",
			ErrIncompleteSection,
		},
		{
			"missing section",
			"NBAS= 1\n$OVERLAP\n1\n$DENSITY\n1\n$FOCK\n1\n",
			ErrIncompleteSection,
		},
		{
			"truncated",
			"NBAS= 2\n$OVERLAP\n1 0 0\n1\n$DENSITY\n1 0 0\n1\n" +
				"$FOCK\n1 0 0\n1\n$LCAOMO\n1 0\n",
			ErrIncompleteSection,
		},
		{
			"early end",
			"NBAS= 2\n$OVERLAP\n1 0 0\n$END\n",
			ErrIncompleteSection,
		},
		{
			"out of order",
			"NBAS= 1\n$OVERLAP\n1\n$FOCK\n1\n$DENSITY\n1\n$LCAOMO\n1\n",
			ErrMarkerOrder,
		},
		{
			"repeated",
			"NBAS= 1\n$OVERLAP\n1\n$OVERLAP\n1\n",
			ErrMarkerOrder,
		},
		{
			"overlapping",
			"NBAS= 2\n$OVERLAP\n1 0\n$DENSITY\n1 0 0\n1\n",
			ErrMarkerOrder,
		},
		{
			"huge basis",
			"NBAS= 4000000000\n$OVERLAP\n1\n",
			ErrNonIntegerBasisSize,
		},
		{
			"short before next marker",
			"NBAS= 2\n$OVERLAP\n1 0 0\n$DENSITY\n1 0 0\n1\n",
			ErrIncompleteSection,
		},
		{
			"non-numeric",
			"NBAS= 1\n$OVERLAP\none\n",
			ErrNonNumericToken,
		},
		{
			"overflow",
			"NBAS= 1\n$OVERLAP\n1 0\n",
			ErrOverflow,
		},
		{
			"too many values",
			"NBAS= 2\n$OVERLAP\n1 0 0 1\n",
			ErrTokenCount,
		},
	}
	for _, test := range tests {
		got, err := ReadFile47(strings.NewReader(test.file))
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got %v, wanted %v\n", test.name, err, test.err)
		}
		if got != nil {
			t.Errorf("%s: got %v, wanted nil\n", test.name, got)
		}
	}
}

// lines after a full block are ignored until the next marker
func TestReadFile47Trailing(t *testing.T) {
	file := "NBAS= 1\n$OVERLAP\n1\n2 3\n$DENSITY\n4\n$FOCK\n5\n" +
		"$LCAOMO\n6\n$END\n$DIPOLE\n7 8 9\n10 11 12 13\n"
	got, err := ReadFile47(strings.NewReader(file))
	if err != nil {
		t.Fatal(err)
	}
	vals := []float64{
		got.Overlap.At(0, 0), got.Density.At(0, 0),
		got.Fock.At(0, 0), got.Coeffs.At(0, 0),
	}
	want := []float64{1, 4, 5, 6}
	if !reflect.DeepEqual(vals, want) {
		t.Errorf("got %v, wanted %v\n", vals, want)
	}
}

// a header alone does not allocate the n*n buffers
func TestNewBufferLazy(t *testing.T) {
	buf := NewBuffer("test", maxNBas, true)
	if cap(buf.Data) != 0 {
		t.Errorf("got capacity %d, wanted 0\n", cap(buf.Data))
	}
	if err := buf.Push("1 2 3"); err != nil {
		t.Fatal(err)
	}
	if len(buf.Data) != 3 {
		t.Errorf("got %d values, wanted 3\n", len(buf.Data))
	}
}

func TestReadDmat(t *testing.T) {
	got, err := LoadDmat("testfiles/dmat", 2)
	if err != nil {
		t.Fatal(err)
	}
	want := Identity(2)
	if !compMat(got, want, 1e-12) {
		t.Errorf("got %v, wanted %v\n", mat.Formatted(got), mat.Formatted(want))
	}
}

func TestReadDmatTranspose(t *testing.T) {
	file := "title\n\n1 2\n1 2 3\n4\n5 6\n"
	got, err := ReadDmat(strings.NewReader(file), 2)
	if err != nil {
		t.Fatal(err)
	}
	want := mat.NewDense(2, 2, []float64{1, 3, 2, 4})
	if !mat.Equal(got, want) {
		t.Errorf("got %v, wanted %v\n", mat.Formatted(got), mat.Formatted(want))
	}
}

func TestReadDmatErrors(t *testing.T) {
	tests := []struct {
		file string
		err  error
	}{
		{"a\nb\nc\n1 0 0\n", ErrIncompleteSection},
		{"a\nb\nc\n1 0 0\nx\n", ErrNonNumericToken},
		{"a\nb\nc\n1 0 0\n1 0\n", ErrOverflow},
		{"", ErrIncompleteSection},
	}
	for _, test := range tests {
		_, err := ReadDmat(strings.NewReader(test.file), 2)
		if !errors.Is(err, test.err) {
			t.Errorf("%q: got %v, wanted %v\n", test.file, err, test.err)
		}
	}
}
