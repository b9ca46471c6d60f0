package wavescore

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Blank is the character of an empty cell.
const Blank = ' '

// GlyphMatrix is a grid of single characters indexed by an integer height y
// (the keys of Rows, not necessarily contiguous, possibly negative) and a
// column x in [0, Width). Every row has exactly Width characters. A
// GlyphMatrix is not mutated after construction: Recolor, Slice and the
// waveform engine all build new matrices.
type GlyphMatrix struct {
	Rows  map[int][]rune
	Width int
}

// TableSyntaxError is returned when a line of an instrument table is not of
// the form "<y>\t<row>".
type TableSyntaxError struct {
	Line int
	Text string
	Err  error
}

func (e *TableSyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("instrument table line %d (%q): %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("instrument table line %d (%q): expected <height>\\t<row>", e.Line, e.Text)
}

func (e *TableSyntaxError) Unwrap() error { return e.Err }

// NewGlyphMatrix builds a matrix from rows of text, right-padding every row
// with blanks to the length of the longest one.
func NewGlyphMatrix(rows map[int]string) GlyphMatrix {
	width := 0
	for _, r := range rows {
		if n := utf8.RuneCountInString(r); n > width {
			width = n
		}
	}
	m := GlyphMatrix{Rows: make(map[int][]rune, len(rows)), Width: width}
	for y, r := range rows {
		m.Rows[y] = padRow([]rune(r), width)
	}
	return m
}

// NewBlankMatrix returns a matrix of the given width with a blank row for
// every height in [minY, maxY].
func NewBlankMatrix(minY, maxY, width int) GlyphMatrix {
	m := GlyphMatrix{Rows: make(map[int][]rune), Width: width}
	for y := maxY; y >= minY; y-- {
		m.Rows[y] = padRow(nil, width)
	}
	return m
}

// ParseGlyphTable parses an instrument table; see ParseGlyphMatrix.
func ParseGlyphTable(data []byte) (GlyphMatrix, error) {
	return ParseGlyphMatrix(bytes.NewReader(data))
}

// ParseGlyphMatrix reads an instrument table: one "<y>\t<row>" line per
// height, in any order. Empty lines are ignored. When a height appears more
// than once, the last line wins.
func ParseGlyphMatrix(r io.Reader) (GlyphMatrix, error) {
	rows := map[int]string{}
	reader := bufio.NewReader(r)
	lineNum := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return GlyphMatrix{}, fmt.Errorf("could not read instrument table: %w", err)
		}
		if err == io.EOF && line == "" {
			break
		}
		lineNum++
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			return GlyphMatrix{}, &TableSyntaxError{Line: lineNum, Text: line}
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return GlyphMatrix{}, &TableSyntaxError{Line: lineNum, Text: line, Err: err}
		}
		rows[y] = parts[1]
	}
	return NewGlyphMatrix(rows), nil
}

// MinHeight returns the smallest row key; ok is false for an empty matrix.
func (m GlyphMatrix) MinHeight() (y int, ok bool) {
	for k := range m.Rows {
		if !ok || k < y {
			y, ok = k, true
		}
	}
	return y, ok
}

// MaxHeight returns the largest row key; ok is false for an empty matrix.
func (m GlyphMatrix) MaxHeight() (y int, ok bool) {
	for k := range m.Rows {
		if !ok || k > y {
			y, ok = k, true
		}
	}
	return y, ok
}

// Heights returns the row keys in descending order, i.e. the order in which
// the rows are printed.
func (m GlyphMatrix) Heights() []int {
	ret := make([]int, 0, len(m.Rows))
	for y := range m.Rows {
		ret = append(ret, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ret)))
	return ret
}

// Row returns the row at height y, or nil if there is no such row.
func (m GlyphMatrix) Row(y int) []rune {
	return m.Rows[y]
}

// Copy makes a deep copy of a GlyphMatrix.
func (m GlyphMatrix) Copy() GlyphMatrix {
	rows := make(map[int][]rune, len(m.Rows))
	for y, r := range m.Rows {
		row := make([]rune, len(r))
		copy(row, r)
		rows[y] = row
	}
	return GlyphMatrix{Rows: rows, Width: m.Width}
}

// Equal reports whether two matrices have the same width, heights and cells.
func (m GlyphMatrix) Equal(o GlyphMatrix) bool {
	if m.Width != o.Width || len(m.Rows) != len(o.Rows) {
		return false
	}
	for y, r := range m.Rows {
		or, ok := o.Rows[y]
		if !ok || string(r) != string(or) {
			return false
		}
	}
	return true
}

// Recolor returns a copy of the matrix where every non-blank cell is
// replaced with marker. The receiver is left untouched.
func (m GlyphMatrix) Recolor(marker rune) GlyphMatrix {
	ret := GlyphMatrix{Rows: make(map[int][]rune, len(m.Rows)), Width: m.Width}
	for y, r := range m.Rows {
		row := make([]rune, len(r))
		for x, c := range r {
			if c != Blank {
				c = marker
			}
			row[x] = c
		}
		ret.Rows[y] = row
	}
	return ret
}

// Slice returns the columns [from, to) of the matrix, clamped to its width.
func (m GlyphMatrix) Slice(from, to int) GlyphMatrix {
	from = max(0, min(from, m.Width))
	to = max(from, min(to, m.Width))
	ret := GlyphMatrix{Rows: make(map[int][]rune, len(m.Rows)), Width: to - from}
	for y, r := range m.Rows {
		row := make([]rune, to-from)
		copy(row, r[from:to])
		ret.Rows[y] = row
	}
	return ret
}

// String formats the matrix as "<y>\t<row>" lines, from the top row down; the
// output parses back with ParseGlyphTable.
func (m GlyphMatrix) String() string {
	var b strings.Builder
	for _, y := range m.Heights() {
		fmt.Fprintf(&b, "%d\t%s\n", y, string(m.Rows[y]))
	}
	return b.String()
}

// IsBlankRow reports whether every cell of the row is blank.
func IsBlankRow(row []rune) bool {
	for _, c := range row {
		if c != Blank {
			return false
		}
	}
	return true
}

func padRow(r []rune, width int) []rune {
	row := make([]rune, width)
	n := copy(row, r)
	for i := n; i < width; i++ {
		row[i] = Blank
	}
	return row
}
