package wavescore

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Symbol is a single column of a channel timeline.
type Symbol byte

const (
	Sound   Symbol = '*'
	Silence Symbol = '-'
)

// Timeline is the ordered sound/silence sequence of a channel, one Symbol
// per output column.
type Timeline []Symbol

// Score is what a score file contains: the name of the instrument and the
// timeline it plays.
type Score struct {
	Instrument string
	Timeline   Timeline
}

// timelineDelimiters may wrap a timeline, e.g. "|**--|" or "[**--]".
const timelineDelimiters = "|[]"

var (
	ErrInvalidScorePath = errors.New("invalid path to score file")
	ErrIncompleteScore  = errors.New("score needs an instrument line and a timeline line")
)

// SymbolError reports a timeline character that is neither Sound nor Silence.
type SymbolError struct {
	Column int
	Symbol rune
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q at column %d, expected %q or %q", e.Symbol, e.Column, rune(Sound), rune(Silence))
}

func (s Symbol) String() string {
	return string(rune(s))
}

func (t Timeline) String() string {
	b := make([]byte, len(t))
	for i, s := range t {
		b[i] = byte(s)
	}
	return string(b)
}

// Copy makes a copy of a Timeline.
func (t Timeline) Copy() Timeline {
	ret := make(Timeline, len(t))
	copy(ret, t)
	return ret
}

// ParseTimeline splits a timeline string into symbols, after removing the
// surrounding whitespace and any bracket delimiters.
func ParseTimeline(s string) (Timeline, error) {
	s = strings.Trim(strings.TrimSpace(s), timelineDelimiters)
	ret := make(Timeline, 0, len(s))
	for i, c := range []rune(s) {
		switch Symbol(c) {
		case Sound, Silence:
			ret = append(ret, Symbol(c))
		default:
			return nil, &SymbolError{Column: i, Symbol: c}
		}
	}
	return ret, nil
}

// ParseScore parses the contents of a score file: the instrument name on the
// first line, the timeline on the second. Anything after that is ignored.
func ParseScore(data []byte) (Score, error) {
	lines := strings.SplitN(string(data), "\n", 3)
	// a newline ending the instrument line does not start a timeline line
	if len(lines) < 2 || (len(lines) == 2 && lines[1] == "") {
		return Score{}, ErrIncompleteScore
	}
	timeline, err := ParseTimeline(strings.TrimRight(lines[1], "\r"))
	if err != nil {
		return Score{}, fmt.Errorf("could not parse timeline: %w", err)
	}
	return Score{Instrument: strings.TrimSpace(lines[0]), Timeline: timeline}, nil
}

// ReadScore reads and parses a score file. A file that cannot be read is
// reported as ErrInvalidScorePath.
func ReadScore(path string) (Score, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Score{}, fmt.Errorf("%w %v: %v", ErrInvalidScorePath, path, err)
	}
	return ParseScore(data)
}
