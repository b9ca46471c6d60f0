package waveform

import (
	"errors"
	"fmt"

	"github.com/vsariola/wavescore"
)

// Baseline is the height the wave settles to during silence and restarts
// from when sound resumes.
const Baseline = 0

var (
	ErrNoActivePitch   = errors.New("no active pitch for offset")
	ErrEmptyInstrument = errors.New("instrument has no rows")
	ErrNoBaseline      = errors.New("instrument rows do not span the baseline")
)

// PitchLookupError is returned when the idle wave has no marked cell at the
// sampled column. It matches ErrNoActivePitch with errors.Is.
type PitchLookupError struct {
	Column int // timeline column being rendered, -1 if not known
	Offset int // column of the idle wave that was sampled
}

func (e *PitchLookupError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("%v %d", ErrNoActivePitch, e.Offset)
	}
	return fmt.Sprintf("column %d: %v %d", e.Column, ErrNoActivePitch, e.Offset)
}

func (e *PitchLookupError) Is(target error) bool { return target == ErrNoActivePitch }

type (
	// Engine draws the wave of an instrument along a channel timeline.
	Engine struct {
		Source wavescore.GlyphMatrix // recolored idle wave of the instrument
		Marker rune
	}

	// State is carried from one timeline column to the next.
	State struct {
		Started bool             // false before the first column
		Last    wavescore.Symbol // symbol of the previous column
		WaveX   int              // columns since the last restart
		Y       int              // height of the marker in the previous column
	}

	// Result of rendering a timeline: the drawn matrix and the height of the
	// marker in each column.
	Result struct {
		Matrix wavescore.GlyphMatrix
		Trace  []int
	}
)

// New returns an engine for the instrument, recoloring its idle wave with
// marker.
func New(instrument wavescore.GlyphMatrix, marker rune) *Engine {
	return &Engine{Source: instrument.Recolor(marker), Marker: marker}
}

// Render draws the timeline. The result has one column per symbol and the
// rows of the instrument, [min y, max y]; exactly one cell per column holds
// the marker.
func (e *Engine) Render(timeline wavescore.Timeline) (Result, error) {
	minY, ok := e.Source.MinHeight()
	if !ok {
		return Result{}, ErrEmptyInstrument
	}
	maxY, _ := e.Source.MaxHeight()
	if Baseline < minY || Baseline > maxY {
		return Result{}, fmt.Errorf("%w: rows span [%d, %d]", ErrNoBaseline, minY, maxY)
	}
	out := wavescore.NewBlankMatrix(minY, maxY, len(timeline))
	trace := make([]int, len(timeline))
	var state State
	for x, sym := range timeline {
		var err error
		state, err = e.Step(state, sym)
		if err != nil {
			var perr *PitchLookupError
			if errors.As(err, &perr) {
				perr.Column = x
			}
			return Result{}, err
		}
		out.Rows[state.Y][x] = e.Marker
		trace[x] = state.Y
	}
	return Result{Matrix: out, Trace: trace}, nil
}

// Step advances the state by one column; the returned State.Y is the row
// where the marker is drawn for sym.
func (e *Engine) Step(state State, sym wavescore.Symbol) (State, error) {
	switch {
	case !state.Started:
		state.WaveX, state.Y = 0, Baseline
	case sym == wavescore.Silence:
		state.Y = glide(state.Y)
	case state.Last == wavescore.Silence:
		state.WaveX, state.Y = 0, Baseline
	default:
		y, err := PitchAt(e.Source, state.WaveX, e.Marker)
		if err != nil {
			return state, err
		}
		state.Y = y
	}
	state.Started = true
	state.WaveX++
	state.Last = sym
	return state, nil
}

// PitchAt returns the highest row of m holding marker at column x, wrapping x
// around the width of m.
func PitchAt(m wavescore.GlyphMatrix, x int, marker rune) (int, error) {
	if m.Width == 0 {
		return 0, &PitchLookupError{Column: -1, Offset: x}
	}
	offset := x % m.Width
	for _, y := range m.Heights() {
		if m.Rows[y][offset] == marker {
			return y, nil
		}
	}
	return 0, &PitchLookupError{Column: -1, Offset: offset}
}

// glide moves y one row toward the baseline.
func glide(y int) int {
	switch {
	case y > Baseline:
		return y - 1
	case y < Baseline:
		return y + 1
	}
	return y
}
