package wavescore_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsariola/wavescore"
)

func TestParseTimeline(t *testing.T) {
	for _, input := range []string{"**--*", "|**--*|", "[**--*]", "  |**--*|\n"} {
		timeline, err := wavescore.ParseTimeline(input)
		if err != nil {
			t.Errorf("ParseTimeline(%q) failed: %v", input, err)
			continue
		}
		if timeline.String() != "**--*" {
			t.Errorf("ParseTimeline(%q) was %q", input, timeline.String())
		}
	}
}

func TestParseTimelineInvalidSymbol(t *testing.T) {
	_, err := wavescore.ParseTimeline("**x-")
	var serr *wavescore.SymbolError
	if !errors.As(err, &serr) {
		t.Fatalf("expected a SymbolError, got %v", err)
	}
	if serr.Column != 2 || serr.Symbol != 'x' {
		t.Errorf("error was at column %v for %q", serr.Column, serr.Symbol)
	}
}

func TestParseScore(t *testing.T) {
	score, err := wavescore.ParseScore([]byte("piano\r\n|**--|\nignored\n"))
	if err != nil {
		t.Fatalf("ParseScore failed: %v", err)
	}
	if score.Instrument != "piano" {
		t.Errorf("instrument was %q", score.Instrument)
	}
	if score.Timeline.String() != "**--" {
		t.Errorf("timeline was %q", score.Timeline.String())
	}
	if _, err := wavescore.ParseScore([]byte("piano\n")); !errors.Is(err, wavescore.ErrIncompleteScore) {
		t.Errorf("expected ErrIncompleteScore for a score without timeline, got %v", err)
	}
}

func TestReadScore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.score")
	if err := os.WriteFile(path, []byte("organ\n*-*\n"), 0644); err != nil {
		t.Fatalf("could not write score: %v", err)
	}
	score, err := wavescore.ReadScore(path)
	if err != nil {
		t.Fatalf("ReadScore failed: %v", err)
	}
	if score.Instrument != "organ" || score.Timeline.String() != "*-*" {
		t.Errorf("score was %+v", score)
	}
	_, err = wavescore.ReadScore(filepath.Join(dir, "missing.score"))
	if !errors.Is(err, wavescore.ErrInvalidScorePath) {
		t.Errorf("expected ErrInvalidScorePath for a missing file, got %v", err)
	}
}

func TestMarkerFromOptions(t *testing.T) {
	cases := []struct {
		options map[string]string
		marker  rune
	}{
		{nil, '*'},
		{map[string]string{}, '*'},
		{map[string]string{"character": ""}, '*'},
		{map[string]string{"character": "o"}, 'o'},
		{map[string]string{"character": "#!"}, '#'},
		{map[string]string{"character": "█"}, '█'},
		{map[string]string{"other": "x"}, '*'},
	}
	for _, c := range cases {
		marker, err := wavescore.MarkerFromOptions(c.options)
		if err != nil {
			t.Errorf("MarkerFromOptions(%v) failed: %v", c.options, err)
			continue
		}
		if marker != c.marker {
			t.Errorf("MarkerFromOptions(%v) was %q, expected %q", c.options, marker, c.marker)
		}
	}
	if _, err := wavescore.MarkerFromOptions(map[string]string{"character": " "}); !errors.Is(err, wavescore.ErrBlankMarker) {
		t.Errorf("expected ErrBlankMarker, got %v", err)
	}
}

func TestParseScoreLongTimeline(t *testing.T) {
	timeline := strings.Repeat("*", 40000) + strings.Repeat("-", 30000)
	score, err := wavescore.ParseScore([]byte("piano\n" + timeline))
	if err != nil {
		t.Fatalf("ParseScore failed: %v", err)
	}
	if len(score.Timeline) != 70000 || score.Timeline.String() != timeline {
		t.Errorf("timeline had %v symbols, expected 70000", len(score.Timeline))
	}
}

func TestParseScoreLineEndings(t *testing.T) {
	cases := []struct {
		data     string
		timeline string
	}{
		{"piano\n**-", "**-"},
		{"piano\r\n**-\r\n", "**-"},
		{"piano\n\n", ""},
	}
	for _, c := range cases {
		score, err := wavescore.ParseScore([]byte(c.data))
		if err != nil {
			t.Errorf("ParseScore(%q) failed: %v", c.data, err)
			continue
		}
		if score.Timeline.String() != c.timeline {
			t.Errorf("ParseScore(%q) timeline was %q, expected %q", c.data, score.Timeline.String(), c.timeline)
		}
	}
	for _, data := range []string{"", "piano"} {
		if _, err := wavescore.ParseScore([]byte(data)); !errors.Is(err, wavescore.ErrIncompleteScore) {
			t.Errorf("ParseScore(%q): expected ErrIncompleteScore, got %v", data, err)
		}
	}
}
