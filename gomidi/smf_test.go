package gomidi_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vsariola/wavescore"
	"github.com/vsariola/wavescore/gomidi"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// newSMF returns a file with 96 ticks per quarter note, so that a sixteenth
// note is 24 ticks.
func newSMF(t *testing.T, tracks ...smf.Track) *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(96)
	for i, track := range tracks {
		if err := s.Add(track); err != nil {
			t.Fatalf("error adding track %d: %v", i, err)
		}
	}
	return s
}

func TestTimelineFromSMF(t *testing.T) {
	var track smf.Track
	track.Add(0, midi.NoteOn(0, 60, 100))
	track.Add(48, midi.NoteOff(0, 60))
	track.Add(48, midi.NoteOn(0, 62, 100))
	track.Add(24, midi.NoteOn(0, 62, 0)) // note on with zero velocity ends the note
	track.Close(48)
	timeline, err := gomidi.TimelineFromSMF(newSMF(t, track), gomidi.DefaultOptions)
	if err != nil {
		t.Fatalf("TimelineFromSMF failed: %v", err)
	}
	if timeline.String() != "**--*--" {
		t.Errorf("timeline was %q, expected %q", timeline.String(), "**--*--")
	}
}

func TestTimelineFromSMFSelectsChannelAndTrack(t *testing.T) {
	var first, second smf.Track
	first.Add(0, midi.NoteOn(0, 60, 100))
	first.Add(24, midi.NoteOff(0, 60))
	first.Add(24, midi.NoteOn(1, 60, 100))
	first.Add(24, midi.NoteOff(1, 60))
	first.Close(24)
	second.Add(72, midi.NoteOn(0, 64, 100))
	second.Add(24, midi.NoteOff(0, 64))
	second.Close(0)
	s := newSMF(t, first, second)
	cases := []struct {
		opts     gomidi.Options
		expected string
	}{
		{gomidi.Options{Track: -1, Channel: -1}, "*-**"},
		{gomidi.Options{Track: -1, Channel: 0}, "*--*"},
		{gomidi.Options{Track: 0, Channel: -1}, "*-*-"},
		{gomidi.Options{Track: 1, Channel: -1}, "---*"},
		{gomidi.Options{Track: 0, Channel: 1}, "--*-"},
	}
	for _, c := range cases {
		timeline, err := gomidi.TimelineFromSMF(s, c.opts)
		if err != nil {
			t.Errorf("TimelineFromSMF(%+v) failed: %v", c.opts, err)
			continue
		}
		if timeline.String() != c.expected {
			t.Errorf("TimelineFromSMF(%+v) was %q, expected %q", c.opts, timeline.String(), c.expected)
		}
	}
	if _, err := gomidi.TimelineFromSMF(s, gomidi.Options{Track: 2, Channel: -1}); err == nil {
		t.Errorf("expected an error for a track that does not exist")
	}
}

func TestHangingNoteLastsToEnd(t *testing.T) {
	var track smf.Track
	track.Add(24, midi.NoteOn(0, 60, 100))
	track.Close(72)
	timeline, err := gomidi.TimelineFromSMF(newSMF(t, track), gomidi.Options{Track: -1, Channel: -1, StepsPerBeat: 2})
	if err != nil {
		t.Fatalf("TimelineFromSMF failed: %v", err)
	}
	// 48 ticks per step: the note covers ticks 24-96
	if timeline.String() != "**" {
		t.Errorf("timeline was %q, expected %q", timeline.String(), "**")
	}
}

func TestReadTimelineMissingFile(t *testing.T) {
	_, err := gomidi.ReadTimeline(filepath.Join(t.TempDir(), "missing.mid"), gomidi.DefaultOptions)
	if !errors.Is(err, wavescore.ErrInvalidScorePath) {
		t.Errorf("expected ErrInvalidScorePath, got %v", err)
	}
}
