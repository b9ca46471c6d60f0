package gomidi

import (
	"errors"
	"fmt"

	"github.com/vsariola/wavescore"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Options select what part of a MIDI file becomes the timeline and how it is
// quantized.
type Options struct {
	Track        int // index of the track to read, -1 for all tracks
	Channel      int // MIDI channel 0-15, -1 for all channels
	StepsPerBeat int // timeline columns per quarter note, 4 if zero
}

var ErrNoMetricTicks = errors.New("only metric time formats are supported")

// DefaultOptions read every track and channel in sixteenth notes.
var DefaultOptions = Options{Track: -1, Channel: -1, StepsPerBeat: 4}

type span struct {
	from, to uint32 // in absolute ticks, to is exclusive
}

// ReadTimeline reads a standard MIDI file into a timeline.
func ReadTimeline(path string, opts Options) (wavescore.Timeline, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %v: %v", wavescore.ErrInvalidScorePath, path, err)
	}
	return TimelineFromSMF(s, opts)
}

// TimelineFromSMF quantizes the notes of the selected tracks and channels
// into steps: a step is Sound if any note sounds during it. Notes left
// hanging last until the end of their track.
func TimelineFromSMF(s *smf.SMF, opts Options) (wavescore.Timeline, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("%w (got %v)", ErrNoMetricTicks, s.TimeFormat)
	}
	if opts.StepsPerBeat <= 0 {
		opts.StepsPerBeat = DefaultOptions.StepsPerBeat
	}
	if opts.Track >= len(s.Tracks) {
		return nil, fmt.Errorf("track %d does not exist, the file has %d tracks", opts.Track, len(s.Tracks))
	}
	step := uint32(ticks) / uint32(opts.StepsPerBeat)
	if step == 0 {
		step = 1
	}
	var spans []span
	var end uint32
	for i, track := range s.Tracks {
		if opts.Track >= 0 && i != opts.Track {
			continue
		}
		trackSpans, trackEnd := noteSpans(track, opts.Channel)
		spans = append(spans, trackSpans...)
		end = max(end, trackEnd)
	}
	for _, sp := range spans {
		end = max(end, sp.to)
	}
	timeline := make(wavescore.Timeline, (end+step-1)/step)
	for i := range timeline {
		timeline[i] = wavescore.Silence
	}
	for _, sp := range spans {
		for j := sp.from / step; j < (sp.to+step-1)/step; j++ {
			timeline[j] = wavescore.Sound
		}
	}
	return timeline, nil
}

// noteSpans returns the sounding intervals of the notes on channel (any
// channel if negative) and the absolute tick where the track ends.
func noteSpans(track smf.Track, channel int) ([]span, uint32) {
	var ret []span
	open := map[[2]uint8]uint32{} // channel, key -> tick of note on
	var tick uint32
	for _, ev := range track {
		tick += ev.Delta
		var ch, key, vel uint8
		switch {
		case ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0:
			if channel >= 0 && int(ch) != channel {
				continue
			}
			if _, ok := open[[2]uint8{ch, key}]; !ok {
				open[[2]uint8{ch, key}] = tick
			}
		case ev.Message.GetNoteOn(&ch, &key, &vel), ev.Message.GetNoteOff(&ch, &key, &vel):
			if from, ok := open[[2]uint8{ch, key}]; ok {
				ret = append(ret, span{from: from, to: max(tick, from+1)})
				delete(open, [2]uint8{ch, key})
			}
		}
	}
	for _, from := range open {
		ret = append(ret, span{from: from, to: max(tick, from+1)})
	}
	return ret, tick
}
