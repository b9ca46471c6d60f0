package waveform

import (
	"github.com/viterin/vek/vek32"
	"github.com/vsariola/wavescore"
)

// Stats summarizes a rendered timeline.
type Stats struct {
	Columns      int     `yaml:"columns" json:"columns"`
	SoundColumns int     `yaml:"soundcolumns" json:"soundcolumns"`
	Restarts     int     `yaml:"restarts" json:"restarts"` // first column and every sound column after a silent one
	Duty         float32 `yaml:"duty" json:"duty"`         // fraction of columns with sound
	MeanHeight   float32 `yaml:"meanheight" json:"meanheight"`
	MinHeight    int     `yaml:"minheight" json:"minheight"`
	MaxHeight    int     `yaml:"maxheight" json:"maxheight"`
}

// Summarize computes the statistics of a timeline and the trace rendered
// from it. An empty timeline gives zero Stats.
func Summarize(timeline wavescore.Timeline, trace []int) Stats {
	n := min(len(timeline), len(trace))
	if n == 0 {
		return Stats{}
	}
	heights := make([]float32, n)
	sound := make([]float32, n)
	restarts := 1
	for i := 0; i < n; i++ {
		heights[i] = float32(trace[i])
		if timeline[i] == wavescore.Sound {
			sound[i] = 1
			if i > 0 && timeline[i-1] == wavescore.Silence {
				restarts++
			}
		}
	}
	return Stats{
		Columns:      n,
		SoundColumns: int(vek32.Sum(sound)),
		Restarts:     restarts,
		Duty:         vek32.Mean(sound),
		MeanHeight:   vek32.Mean(heights),
		MinHeight:    int(vek32.Min(heights)),
		MaxHeight:    int(vek32.Max(heights)),
	}
}
