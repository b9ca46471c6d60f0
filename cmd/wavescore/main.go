package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vsariola/wavescore"
	"github.com/vsariola/wavescore/gomidi"
	"github.com/vsariola/wavescore/instruments"
	"github.com/vsariola/wavescore/render"
	"github.com/vsariola/wavescore/version"
	"github.com/vsariola/wavescore/waveform"
)

var midiExtensions = []string{".mid", ".midi"}

func main() {
	flag.String(wavescore.MarkerOption, "", "Character used to draw the wave. Defaults to *.")
	instrDir := flag.String("i", "", "Look for instruments in this directory before the default ones (./instruments and the user config directory).")
	instrName := flag.String("instrument", "", "Instrument to use instead of the one named in the score. Required for MIDI files.")
	tmplDir := flag.String("t", "", "Use the templates (text.tmpl, stats.tmpl) in this directory instead of the standard templates.")
	wrap := flag.Int("w", 0, "Wrap the wave into systems of this many columns. 0 disables wrapping, -1 uses the terminal width.")
	title := flag.Bool("title", false, "Title-case the instrument name in the header.")
	statsFlag := flag.Bool("stats", false, "Print statistics of the wave after it; with -j or -y they are included in the document.")
	jsonOut := flag.Bool("j", false, "Output the wave as .json instead of text.")
	yamlOut := flag.Bool("y", false, "Output the wave as .yml instead of text.")
	midiTrack := flag.Int("midi-track", -1, "Read only this track of MIDI files; -1 reads all tracks.")
	midiChannel := flag.Int("midi-channel", -1, "Read only this channel (0-15) of MIDI files; -1 reads all channels.")
	steps := flag.Int("steps", 4, "Columns per quarter note when reading MIDI files.")
	list := flag.Bool("l", false, "List the available instruments.")
	versionFlag := flag.Bool("v", false, "Print version.")
	help := flag.Bool("h", false, "Show help.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if (flag.NArg() == 0 && !*list) || *help {
		flag.Usage()
		os.Exit(0)
	}
	options := map[string]string{}
	flag.Visit(func(f *flag.Flag) { options[f.Name] = f.Value.String() })
	marker, err := wavescore.MarkerFromOptions(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -%v: %v\n", wavescore.MarkerOption, err)
		os.Exit(1)
	}
	library := instruments.Library{Dirs: instruments.DefaultDirs()}
	if *instrDir != "" {
		library.Dirs = append([]string{*instrDir}, library.Dirs...)
	}
	if *list {
		names, err := library.Names()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not list instruments: %v\n", err)
			os.Exit(1)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		if flag.NArg() == 0 {
			os.Exit(0)
		}
	}
	renderOptions := render.Options{Title: *title, Wrap: *wrap}
	if *wrap < 0 {
		renderOptions.Wrap = 0
		if width, ok := render.TerminalWidth(int(os.Stdout.Fd())); ok {
			renderOptions.Wrap = render.CellsPerSystem(width)
		} else {
			log.Printf("standard output is not a terminal, not wrapping")
		}
	}
	var renderer *render.Renderer
	if *tmplDir != "" {
		renderer, err = render.NewFromTemplates(*tmplDir, renderOptions)
	} else {
		renderer, err = render.New(renderOptions)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating renderer: %v\n", err)
		os.Exit(1)
	}
	midiOptions := gomidi.Options{Track: *midiTrack, Channel: *midiChannel, StepsPerBeat: *steps}
	readScore := func(filename string) (wavescore.Score, error) {
		if isMIDI(filename) {
			if *instrName == "" {
				return wavescore.Score{}, errors.New("MIDI files name no instrument, give one with -instrument")
			}
			timeline, err := gomidi.ReadTimeline(filename, midiOptions)
			if err != nil {
				return wavescore.Score{}, err
			}
			return wavescore.Score{Instrument: *instrName, Timeline: timeline}, nil
		}
		score, err := wavescore.ReadScore(filename)
		if err != nil {
			return wavescore.Score{}, err
		}
		if *instrName != "" {
			score.Instrument = *instrName
		}
		return score, nil
	}
	process := func(filename string) error {
		score, err := readScore(filename)
		if err != nil {
			return err
		}
		instrument, err := library.Load(score.Instrument)
		if err != nil {
			return err
		}
		result, err := waveform.New(instrument, marker).Render(score.Timeline)
		if err != nil {
			return fmt.Errorf("could not draw the wave of %v: %w", score.Instrument, err)
		}
		var stats *waveform.Stats
		if *statsFlag {
			s := waveform.Summarize(score.Timeline, result.Trace)
			stats = &s
		}
		switch {
		case *jsonOut, *yamlOut:
			doc := renderer.Document(score.Instrument, result.Matrix)
			doc.Stats = stats
			var out []byte
			if *jsonOut {
				out, err = json.MarshalIndent(doc, "", "  ")
				out = append(out, '\n')
			} else {
				out, err = yaml.Marshal(doc)
			}
			if err != nil {
				return fmt.Errorf("could not marshal the wave: %v", err)
			}
			fmt.Print(string(out))
		default:
			text, err := renderer.Text(score.Instrument, result.Matrix)
			if err != nil {
				return err
			}
			fmt.Print(text)
			if stats != nil {
				text, err := renderer.Stats(*stats)
				if err != nil {
					return err
				}
				fmt.Print(text)
			}
		}
		return nil
	}
	retval := 0
	named := flag.NArg() > 1
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			var files []string
			for _, pattern := range []string{"*.score", "*.mid", "*.midi"} {
				matches, err := filepath.Glob(filepath.Join(param, pattern))
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not glob the path %v for score files: %v\n", param, err)
					retval = 1
					continue
				}
				files = append(files, matches...)
			}
			for _, file := range files {
				if err := process(file); err != nil {
					fmt.Fprintln(os.Stderr, errorMessage(file, err, true))
					retval = 1
				}
			}
		} else {
			if err := process(param); err != nil {
				fmt.Fprintln(os.Stderr, errorMessage(param, err, named))
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

// errorMessage gives the short user-facing messages for a missing instrument
// or score, and the full error otherwise. With several inputs, the short
// messages are prefixed with the file name.
func errorMessage(filename string, err error, named bool) string {
	var msg string
	switch {
	case errors.Is(err, instruments.ErrUnknownSource):
		msg = "Unknown source."
	case errors.Is(err, wavescore.ErrInvalidScorePath):
		msg = "Invalid path to score file."
	default:
		return fmt.Sprintf("could not process file %v: %v", filename, err)
	}
	if named {
		return fmt.Sprintf("%v: %v", filename, msg)
	}
	return msg
}

func isMIDI(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range midiExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "wavescore draws the wave of an instrument playing a score.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
