package instruments

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vsariola/wavescore"
	"gopkg.in/yaml.v2"
)

//go:embed presets/*
var presetFS embed.FS

var ErrUnknownSource = errors.New("unknown source")

type (
	// Library finds instrument tables by name, first in Dirs, in order, and
	// then among the built-in presets.
	Library struct {
		Dirs []string
	}

	// UnknownSourceError is returned when no instrument of the name exists.
	// It matches ErrUnknownSource with errors.Is.
	UnknownSourceError struct {
		Name string
	}

	// instrumentFile is the YAML form of an instrument: the rows keyed by
	// height.
	instrumentFile struct {
		Rows map[int]string
	}
)

// extensions are tried in this order after the bare name.
var extensions = []string{".tsv", ".yml", ".yaml"}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownSource, e.Name)
}

func (e *UnknownSourceError) Is(target error) bool { return target == ErrUnknownSource }

// DefaultDirs returns ./instruments and, if the user has a config directory,
// <config>/wavescore/instruments.
func DefaultDirs() []string {
	dirs := []string{"instruments"}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "wavescore", "instruments"))
	}
	return dirs
}

// Load finds and parses the instrument called name.
func (l Library) Load(name string) (wavescore.GlyphMatrix, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return wavescore.GlyphMatrix{}, &UnknownSourceError{Name: name}
	}
	for _, dir := range l.Dirs {
		for _, file := range candidates(name) {
			p := filepath.Join(dir, file)
			data, err := os.ReadFile(p)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return wavescore.GlyphMatrix{}, fmt.Errorf("could not read instrument %v: %w", p, err)
			}
			return parse(file, data)
		}
	}
	for _, file := range candidates(name) {
		data, err := presetFS.ReadFile(path.Join("presets", file))
		if err != nil {
			continue
		}
		return parse(file, data)
	}
	return wavescore.GlyphMatrix{}, &UnknownSourceError{Name: name}
}

// Names lists the instruments available in the library, without extensions,
// sorted and without duplicates. Missing directories are skipped.
func (l Library) Names() ([]string, error) {
	set := map[string]bool{}
	entries, err := presetFS.ReadDir("presets")
	if err != nil {
		return nil, fmt.Errorf("could not list presets: %v", err)
	}
	for _, e := range entries {
		set[instrumentName(e.Name())] = true
	}
	for _, dir := range l.Dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not list instruments in %v: %w", dir, err)
		}
		for _, e := range entries {
			if !e.IsDir() && isInstrumentFile(e.Name()) {
				set[instrumentName(e.Name())] = true
			}
		}
	}
	ret := make([]string, 0, len(set))
	for name := range set {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret, nil
}

func candidates(name string) []string {
	ret := []string{name}
	for _, ext := range extensions {
		ret = append(ret, name+ext)
	}
	return ret
}

func instrumentName(file string) string {
	ext := filepath.Ext(file)
	for _, e := range extensions {
		if ext == e {
			return strings.TrimSuffix(file, ext)
		}
	}
	return file
}

// isInstrumentFile accepts the names Load tries: bare names and the known
// extensions.
func isInstrumentFile(file string) bool {
	if strings.HasPrefix(file, ".") {
		return false
	}
	ext := filepath.Ext(file)
	return ext == "" || instrumentName(file) != file
}

func parse(file string, data []byte) (wavescore.GlyphMatrix, error) {
	switch filepath.Ext(file) {
	case ".yml", ".yaml":
		var instr instrumentFile
		if err := yaml.Unmarshal(data, &instr); err != nil {
			return wavescore.GlyphMatrix{}, fmt.Errorf("could not parse instrument %v: %v", file, err)
		}
		return wavescore.NewGlyphMatrix(instr.Rows), nil
	}
	m, err := wavescore.ParseGlyphTable(data)
	if err != nil {
		return wavescore.GlyphMatrix{}, fmt.Errorf("could not parse instrument %v: %w", file, err)
	}
	return m, nil
}
