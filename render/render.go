package render

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/wavescore"
	"github.com/vsariola/wavescore/waveform"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type (
	Options struct {
		Title bool // title-case the instrument name in the header
		Wrap  int  // maximum number of cells per system, 0 = no wrapping
	}

	// Renderer formats rendered waves with text templates. The templates
	// "text.tmpl" and "stats.tmpl" must be defined.
	Renderer struct {
		Template *template.Template
		Options
	}

	// Document is the printable form of a rendered wave: the all-blank rows
	// dropped, the remaining ones from the top down. With wrapping, the
	// columns are split into several systems. Stats is only filled in when
	// the statistics are marshalled along with the wave.
	Document struct {
		Instrument string          `yaml:"instrument" json:"instrument"`
		Systems    []System        `yaml:"systems" json:"systems"`
		Stats      *waveform.Stats `yaml:"stats,omitempty" json:"stats,omitempty"`
	}

	System struct {
		Start int   `yaml:"start" json:"start"` // index of the first column
		Rows  []Row `yaml:"rows" json:"rows"`
	}

	Row struct {
		Height int    `yaml:"height" json:"height"`
		Cells  string `yaml:"cells" json:"cells"`
	}

	statsView struct {
		waveform.Stats
		DutyPercent float32
	}
)

// New returns a renderer using the built-in templates.
func New(options Options) (*Renderer, error) {
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf(`could not create templates: %v`, err)
	}
	return &Renderer{Template: tmpl, Options: options}, nil
}

// NewFromTemplates returns a renderer using the templates in a directory
// instead of the built-in ones.
func NewFromTemplates(templateDirectory string, options Options) (*Renderer, error) {
	globPtrn := filepath.Join(templateDirectory, "*.tmpl")
	tmpl, err := template.New("base").Funcs(sprig.TxtFuncMap()).ParseGlob(globPtrn)
	if err != nil {
		return nil, fmt.Errorf(`could not create templates based on directory "%v": %v`, templateDirectory, err)
	}
	return &Renderer{Template: tmpl, Options: options}, nil
}

// Document builds the printable form of a rendered wave.
func (r *Renderer) Document(instrument string, m wavescore.GlyphMatrix) Document {
	if r.Title {
		instrument = cases.Title(language.English).String(instrument)
	}
	return NewDocument(instrument, m, r.Wrap)
}

// Text renders the header line and the non-blank rows of m.
func (r *Renderer) Text(instrument string, m wavescore.GlyphMatrix) (string, error) {
	doc := r.Document(instrument, m)
	return r.execute("text.tmpl", &doc)
}

// Stats renders a summary of a rendered timeline.
func (r *Renderer) Stats(s waveform.Stats) (string, error) {
	return r.execute("stats.tmpl", &statsView{Stats: s, DutyPercent: s.Duty * 100})
}

func (r *Renderer) execute(templateName string, data interface{}) (string, error) {
	result := bytes.NewBufferString("")
	if err := r.Template.ExecuteTemplate(result, templateName, data); err != nil {
		return "", fmt.Errorf(`could not execute template "%v": %v`, templateName, err)
	}
	return result.String(), nil
}

// NewDocument splits m into systems of at most wrap columns (all columns in
// one system if wrap <= 0) and keeps the non-blank rows of each system in
// descending height order.
func NewDocument(instrument string, m wavescore.GlyphMatrix, wrap int) Document {
	if wrap <= 0 || wrap > m.Width {
		wrap = m.Width
	}
	doc := Document{Instrument: instrument}
	heights := m.Heights()
	for start := 0; start == 0 || start < m.Width; start += wrap {
		part := m.Slice(start, start+wrap)
		system := System{Start: start}
		for _, y := range heights {
			row := part.Rows[y]
			if wavescore.IsBlankRow(row) {
				continue
			}
			system.Rows = append(system.Rows, Row{Height: y, Cells: string(row)})
		}
		doc.Systems = append(doc.Systems, system)
		if wrap == 0 {
			break
		}
	}
	return doc
}
