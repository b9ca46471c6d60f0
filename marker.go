package wavescore

import (
	"errors"
	"unicode/utf8"
)

// DefaultMarker is drawn when no marker character is configured.
const DefaultMarker = '*'

// MarkerOption is the key of the marker character in an option map.
const MarkerOption = "character"

var ErrBlankMarker = errors.New("marker character cannot be blank")

// MarkerFromOptions returns the marker character configured in options: the
// first character of options["character"], or DefaultMarker when the key is
// absent or empty.
func MarkerFromOptions(options map[string]string) (rune, error) {
	v, ok := options[MarkerOption]
	if !ok || v == "" {
		return DefaultMarker, nil
	}
	r, _ := utf8.DecodeRuneInString(v)
	if r == Blank {
		return 0, ErrBlankMarker
	}
	return r, nil
}
