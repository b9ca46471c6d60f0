package render

import "golang.org/x/term"

// labelWidth is the room taken by a "% d:\t" height label on a terminal with
// 8-column tab stops.
const labelWidth = 8

// TerminalWidth returns the width in columns of the terminal behind fd; ok is
// false if fd is not a terminal.
func TerminalWidth(fd int) (width int, ok bool) {
	if !term.IsTerminal(fd) {
		return 0, false
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}

// CellsPerSystem returns how many cells fit on a line of the given width next
// to the height label.
func CellsPerSystem(width int) int {
	return max(1, width-labelWidth)
}
