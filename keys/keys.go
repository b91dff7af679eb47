// Package keys holds the special-key codepoints the wire protocol assigns
// to non-printable keyboard input.
package keys

import "strings"

// Key is a special-key codepoint from the protocol's private use area.
type Key string

// Special keys understood by wire-protocol drivers.
const (
	Null      Key = ""
	Cancel    Key = ""
	Help      Key = ""
	Backspace Key = ""
	Tab       Key = ""
	Clear     Key = ""
	Return    Key = ""
	Enter     Key = ""
	Shift     Key = ""
	Control   Key = ""
	Alt       Key = ""
	Pause     Key = ""
	Escape    Key = ""
	Space     Key = ""
	PageUp    Key = ""
	PageDown  Key = ""
	End       Key = ""
	Home      Key = ""
	Left      Key = ""
	Up        Key = ""
	Right     Key = ""
	Down      Key = ""
	Insert    Key = ""
	Delete    Key = ""
	Meta      Key = ""
)

var byName = map[string]Key{
	"Null":      Null,
	"Cancel":    Cancel,
	"Help":      Help,
	"Backspace": Backspace,
	"Tab":       Tab,
	"Clear":     Clear,
	"Return":    Return,
	"Enter":     Enter,
	"Shift":     Shift,
	"Control":   Control,
	"Alt":       Alt,
	"Pause":     Pause,
	"Escape":    Escape,
	"Space":     Space,
	"PageUp":    PageUp,
	"PageDown":  PageDown,
	"End":       End,
	"Home":      Home,
	"Left":      Left,
	"Up":        Up,
	"Right":     Right,
	"Down":      Down,
	"Insert":    Insert,
	"Delete":    Delete,
	"Meta":      Meta,
}

// Lookup returns the codepoint for a named special key.
func Lookup(name string) (Key, bool) {
	k, ok := byName[name]
	return k, ok
}

// Chord joins key input into a single sequence terminated by Null, which
// releases any modifier keys held by earlier elements of the chord.
func Chord(input ...string) string {
	var b strings.Builder
	for _, s := range input {
		b.WriteString(s)
	}
	b.WriteString(string(Null))
	return b.String()
}
