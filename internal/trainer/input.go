package trainer

// InputKind classifies a discrete input event.
type InputKind int

const (
	// InputNone is an empty tick.
	InputNone InputKind = iota
	// InputChar carries a printable character.
	InputChar
	// InputUp moves the selection up.
	InputUp
	// InputDown moves the selection down.
	InputDown
	// InputEnter confirms the selection.
	InputEnter
	// InputEscape leaves the current screen.
	InputEscape
	// InputBackspace is delivered but ignored; typed characters cannot be undone.
	InputBackspace
)

// Input is one event delivered to App.Tick.
type Input struct {
	Kind InputKind
	Char rune
}

// NoInput returns the empty tick.
func NoInput() Input {
	return Input{Kind: InputNone}
}

// Char returns a character input.
func Char(r rune) Input {
	return Input{Kind: InputChar, Char: r}
}

// Key returns a non-character input of the given kind.
func Key(kind InputKind) Input {
	return Input{Kind: kind}
}
