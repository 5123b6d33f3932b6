// Package target selects which running weft instance a command is
// addressed to.
package target

// Selector identifies the receiving instance: either an explicit
// identity (the instance's window class) or auto-detection of the
// active instance. The zero value means auto-detect.
type Selector struct {
	identity string
}

// Detect returns a selector that locates the active instance
// automatically.
func Detect() Selector {
	return Selector{}
}

// Explicit returns a selector for the instance with the given identity.
// The identity is used verbatim; whether such an instance exists is only
// discovered at delivery time.
func Explicit(identity string) Selector {
	return Selector{identity: identity}
}

// Resolve maps an optional identity to a selector. Empty means detect.
func Resolve(identity string) Selector {
	if identity == "" {
		return Detect()
	}
	return Explicit(identity)
}

// Identity returns the explicit identity and whether one was given.
func (s Selector) Identity() (string, bool) {
	return s.identity, s.identity != ""
}

// String describes the selector in diagnostics.
func (s Selector) String() string {
	if s.identity == "" {
		return "auto-detect"
	}
	return s.identity
}
