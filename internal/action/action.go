// Package action defines the commands weftctl can deliver to a running
// weft instance and validates them before delivery.
package action

import (
	"fmt"
	"strings"
)

// Verb names as they appear on the wire.
const (
	VerbNewSplit    = "new-split"
	VerbSendToSplit = "send-to-split"
)

// Direction tells weft where to open a new split relative to the
// focused pane. "auto" lets weft pick based on the pane's shape.
type Direction string

const (
	DirectionRight Direction = "right"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionUp    Direction = "up"
	DirectionAuto  Direction = "auto"
)

const validDirections = "right, down, left, up, auto"

// Payload is one deliverable command. The concrete types are NewSplit
// and SendToSplit; their constructors are the only way to obtain a
// validated payload.
type Payload interface {
	Verb() string
}

// NewSplit opens a new split pane, optionally running a command in it.
type NewSplit struct {
	// Direction is where the new split opens.
	Direction Direction `cbor:"direction"`
	// Command is the argv to run in the new split. Empty means the
	// instance starts its default shell.
	Command []string `cbor:"command,omitempty"`
}

// Verb implements Payload.
func (*NewSplit) Verb() string { return VerbNewSplit }

// SendToSplit types text into an existing split.
type SendToSplit struct {
	// Target names the receiving split: an index, a pane id, or the
	// literal "focused". The instance interprets it; weftctl does not.
	Target string `cbor:"target"`
	// Text is sent verbatim.
	Text string `cbor:"text"`
}

// Verb implements Payload.
func (*SendToSplit) Verb() string { return VerbSendToSplit }

// ValidationError reports a semantically invalid option value. Field
// names the offending option.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewSplitCommand validates new-split options and builds the payload.
// hasCommand distinguishes "-e with nothing after it" (rejected) from
// no -e at all (the instance runs its default shell).
func NewSplitCommand(direction string, command []string, hasCommand bool) (*NewSplit, error) {
	switch Direction(direction) {
	case DirectionRight, DirectionDown, DirectionLeft, DirectionUp, DirectionAuto:
	default:
		return nil, &ValidationError{
			Field: "direction",
			Msg:   fmt.Sprintf("invalid direction %q (valid: %s)", direction, validDirections),
		}
	}
	if hasCommand && len(command) == 0 {
		return nil, &ValidationError{Field: "command", Msg: "no command given after -e"}
	}
	p := &NewSplit{Direction: Direction(direction)}
	if hasCommand {
		p.Command = command
	}
	return p, nil
}

// SendToSplitCommand validates send-to-split options and builds the
// payload. The captured words are joined with single spaces; nothing is
// trimmed, so a lone empty token still counts as no text.
func SendToSplitCommand(target string, words []string) (*SendToSplit, error) {
	if target == "" {
		return nil, &ValidationError{Field: "target", Msg: "target must not be empty"}
	}
	text := strings.Join(words, " ")
	if text == "" {
		return nil, &ValidationError{Field: "text", Msg: "no text provided"}
	}
	return &SendToSplit{Target: target, Text: text}, nil
}
