// Package ipc delivers command envelopes to a running weft instance
// over its unix command socket.
//
// Each command is one CBOR-encoded datagram. Delivery is a single
// best-effort attempt: the instance is a live external process, and a
// resent datagram could open a second split or type the same text
// twice, so nothing here retries.
package ipc

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/weft-term/weftctl/internal/action"
)

// maxPayloadBytes caps one encoded envelope. A command that does not
// fit in a single datagram is rejected rather than truncated.
const maxPayloadBytes = 8 * 1024

// Envelope is the on-wire frame for one command. Exactly one payload
// field is populated, matching Verb.
type Envelope struct {
	// RequestID correlates this command with the instance's logs.
	RequestID string `cbor:"request_id"`
	// Verb names the command.
	Verb string `cbor:"verb"`

	NewSplit    *action.NewSplit    `cbor:"new_split,omitempty"`
	SendToSplit *action.SendToSplit `cbor:"send_to_split,omitempty"`
}

// NewEnvelope frames a payload for delivery.
func NewEnvelope(requestID string, payload action.Payload) (Envelope, error) {
	env := Envelope{RequestID: requestID, Verb: payload.Verb()}
	switch p := payload.(type) {
	case *action.NewSplit:
		env.NewSplit = p
	case *action.SendToSplit:
		env.SendToSplit = p
	default:
		return Envelope{}, fmt.Errorf("unsupported payload type %T", payload)
	}
	return env, nil
}

// Encode marshals the envelope, enforcing the datagram size cap.
func (e Envelope) Encode() ([]byte, error) {
	data, err := cbor.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode command: %w", err)
	}
	if len(data) > maxPayloadBytes {
		return nil, fmt.Errorf("command is %d bytes encoded, the limit is %d", len(data), maxPayloadBytes)
	}
	return data, nil
}

// Decode unmarshals one envelope datagram.
func Decode(data []byte) (Envelope, error) {
	var e Envelope
	if err := cbor.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode command: %w", err)
	}
	return e, nil
}
