package message

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wagiedev/inspector-go/internal/errors"
)

// Parse decodes one inbound frame into an Envelope.
//
// The returned envelope keeps a copy of the frame in Raw. A frame that is not a
// JSON object is reported as a *errors.FrameDecodeError.
func Parse(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &errors.FrameDecodeError{
			RawData: string(data),
			Err:     err,
		}
	}

	env.Raw = bytes.Clone(data)

	return &env, nil
}

// NewRequest builds an outbound request envelope.
//
// A nil params is omitted from the wire entirely. Any other value is marshaled
// as-is, so callers can pass structs, maps or json.RawMessage.
func NewRequest(id int64, method string, params any) (*Envelope, error) {
	env := &Envelope{
		ID:     id,
		Method: method,
	}

	if params == nil {
		return env, nil
	}

	if raw, ok := params.(json.RawMessage); ok {
		env.Params = raw

		return env, nil
	}

	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params for %s: %w", method, err)
	}

	env.Params = data

	return env, nil
}

// Marshal serializes an envelope for transmission.
func Marshal(env *Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}

	return data, nil
}

// DecodeResult unmarshals a response's result into T.
//
// A response carrying an error object returns that *errors.ResponseError.
// An absent result decodes to the zero value of T.
func DecodeResult[T any](env *Envelope) (*T, error) {
	if env.Error != nil {
		return nil, env.Error
	}

	var out T
	if len(env.Result) == 0 {
		return &out, nil
	}

	if err := json.Unmarshal(env.Result, &out); err != nil {
		return nil, fmt.Errorf("decode result of request %d: %w", env.ID, err)
	}

	return &out, nil
}

// DecodeParams unmarshals event params into T.
func DecodeParams[T any](params json.RawMessage) (*T, error) {
	var out T
	if len(params) == 0 {
		return &out, nil
	}

	if err := json.Unmarshal(params, &out); err != nil {
		return nil, fmt.Errorf("decode event params: %w", err)
	}

	return &out, nil
}
