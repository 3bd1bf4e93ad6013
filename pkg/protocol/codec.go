// ABOUTME: JSON codec for the Hubline wire protocol
// ABOUTME: Serializes commands and decodes inbound envelopes and typed results
package protocol

import (
	"encoding/json"
	"fmt"
)

// Codec converts between typed messages and wire text. The zero value
// is ready to use.
type Codec struct{}

// wireEnvelope is the superset of fields any inbound message may carry.
type wireEnvelope struct {
	Type    string          `json:"type"`
	ID      int64           `json:"id"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   *ResultError    `json:"error"`
	Result  json.RawMessage `json:"result"`
}

// SerializeAuth encodes the authentication command.
func (Codec) SerializeAuth(token string) ([]byte, error) {
	return json.Marshal(AuthCommand{Type: "auth", AccessToken: token})
}

// SerializeCommand encodes a correlated command for the given kind.
func (Codec) SerializeCommand(id int64, kind CommandKind) ([]byte, error) {
	if kind == KindUnknown {
		return nil, fmt.Errorf("cannot serialize unknown command kind")
	}
	return json.Marshal(Command{ID: id, Type: kind.String()})
}

// DecodeEnvelope parses raw inbound text into a tagged Envelope. Messages
// with an unrecognized type tag decode to EnvelopeUnknown rather than an
// error so the dispatcher can drop them with a diagnostic.
func (Codec) DecodeEnvelope(data []byte) (Envelope, error) {
	var w wireEnvelope
	if err := json.Unmarshal(data, &w); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}

	env := Envelope{
		ID:      w.ID,
		Success: w.Success,
		Message: w.Message,
		Error:   w.Error,
		Result:  w.Result,
	}

	switch w.Type {
	case "auth_required":
		env.Kind = EnvelopeAuthRequired
	case "auth_ok":
		env.Kind = EnvelopeAuthOK
	case "auth_invalid":
		env.Kind = EnvelopeAuthInvalid
	case "pong":
		env.Kind = EnvelopePong
	case "result":
		env.Kind = EnvelopeResult
	default:
		env.Kind = EnvelopeUnknown
	}

	return env, nil
}

// DecodeResult re-decodes a generic result payload into the typed shape
// for the command kind that originated the request. Ping has no payload
// and decodes to nil.
func (Codec) DecodeResult(kind CommandKind, raw json.RawMessage) (interface{}, error) {
	switch kind {
	case KindPing:
		return nil, nil
	case KindListAreas:
		var areas []Area
		if err := json.Unmarshal(raw, &areas); err != nil {
			return nil, fmt.Errorf("decode area list: %w", err)
		}
		return areas, nil
	case KindListDevices:
		var devices []Device
		if err := json.Unmarshal(raw, &devices); err != nil {
			return nil, fmt.Errorf("decode device list: %w", err)
		}
		return devices, nil
	case KindListEntities:
		var entities []Entity
		if err := json.Unmarshal(raw, &entities); err != nil {
			return nil, fmt.Errorf("decode entity list: %w", err)
		}
		return entities, nil
	case KindRetrieveStates:
		var states []EntityState
		if err := json.Unmarshal(raw, &states); err != nil {
			return nil, fmt.Errorf("decode states: %w", err)
		}
		return states, nil
	default:
		return nil, fmt.Errorf("no result decoder for command kind %d", kind)
	}
}
