// ABOUTME: Hubline protocol message type definitions
// ABOUTME: Defines commands, inbound envelopes, and typed result shapes
package protocol

import "encoding/json"

// CommandKind identifies a correlated command and selects how its
// reply payload is decoded.
type CommandKind int

const (
	KindUnknown CommandKind = iota
	KindPing
	KindListAreas
	KindListDevices
	KindListEntities
	KindRetrieveStates
)

// String returns the wire type tag for the command kind.
func (k CommandKind) String() string {
	switch k {
	case KindPing:
		return "ping"
	case KindListAreas:
		return "config/area_registry/list"
	case KindListDevices:
		return "config/device_registry/list"
	case KindListEntities:
		return "config/entity_registry/list"
	case KindRetrieveStates:
		return "get_states"
	default:
		return "unknown"
	}
}

// AuthCommand carries the access token for the authentication handshake.
// It is the only outgoing message sent without a correlation id.
type AuthCommand struct {
	Type        string `json:"type"`
	AccessToken string `json:"access_token"`
}

// Command is a correlated request: a unique id plus the wire type tag.
type Command struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// EnvelopeKind tags a decoded inbound message.
type EnvelopeKind int

const (
	EnvelopeUnknown EnvelopeKind = iota
	EnvelopeAuthRequired
	EnvelopeAuthOK
	EnvelopeAuthInvalid
	EnvelopePong
	EnvelopeResult
)

// Envelope is the decoded outer shape of an inbound message. Which
// fields are meaningful depends on Kind: AuthInvalid carries Message,
// Pong carries ID, Result carries ID, Success, Result and Error.
type Envelope struct {
	Kind    EnvelopeKind
	ID      int64
	Success bool
	Message string          // auth_invalid reason
	Error   *ResultError    // populated for failed results
	Result  json.RawMessage // raw payload for typed re-decoding
}

// ResultError is the server's description of a failed command.
type ResultError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Area is one entry of the hub's area registry.
type Area struct {
	AreaID string `json:"area_id"`
	Name   string `json:"name"`
}

// Device is one entry of the hub's device registry.
type Device struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	NameByUser   string `json:"name_by_user,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	AreaID       string `json:"area_id,omitempty"`
}

// Entity is one entry of the hub's entity registry.
type Entity struct {
	EntityID   string `json:"entity_id"`
	DeviceID   string `json:"device_id,omitempty"`
	AreaID     string `json:"area_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Platform   string `json:"platform,omitempty"`
	DisabledBy string `json:"disabled_by,omitempty"`
}

// EntityState is the current state of one entity.
type EntityState struct {
	EntityID    string                 `json:"entity_id"`
	State       string                 `json:"state"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	LastChanged string                 `json:"last_changed,omitempty"`
	LastUpdated string                 `json:"last_updated,omitempty"`
}
