// ABOUTME: Hubline wire protocol package
// ABOUTME: Defines message types and the JSON codec for hub communication
// Package protocol implements the Hubline wire protocol.
//
// Provides the command and result message types and the JSON codec
// used to talk to a Hubline hub over its WebSocket API.
//
// Example:
//
//	var codec protocol.Codec
//	data, err := codec.SerializeCommand(1, protocol.KindListAreas)
//	env, err := codec.DecodeEnvelope(reply)
package protocol
