package ws

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the wire encoding of a client connection.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat returns the named format, or def when s is empty or unknown.
func ParseFormat(s string, def Format) Format {
	switch Format(s) {
	case FormatJSON, FormatMsgpack:
		return Format(s)
	}
	return def
}

// Frame is one encoded websocket message.
type Frame struct {
	Kind int // websocket.TextMessage or websocket.BinaryMessage
	Data []byte
}

// Message is the envelope of every outbound message.
type Message struct {
	Type    string      `json:"type" msgpack:"type"`
	Data    interface{} `json:"data,omitempty" msgpack:"data,omitempty"`
	Message string      `json:"message,omitempty" msgpack:"message,omitempty"`
}

// Inbound is a command sent by a renderer.
type Inbound struct {
	Type   string  `json:"type" msgpack:"type"`
	Power  float64 `json:"power,omitempty" msgpack:"power,omitempty"`
	Angle  int     `json:"angle,omitempty" msgpack:"angle,omitempty"`
	Action string  `json:"action,omitempty" msgpack:"action,omitempty"`
}

func (f Format) Encode(msg Message) (Frame, error) {
	if f == FormatMsgpack {
		data, err := msgpack.Marshal(&msg)
		if err != nil {
			return Frame{}, err
		}
		return Frame{Kind: websocket.BinaryMessage, Data: data}, nil
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Kind: websocket.TextMessage, Data: data}, nil
}

// DecodeInbound parses a command. Text frames are JSON, binary frames msgpack,
// regardless of the connection's outbound format.
func DecodeInbound(kind int, data []byte) (Inbound, error) {
	var in Inbound
	switch kind {
	case websocket.TextMessage:
		if err := json.Unmarshal(data, &in); err != nil {
			return in, err
		}
	case websocket.BinaryMessage:
		if err := msgpack.Unmarshal(data, &in); err != nil {
			return in, err
		}
	default:
		return in, fmt.Errorf("unsupported frame kind %d", kind)
	}
	return in, nil
}
