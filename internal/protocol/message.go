// Package protocol defines the JSON message envelope used between the
// guidance unit, the actuator bridge, and the dashboard. The raw actuator
// channels themselves carry bare decimal strings (see pkg/guidance); this
// envelope is for everything else.
package protocol

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType identifies the type of message.
type MessageType string

const (
	// Guidance unit → dashboard/bridge
	TypeStatus   MessageType = "status"   // engine snapshot
	TypeGuidance MessageType = "guidance" // published steering instruction
	TypeBearing  MessageType = "bearing"  // target-bearing update
	TypeRoute    MessageType = "route"    // active route summary

	// Bidirectional
	TypePing MessageType = "ping"
	TypePong MessageType = "pong"
)

// Message is the base wrapper for all envelope messages.
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"ts,omitempty"` // Unix milliseconds
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(msgType MessageType, data interface{}) (*Message, error) {
	var rawData json.RawMessage
	if data != nil {
		var err error
		rawData, err = json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal message data: %w", err)
		}
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
		Data:      rawData,
	}, nil
}

// ParseData unmarshals the message data into the provided struct.
func (m *Message) ParseData(v interface{}) error {
	if m.Data == nil {
		return nil
	}
	return json.Unmarshal(m.Data, v)
}

// Bytes returns the JSON-encoded message.
func (m *Message) Bytes() ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage parses a JSON message from bytes.
func ParseMessage(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return &msg, nil
}

// GuidanceData mirrors a published steering update for the dashboard.
type GuidanceData struct {
	Instruction  int     `json:"instruction"` // -3..3
	Label        string  `json:"label"`
	AngleDegrees float64 `json:"angle_degrees"`
	PathClear    bool    `json:"path_clear"`
}

// BearingData is a target-bearing update toward the active waypoint.
type BearingData struct {
	BearingDegrees float64 `json:"bearing_degrees"` // (-180, 180]
	WaypointsLeft  int     `json:"waypoints_left"`
}

// RouteData summarizes the loaded route.
type RouteData struct {
	SessionID string  `json:"session_id"`
	Points    int     `json:"points"`
	SpacingM  float64 `json:"spacing_m"`
}
