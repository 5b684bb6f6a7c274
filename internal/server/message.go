package server

import (
	"encoding/json"
	"time"

	"github.com/lox/pokerhands/internal/evaluator"
	"github.com/lox/pokerhands/internal/game"
)

// MessageType names a websocket message.
type MessageType string

// Client → Server
const (
	MessageTypeAddPlayer    MessageType = "add_player"
	MessageTypeRemovePlayer MessageType = "remove_player"
	MessageTypeRedeal       MessageType = "redeal"
	MessageTypeEvaluate     MessageType = "evaluate"
	MessageTypeState        MessageType = "state"
)

// Server → Client. MessageTypeState doubles as the table broadcast.
const (
	MessageTypeEvaluation MessageType = "evaluation"
	MessageTypeError      MessageType = "error"
)

// Message is the envelope for every websocket frame.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage wraps data in an envelope stamped with at.
func NewMessage(messageType MessageType, data any, at time.Time) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Type: messageType, Data: raw, Timestamp: at}, nil
}

type PlayerData struct {
	Name string `json:"name"`
}

type EvaluateData struct {
	Hands []string `json:"hands"`
}

// StateData is the table as broadcast after every change.
type StateData = game.State

// EvaluationData answers an evaluate request.
type EvaluationData = evaluator.Batch

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
