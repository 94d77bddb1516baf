/*
Package arena contains the real-time core of the quiz service: the hub that
owns all live connections, duel rooms, chat relay and presence tracking.

This file defines the wire protocol. Every frame in both directions is a JSON
envelope of the form {"event": <name>, "data": <payload>}.
*/
package arena

import (
	"encoding/json"
	"fmt"
)

// Inbound event names (client to server).
const (
	EventCreateRoom  = "createRoom"
	EventJoinRoom    = "joinRoom"
	EventAnswer      = "answer"
	EventJoinChat    = "join-chat"
	EventSendMessage = "send-message"
)

// Outbound event names (server to client).
const (
	EventRoomCreated    = "roomCreated"
	EventRoomJoined     = "roomJoined"
	EventError          = "error"
	EventStartGame      = "startGame"
	EventScoreUpdate    = "scoreUpdate"
	EventNewQuestion    = "newQuestion"
	EventOpponentStatus = "opponentStatus"

	EventMessageHistory = "message-history"
	EventUserJoined     = "user-joined"
	EventUserLeft       = "user-left"
	EventActiveUsers    = "active-users"
	EventNewMessage     = "new-message"
)

// Envelope is the frame exchanged over the websocket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// RoomPayload carries a room code.
type RoomPayload struct {
	RoomID string `json:"roomId"`
}

// AnswerPayload is the client's answer submission for a duel round.
type AnswerPayload struct {
	RoomID string `json:"roomId"`
	Choice string `json:"choice"`
}

// QuestionPayload is the question broadcast to both duel participants.
// The correct option is never included.
type QuestionPayload struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// PresencePayload announces a chat join or leave together with the new
// online-user count.
type PresencePayload struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// SendMessagePayload is an inbound chat message.
type SendMessagePayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ChatMessage is one entry in the chat log.
type ChatMessage struct {
	Author    string `json:"author"`
	Body      string `json:"body"`
	Kind      string `json:"kind"`
	Timestamp int64  `json:"timestamp"`
}

// encodeEvent marshals an outbound envelope.
func encodeEvent(event string, data any) ([]byte, error) {
	var raw json.RawMessage

	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
		}
		raw = encoded
	}

	return json.Marshal(Envelope{Event: event, Data: raw})
}
