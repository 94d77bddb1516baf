package arena

import (
	"quizduel/internal/pkg/randx"
)

// Error strings reported to the requesting connection on a failed join.
const (
	msgRoomNotFound = "Room does not exist."
	msgRoomFull     = "Room is full."
)

// Room is the transient pairing context for one duel. OwnerID is always set;
// GuestID is empty until a second participant joins (and is cleared again if
// that participant disconnects).
type Room struct {
	Code    string
	OwnerID string
	GuestID string
	ScoreA  int
	ScoreB  int

	// Current is the question active in this room, nil before the first
	// dispatch.
	Current *Question
}

// roomTable holds all live duel rooms, keyed by room code. Owned by the hub
// loop; no locking needed.
type roomTable struct {
	rooms map[string]*Room
}

func newRoomTable() *roomTable {
	return &roomTable{rooms: make(map[string]*Room)}
}

func (t *roomTable) get(code string) *Room {
	return t.rooms[code]
}

// put stores the room. Codes are random with no uniqueness check; a colliding
// code silently replaces the previous room.
func (t *roomTable) put(room *Room) {
	t.rooms[room.Code] = room
}

func (t *roomTable) delete(code string) {
	delete(t.rooms, code)
}

// handleCreateRoom creates a duel room owned by c and tells the creator its code.
func (h *Hub) handleCreateRoom(c *Client) {
	code, err := randx.RoomCode()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to generate room code.")
		return
	}

	room := &Room{Code: code, OwnerID: c.id}
	h.rooms.put(room)

	h.logger.Info().Str("room_code", code).Str("client_id", c.id).Msg("Duel room created.")
	h.sendTo(c, EventRoomCreated, RoomPayload{RoomID: code})
}

// handleJoinRoom seats c as the second participant and kicks off the duel.
// Joining a half-vacated room re-fires startGame and a fresh question; that
// re-entry path is the sole recovery mechanism after a guest disconnect.
func (h *Hub) handleJoinRoom(c *Client, code string) {
	room := h.rooms.get(code)

	if room == nil {
		h.sendTo(c, EventError, msgRoomNotFound)
		return
	}

	if room.GuestID != "" {
		h.sendTo(c, EventError, msgRoomFull)
		return
	}

	room.GuestID = c.id

	h.logger.Info().Str("room_code", code).Str("client_id", c.id).Msg("Client joined duel room.")

	h.sendTo(c, EventRoomJoined, RoomPayload{RoomID: code})
	h.sendToRoom(room, EventStartGame, nil)

	h.dispatchQuestion(room.Code)
}

// handleRoomDisconnect tears down c's duel participation. An owner leaving
// deletes the room; a guest leaving clears the guest slot and the room waits
// for a replacement. A connection with no duel participation is a no-op.
func (h *Hub) handleRoomDisconnect(c *Client) {
	for code, room := range h.rooms.rooms {
		if room.OwnerID == c.id {
			if guest, ok := h.clients[room.GuestID]; ok {
				h.sendTo(guest, EventOpponentStatus, false)
			}

			h.rooms.delete(code)
			h.logger.Info().Str("room_code", code).Str("client_id", c.id).Msg("Owner disconnected. Room removed.")
			continue
		}

		if room.GuestID == c.id {
			room.GuestID = ""

			if owner, ok := h.clients[room.OwnerID]; ok {
				h.sendTo(owner, EventOpponentStatus, false)
			}

			h.logger.Info().Str("room_code", code).Str("client_id", c.id).Msg("Guest disconnected. Room awaiting a new participant.")
		}
	}
}
