/*
This file defines the Hub, the single coordination point for every live
connection. All inbound events funnel through one run loop, so the room table,
presence map and chat log are mutated strictly one event at a time and need no
locking. Outbound notifications are addressed to an explicit recipient set:
one client, a room's two participants, or everyone.
*/
package arena

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"quizduel/internal/pkg/logx"
)

const (
	inboundChannelBuffer  = 1024
	registerChannelBuffer = 64
)

// Hub owns the connection registry and routes every inbound event to its
// handler. Handlers never block on I/O; fan-out is fire-and-forget.
type Hub struct {
	// clients is the connection registry, keyed by session ID.
	clients map[string]*Client

	rooms    *roomTable
	presence *presenceTable
	relay    *messageLog

	// questions is the fixed duel question set, loaded at construction.
	questions []Question

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundEvent

	stopChan chan struct{}
	wg       sync.WaitGroup

	logger zerolog.Logger
}

// inboundEvent pairs a decoded frame with the connection it arrived on.
type inboundEvent struct {
	client *Client
	env    Envelope
}

// NewHub constructs a Hub over the given duel question set and starts its run
// loop. An empty set falls back to DefaultQuestions.
func NewHub(questions []Question) *Hub {
	if len(questions) == 0 {
		questions = DefaultQuestions
	}

	h := &Hub{
		clients:    make(map[string]*Client),
		rooms:      newRoomTable(),
		presence:   newPresenceTable(),
		relay:      newMessageLog(),
		questions:  questions,
		register:   make(chan *Client, registerChannelBuffer),
		unregister: make(chan *Client, registerChannelBuffer),
		inbound:    make(chan inboundEvent, inboundChannelBuffer),
		stopChan:   make(chan struct{}),
		logger:     logx.Logger().With().Str("component", "Hub").Logger(),
	}

	h.wg.Add(1)
	go h.run()

	return h
}

// Register queues a new connection for the run loop.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopChan:
	}
}

// Unregister queues a connection teardown for the run loop.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopChan:
	}
}

// Shutdown stops the run loop and closes every client send queue.
func (h *Hub) Shutdown() {
	h.logger.Info().Msg("Shutting down hub...")

	close(h.stopChan)
	h.wg.Wait()

	h.logger.Info().Msg("Hub shutdown complete.")
}

// run is the single event-processing loop. Connects, disconnects and client
// events are handled one at a time in arrival order.
func (h *Hub) run() {
	defer h.wg.Done()

	h.logger.Info().Msg("Hub run loop started.")

	for {
		select {
		case c := <-h.register:
			h.handleRegister(c)

		case c := <-h.unregister:
			h.handleUnregister(c)

		case ev := <-h.inbound:
			h.dispatch(ev.client, ev.env)

		case <-h.stopChan:
			for _, c := range h.clients {
				c.closeSend()
			}
			h.clients = make(map[string]*Client)

			h.logger.Info().Msg("Hub run loop stopped.")
			return
		}
	}
}

func (h *Hub) handleRegister(c *Client) {
	h.clients[c.id] = c
	h.logger.Info().Str("client_id", c.id).Int("total_clients", len(h.clients)).Msg("Client connected.")
}

// handleUnregister removes the connection and runs both the duel and the chat
// teardown unconditionally; each is a no-op when the connection never took
// part in that subsystem.
func (h *Hub) handleUnregister(c *Client) {
	if current, ok := h.clients[c.id]; !ok || current != c {
		return
	}

	delete(h.clients, c.id)
	c.closeSend()

	h.handleRoomDisconnect(c)
	h.handleChatLeave(c)

	h.logger.Info().Str("client_id", c.id).Int("total_clients", len(h.clients)).Msg("Client disconnected.")
}

// dispatch routes one inbound frame to exactly one handler.
func (h *Hub) dispatch(c *Client, env Envelope) {
	switch env.Event {
	case EventCreateRoom:
		h.handleCreateRoom(c)

	case EventJoinRoom:
		var code string
		if err := json.Unmarshal(env.Data, &code); err != nil {
			h.logger.Warn().Err(err).Str("client_id", c.id).Msg("Invalid joinRoom payload.")
			return
		}
		h.handleJoinRoom(c, code)

	case EventAnswer:
		var payload AnswerPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.logger.Warn().Err(err).Str("client_id", c.id).Msg("Invalid answer payload.")
			return
		}
		h.handleAnswer(c, payload)

	case EventJoinChat:
		var name string
		if err := json.Unmarshal(env.Data, &name); err != nil {
			h.logger.Warn().Err(err).Str("client_id", c.id).Msg("Invalid join-chat payload.")
			return
		}
		h.handleJoinChat(c, name)

	case EventSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			h.logger.Warn().Err(err).Str("client_id", c.id).Msg("Invalid send-message payload.")
			return
		}
		h.handleSendMessage(c, payload)

	default:
		h.logger.Warn().Str("event", env.Event).Str("client_id", c.id).Msg("Client sent unsupported event.")
	}
}

// sendTo queues one event for a single connection. A full send queue drops the
// frame; delivery is never acknowledged or retried.
func (h *Hub) sendTo(c *Client, event string, data any) {
	frame, err := encodeEvent(event, data)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to encode outbound event.")
		return
	}

	c.queue(frame)
}

// sendToRoom queues one event for both of a room's participants (or just the
// owner while the guest slot is empty).
func (h *Hub) sendToRoom(room *Room, event string, data any) {
	frame, err := encodeEvent(event, data)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to encode outbound event.")
		return
	}

	if owner, ok := h.clients[room.OwnerID]; ok {
		owner.queue(frame)
	}
	if guest, ok := h.clients[room.GuestID]; ok {
		guest.queue(frame)
	}
}

// broadcast queues one event for every connected client.
func (h *Hub) broadcast(event string, data any) {
	frame, err := encodeEvent(event, data)
	if err != nil {
		h.logger.Error().Err(err).Str("event", event).Msg("Failed to encode outbound event.")
		return
	}

	for _, c := range h.clients {
		c.queue(frame)
	}
}
