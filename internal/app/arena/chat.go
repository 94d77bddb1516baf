package arena

// handleJoinChat registers c under the given display name, backfills the
// recent chat history to the joiner only, then announces the join and the new
// online count to everyone. A repeat join with the same name takes over the
// mapping; the earlier connection drops out of presence tracking.
func (h *Hub) handleJoinChat(c *Client, name string) {
	if name == "" {
		h.logger.Warn().Str("client_id", c.id).Msg("join-chat with empty display name ignored.")
		return
	}

	c.name = name

	h.sendTo(c, EventMessageHistory, h.relay.recent(historyBackfill))

	count := h.presence.join(name, c.id)

	h.logger.Info().Str("client_id", c.id).Str("username", name).Int("online", count).Msg("Client joined chat.")

	h.broadcast(EventUserJoined, PresencePayload{Username: name, Count: count})
	h.broadcast(EventActiveUsers, count)
}

// handleChatLeave removes c from presence tracking and announces the
// departure. A connection that never joined chat, or whose name was taken
// over by a newer connection, is a silent no-op.
func (h *Hub) handleChatLeave(c *Client) {
	if c.name == "" {
		return
	}

	removed, count := h.presence.leave(c.name, c.id)
	if !removed {
		return
	}

	h.logger.Info().Str("client_id", c.id).Str("username", c.name).Int("online", count).Msg("Client left chat.")

	h.broadcast(EventUserLeft, PresencePayload{Username: c.name, Count: count})
	h.broadcast(EventActiveUsers, count)
}

// handleSendMessage appends the message to the bounded log and rebroadcasts it
// to every connection, the sender included.
func (h *Hub) handleSendMessage(c *Client, payload SendMessagePayload) {
	msg := h.relay.append(payload.Username, payload.Message)
	h.broadcast(EventNewMessage, msg)
}
