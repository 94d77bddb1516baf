/*
This file defines the Client, one live websocket session. The read pump decodes
inbound envelopes and forwards them to the hub; the write pump drains the send
queue and keeps the connection's heartbeat alive.
*/
package arena

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"quizduel/internal/pkg/logx"
	"quizduel/internal/pkg/randx"
)

const (
	// writeWait is the timeout for a single write to the websocket.
	writeWait = 10 * time.Second

	// pongWait is how long the server waits for a pong before dropping the connection.
	pongWait = 60 * time.Second

	// pingPeriod is the heartbeat interval; it must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds inbound frames in bytes.
	maxMessageSize = 4096

	// sendQueueSize is the per-client outbound buffer.
	sendQueueSize = 256
)

// Client represents an active websocket connection.
type Client struct {
	hub *Hub

	conn *websocket.Conn

	// id uniquely identifies this session, generated on connect.
	id string

	// name is the display name set once when the client joins chat; mutated
	// only by the hub loop.
	name string

	// send queues frames waiting to be written to the connection.
	send chan []byte

	// sendClosed marks the queue closed; accessed only from the hub loop.
	sendClosed bool

	logger zerolog.Logger
}

// NewClient constructs a Client for the given connection with a fresh session ID.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	id := randx.SessionID()

	return &Client{
		hub:    hub,
		conn:   conn,
		id:     id,
		send:   make(chan []byte, sendQueueSize),
		logger: logx.Logger().With().Str("client_id", id).Logger(),
	}
}

// ID returns the session identifier assigned on connect.
func (c *Client) ID() string {
	return c.id
}

// ReadPump reads frames from the connection until it closes, forwarding each
// decoded envelope to the hub. It runs on the connection's goroutine and
// triggers teardown on exit.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			c.logger.Warn().Err(err).Bytes("frame", frame).Msg("Client sent invalid JSON")
			continue
		}

		select {
		case c.hub.inbound <- inboundEvent{client: c, env: env}:
		case <-c.hub.stopChan:
			return
		}
	}
}

// cleanupOnDisconnect unregisters the client and closes the connection.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.hub.Unregister(c)

	if err := c.conn.Close(); err != nil {
		c.logger.Error().Err(err).Msg("Client connection close error")
	}
}

// WritePump writes queued frames and periodic pings to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Error().Err(err).Msg("Error writing close message")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Error().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Error().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}

// queue hands a frame to the client's send buffer without blocking. A full or
// closed queue drops the frame; broadcast fan-out is fire-and-forget.
func (c *Client) queue(frame []byte) {
	if c.sendClosed {
		return
	}

	select {
	case c.send <- frame:
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Client send queue full, dropping frame")
	}
}

// closeSend closes the send queue. Called only from the hub loop, at most once.
func (c *Client) closeSend() {
	if c.sendClosed {
		return
	}

	c.sendClosed = true
	close(c.send)
}
