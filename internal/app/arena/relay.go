package arena

import "time"

const (
	// maxLogSize is the chat log capacity; the oldest entry is evicted first.
	maxLogSize = 100

	// historyBackfill is the number of recent messages handed to a new chat joiner.
	historyBackfill = 50
)

// messageLog is the bounded ordered chat log. It is owned by the hub loop and
// mutated only from there.
type messageLog struct {
	entries []ChatMessage
}

func newMessageLog() *messageLog {
	return &messageLog{entries: make([]ChatMessage, 0, maxLogSize)}
}

// append records a new text message with the current timestamp, evicting the
// oldest entry once the log is over capacity.
func (l *messageLog) append(author, body string) ChatMessage {
	msg := ChatMessage{
		Author:    author,
		Body:      body,
		Kind:      "text",
		Timestamp: time.Now().UnixMilli(),
	}

	l.entries = append(l.entries, msg)
	if len(l.entries) > maxLogSize {
		l.entries = append(l.entries[:0], l.entries[1:]...)
	}

	return msg
}

// recent returns up to limit of the newest messages in chronological order.
func (l *messageLog) recent(limit int) []ChatMessage {
	start := len(l.entries) - limit
	if start < 0 {
		start = 0
	}

	tail := make([]ChatMessage, len(l.entries)-start)
	copy(tail, l.entries[start:])
	return tail
}
