package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenceJoinAndLeave(t *testing.T) {
	p := newPresenceTable()

	assert.Equal(t, 1, p.join("alice", "s1"))
	assert.Equal(t, 2, p.join("bob", "s2"))

	removed, count := p.leave("alice", "s1")
	assert.True(t, removed)
	assert.Equal(t, 1, count)

	removed, count = p.leave("alice", "s1")
	assert.False(t, removed)
	assert.Equal(t, 1, count)
}

func TestPresenceLastJoinWins(t *testing.T) {
	p := newPresenceTable()

	p.join("alice", "s1")
	assert.Equal(t, 1, p.join("alice", "s2"))

	// The orphaned session cannot remove the takeover's mapping.
	removed, count := p.leave("alice", "s1")
	assert.False(t, removed)
	assert.Equal(t, 1, count)

	removed, _ = p.leave("alice", "s2")
	assert.True(t, removed)
	assert.Zero(t, p.count())
}
