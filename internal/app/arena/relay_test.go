package arena

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageLogEvictsOldest(t *testing.T) {
	l := newMessageLog()

	for i := 0; i < maxLogSize+1; i++ {
		l.append("alice", fmt.Sprintf("msg-%d", i))
	}

	require.Len(t, l.entries, maxLogSize)
	assert.Equal(t, "msg-1", l.entries[0].Body)
	assert.Equal(t, fmt.Sprintf("msg-%d", maxLogSize), l.entries[maxLogSize-1].Body)
}

func TestMessageLogRecent(t *testing.T) {
	l := newMessageLog()

	for i := 0; i < 10; i++ {
		l.append("alice", fmt.Sprintf("msg-%d", i))
	}

	recent := l.recent(3)
	require.Len(t, recent, 3)
	assert.Equal(t, "msg-7", recent[0].Body)
	assert.Equal(t, "msg-9", recent[2].Body)

	// A limit above the log size returns everything.
	assert.Len(t, l.recent(50), 10)

	// The returned slice is a copy.
	recent[0].Body = "mutated"
	assert.Equal(t, "msg-7", l.entries[7].Body)
}

func TestMessageLogRecentEmpty(t *testing.T) {
	l := newMessageLog()
	assert.Empty(t, l.recent(historyBackfill))
}
