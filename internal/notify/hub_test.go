package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnounceKeepsHistoryPerRoom(t *testing.T) {
	hub := NewHub()

	hub.Announce("room1", "hello")
	hub.Announce("room1", "world")
	hub.Announce("room2", "elsewhere")

	events := hub.History("room1")
	assert.Len(t, events, 2)
	assert.Equal(t, "hello", events[0].Text)
	assert.Equal(t, "world", events[1].Text)
	assert.Equal(t, "room1", events[0].Room)

	assert.Len(t, hub.History("room2"), 1)
	assert.Empty(t, hub.History("room3"))
}

func TestHistoryIsBounded(t *testing.T) {
	hub := NewHub()
	for i := 0; i < historyLimit+10; i++ {
		hub.Announce("room1", fmt.Sprintf("event %d", i))
	}

	events := hub.History("room1")
	assert.Len(t, events, historyLimit)
	assert.Equal(t, "event 10", events[0].Text)
}

func TestHistoryReturnsCopy(t *testing.T) {
	hub := NewHub()
	hub.Announce("room1", "original")

	events := hub.History("room1")
	events[0].Text = "mutated"

	assert.Equal(t, "original", hub.History("room1")[0].Text)
}
