package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHubBroadcast(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	alice, unsubA, ok := hub.Subscribe("alice")
	require.True(t, ok)
	defer unsubA()

	bob, unsubB, ok := hub.Subscribe("bob")
	require.True(t, ok)
	defer unsubB()

	hub.Broadcast(Event{Type: "newVideo", Payload: "v1"})

	require.Equal(t, "newVideo", (<-alice).Type)
	require.Equal(t, "newVideo", (<-bob).Type)
}

func TestHubSendToUser(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	alice, unsubA, ok := hub.Subscribe("alice")
	require.True(t, ok)
	defer unsubA()

	bob, unsubB, ok := hub.Subscribe("bob")
	require.True(t, ok)
	defer unsubB()

	require.True(t, hub.SendToUser("alice", Event{Type: "offer"}))
	require.False(t, hub.SendToUser("carol", Event{Type: "offer"}))

	require.Equal(t, "offer", (<-alice).Type)
	select {
	case evt := <-bob:
		t.Fatalf("bob should not receive targeted event, got %v", evt)
	default:
	}
}

func TestHubSlowSubscriberDrops(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	ch, unsub, ok := hub.Subscribe("alice")
	require.True(t, ok)
	defer unsub()

	// Fill the buffer and then some; sends past capacity must not block.
	for i := 0; i < 100; i++ {
		hub.Broadcast(Event{Type: "newVideo"})
	}

	require.Len(t, ch, 32)
}

func TestHubUnsubscribe(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	ch, unsub, ok := hub.Subscribe("alice")
	require.True(t, ok)
	require.Equal(t, 1, hub.Connected())

	unsub()
	unsub() // idempotent

	require.Equal(t, 0, hub.Connected())
	_, open := <-ch
	require.False(t, open)

	require.False(t, hub.SendToUser("alice", Event{Type: "offer"}))
}

func TestHubStreamCapPerUser(t *testing.T) {
	t.Parallel()

	hub := NewHub()

	var unsubs []func()
	for i := 0; i < maxStreamsPerUser; i++ {
		_, unsub, ok := hub.Subscribe("alice")
		require.True(t, ok)
		unsubs = append(unsubs, unsub)
	}

	_, _, ok := hub.Subscribe("alice")
	require.False(t, ok)

	unsubs[0]()
	_, unsub, ok := hub.Subscribe("alice")
	require.True(t, ok)
	defer unsub()
}
