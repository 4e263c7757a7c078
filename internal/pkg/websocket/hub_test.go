package websocket

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func newTestClient(userID int64) *Client {
	return &Client{
		send:   make(chan []byte, 8),
		userID: userID,
		logger: zerolog.Nop(),
	}
}

func receivedNotification(t *testing.T, client *Client) *Notification {
	t.Helper()

	select {
	case data := <-client.send:
		var n Notification
		require.NoError(t, json.Unmarshal(data, &n))
		return &n
	default:
		return nil
	}
}

func TestHubDeliverSkipsClosedClients(t *testing.T) {
	hub := newTestHub()

	open1 := newTestClient(1)
	open2 := newTestClient(2)
	stale := newTestClient(3)
	stale.markClosed()

	hub.Subscribe(open1)
	hub.Subscribe(open2)
	hub.Subscribe(stale)

	hub.deliver(&Notification{Type: "upcoming-meeting", Message: `Meeting "Standup" starts in 1 hour`})

	for _, client := range []*Client{open1, open2} {
		n := receivedNotification(t, client)
		require.NotNil(t, n)
		assert.Equal(t, "upcoming-meeting", n.Type)
		assert.Equal(t, `Meeting "Standup" starts in 1 hour`, n.Message)
	}

	assert.Empty(t, stale.send, "closed client should not receive notifications")
	assert.Equal(t, 3, hub.ClientCount(), "closed client stays subscribed until unregistered")
}

func TestHubDeliverSkipsFullSendBuffers(t *testing.T) {
	hub := newTestHub()

	slow := &Client{send: make(chan []byte), userID: 1, logger: zerolog.Nop()}
	fast := newTestClient(2)
	hub.Subscribe(slow)
	hub.Subscribe(fast)

	hub.deliver(&Notification{Type: "new-meeting", Message: "New meeting scheduled"})

	require.NotNil(t, receivedNotification(t, fast))
	assert.Equal(t, 2, hub.ClientCount())
}

func TestHubSubscribeIsIdempotent(t *testing.T) {
	hub := newTestHub()
	client := newTestClient(1)

	hub.Subscribe(client)
	hub.Subscribe(client)

	assert.Equal(t, 1, hub.ClientCount())

	hub.deliver(&Notification{Type: "upcoming-meeting", Message: "hello"})
	require.NotNil(t, receivedNotification(t, client))
	assert.Nil(t, receivedNotification(t, client), "duplicate subscription must not duplicate delivery")
}

func TestHubUnsubscribe(t *testing.T) {
	hub := newTestHub()
	client := newTestClient(1)

	hub.Subscribe(client)
	hub.Unsubscribe(client)
	assert.Equal(t, 0, hub.ClientCount())

	// Absent client is a no-op, including a second unsubscribe of the
	// same client whose send channel is already closed.
	hub.Unsubscribe(client)
	hub.Unsubscribe(newTestClient(2))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubConcurrentSubscribeAndBroadcast(t *testing.T) {
	hub := newTestHub()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			hub.Subscribe(newTestClient(id))
		}(int64(i))
		go func() {
			defer wg.Done()
			hub.deliver(&Notification{Type: "upcoming-meeting", Message: "tick"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, hub.ClientCount())
}
