package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendToUserBeforeStart(t *testing.T) {
	m := NewManager()

	err := m.SendToUser("user-1", []byte("hello"))
	assert.ErrorIs(t, err, ErrChannelUnavailable)
}

func TestSendToOfflineUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	// Offline recipient is not an error.
	assert.NoError(t, m.SendToUser("user-1", []byte("hello")))
}

func TestSendToConnectedUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	client := &Client{
		UserID: "user-1",
		Send:   make(chan []byte, 4),
	}
	m.Register <- client

	// Registration is handled asynchronously by the manager loop.
	require.Eventually(t, func() bool {
		require.NoError(t, m.SendEventToUser("user-1", "notification", map[string]string{"id": "n-1"}))
		return len(client.Send) > 0
	}, time.Second, 10*time.Millisecond)

	message := <-client.Send
	assert.Contains(t, string(message), `"event":"notification"`)
}

func TestConcurrentSendsDropSlowConsumerOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	// An unbuffered channel with no reader makes every send hit the
	// slow-consumer branch. Concurrent pushes must close it exactly once.
	client := &Client{
		UserID: "user-1",
		Send:   make(chan []byte),
	}
	m.Register <- client

	require.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		return m.clients["user-1"] == client
	}, time.Second, 10*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				assert.NoError(t, m.SendToUser("user-1", []byte("ping")))
			}
		}()
	}
	wg.Wait()

	// The client was dropped; the user now counts as offline.
	m.mutex.RLock()
	_, ok := m.clients["user-1"]
	m.mutex.RUnlock()
	assert.False(t, ok)
	assert.NoError(t, m.SendToUser("user-1", []byte("ping")))
}

func TestUnregisterAfterShutdownDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	m := NewManager()
	m.Start(ctx)
	cancel()

	select {
	case <-m.done:
	case <-time.After(time.Second):
		t.Fatal("manager loop did not exit")
	}

	finished := make(chan struct{})
	go func() {
		m.unregister(&Client{UserID: "user-1", Send: make(chan []byte, 1)})
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("unregister blocked after shutdown")
	}
}
