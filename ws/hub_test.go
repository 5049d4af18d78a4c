package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastDeliversToRegisteredClients(t *testing.T) {
	hub := NewHub()
	registered := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.mutex.Lock()
		hub.clients[conn] = true
		hub.mutex.Unlock()
		close(registered)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("client never registered")
	}

	hub.Broadcast(Event{Type: "reload", Payload: "12345"})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	_, message, err := client.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, "reload", event.Type)
	assert.Equal(t, "12345", event.Payload)
}

func TestBroadcastWithNoClientsIsHarmless(t *testing.T) {
	hub := NewHub()
	hub.Broadcast(Event{Type: "reload"})
	// the run loop drains the queue with nobody listening
}

func TestBroadcastNeverBlocksWhenQueueIsFull(t *testing.T) {
	// run loop deliberately not started so the queue cannot drain
	hub := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 1),
	}

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Broadcast(Event{Type: "reload"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a full queue")
	}
	assert.Len(t, hub.broadcast, 1) // overflow was dropped, not queued
}
