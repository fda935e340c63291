package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestHubBroadcast(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := &Client{hub: hub, send: make(chan Event, 8)}
	hub.register <- c

	hub.Broadcast(Event{Type: "ASSET_MODIFIED", Data: map[string]string{"id": "AST-001"}})

	select {
	case ev := <-c.send:
		assert.Equal(t, "ASSET_MODIFIED", ev.Type)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	hub.unregister <- c
	_, open := <-c.send
	assert.False(t, open, "send channel closed on unregister")

	cancel()
	<-done
}

func TestHubShutdownClosesClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	c := &Client{hub: hub, send: make(chan Event, 1)}
	hub.register <- c

	cancel()
	<-done

	_, open := <-c.send
	assert.False(t, open)
}

func TestBroadcastAfterShutdownDoesNotBlock(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	cancel()
	<-done

	// A watcher still draining a snapshot may emit more events than the
	// broadcast buffer holds; none of them may wedge.
	finished := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			hub.Broadcast(Event{Type: "ASSET_MODIFIED"})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked after hub shutdown")
	}
}

func TestServeWS(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, w, r)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration happens after the handshake response is written.
	time.Sleep(50 * time.Millisecond)
	hub.Broadcast(Event{Type: "DEVICE_MODIFIED", Data: map[string]string{"id": "dev-1"}})

	var ev Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "DEVICE_MODIFIED", ev.Type)
}
