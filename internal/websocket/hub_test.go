package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHubRoutesBroadcastsByTournament(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcher := &Client{TournamentID: "cup-2026", Send: make(chan []byte, 4)}
	other := &Client{TournamentID: "cup-2025", Send: make(chan []byte, 4)}
	hub.Register(watcher)
	hub.Register(other)

	hub.BroadcastToTournament("cup-2026", []byte(`{"total":"4-0"}`))

	// The watcher of cup-2026 receives the update...
	select {
	case msg := <-watcher.Send:
		assert.Equal(t, `{"total":"4-0"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("watcher never received the broadcast")
	}

	// ...and the other tournament's watcher does not. The broadcast above was
	// already processed (we received it), so an empty channel here is definitive.
	select {
	case msg := <-other.Send:
		t.Fatalf("unrelated tournament received %q", msg)
	default:
	}
}

func TestHubDropsSlowClientAndKeepsBroadcasting(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{TournamentID: "cup-2026", Send: make(chan []byte, 1)}
	healthy := &Client{TournamentID: "cup-2026", Send: make(chan []byte, 4)}
	hub.Register(slow)
	hub.Register(healthy)

	// Fill the slow client's buffer so the next broadcast can't be queued on it.
	slow.Send <- []byte("backlog")

	hub.BroadcastToTournament("cup-2026", []byte("update-1"))
	hub.BroadcastToTournament("cup-2026", []byte("update-2"))

	// The healthy client receives both updates — the full buffer on the slow
	// client must not stall or wedge the broadcast loop.
	for _, want := range []string{"update-1", "update-2"} {
		select {
		case msg := <-healthy.Send:
			assert.Equal(t, want, string(msg))
		case <-time.After(time.Second):
			t.Fatalf("healthy client never received %s", want)
		}
	}

	// The slow client was dropped during update-1: its backlog is still there,
	// and behind it the channel is closed.
	assert.Equal(t, "backlog", string(<-slow.Send))
	select {
	case _, open := <-slow.Send:
		assert.False(t, open, "slow client's Send should be closed after the drop")
	case <-time.After(time.Second):
		t.Fatal("slow client's Send was never closed")
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{TournamentID: "cup-2026", Send: make(chan []byte, 4)}
	hub.Register(client)
	hub.Unregister(client)

	// The hub closes Send on unregister, which ends the connection's writer loop.
	select {
	case _, open := <-client.Send:
		assert.False(t, open, "Send should be closed after unregister")
	case <-time.After(time.Second):
		t.Fatal("Send was never closed")
	}
}
