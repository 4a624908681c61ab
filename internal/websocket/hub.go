// Package websocket implements a WebSocket Hub for broadcasting real-time scoreboard
// updates. WebSockets are persistent two-way connections between the server and clients —
// unlike regular HTTP where the client always initiates the request, WebSockets let the
// server push data to clients instantly. Anyone watching a live tournament sees the
// scoreboard move the moment a hole score is entered, without polling the API repeatedly.
package websocket

import "sync" // sync provides synchronization primitives like mutexes for safe concurrent access

// Client represents a single connected WebSocket client.
// Each spectator watching a live tournament has one Client instance on the server.
type Client struct {
	TournamentID string      // Which tournament this client is watching — used to route messages to the right audience
	Send         chan []byte // Buffered channel of outgoing messages; the Hub sends data here, the WebSocket writes it to the client
}

// Message is a unit of data to broadcast to all clients watching a specific tournament.
// By attaching the TournamentID, the Hub knows which group of clients should receive it.
type Message struct {
	TournamentID string // The tournament this message belongs to
	Data         []byte // The raw bytes to send (typically the JSON-encoded recomputed totals)
}

// Hub manages all active WebSocket connections, grouped by tournament ID.
// It runs in its own goroutine and processes registration, unregistration, and
// broadcast events through channels — this keeps all map access on a single goroutine,
// which avoids data races (concurrent map reads/writes cause panics in Go).
type Hub struct {
	// clients is a nested map: tournamentID -> set of Client pointers -> bool (true = connected).
	// Using a map[*Client]bool as a "set" is a common Go idiom because Go has no built-in set type.
	clients map[string]map[*Client]bool

	broadcast  chan *Message // Incoming messages to be sent to all clients watching a given tournament
	register   chan *Client  // Signals that a new client has connected and should be tracked
	unregister chan *Client  // Signals that a client has disconnected and should be removed

	// mu (mutex) protects the clients map. Every case in Run takes the write lock
	// (broadcasts can remove slow clients, so they mutate too); a RWMutex is kept
	// so read-only helpers outside the loop can still share an RLock.
	mu sync.RWMutex
}

// NewHub creates and initializes a Hub with empty channels and maps.
// The broadcast channel has a buffer of 256 so writers don't block immediately
// if the Hub goroutine is briefly busy. register and unregister are unbuffered
// because those operations need to complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's main event loop. It must be called in a goroutine ("go hub.Run()").
// It blocks forever, processing one event at a time via a select statement.
// select is like a switch but for channels — it waits until one of the cases has data ready.
func (h *Hub) Run() {
	for {
		select {

		// A new client has connected — add it to the clients map under its TournamentID
		case client := <-h.register:
			h.mu.Lock()
			// If this is the first client for this tournament, initialize the inner map
			if h.clients[client.TournamentID] == nil {
				h.clients[client.TournamentID] = make(map[*Client]bool)
			}
			h.clients[client.TournamentID][client] = true
			h.mu.Unlock()

		// A client has disconnected — remove it from the map and close its Send channel
		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.TournamentID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client) // Remove this client from the tournament's set
					close(client.Send)      // Closing the channel signals the WebSocket writer goroutine to stop
					// Clean up the tournament's map entry if no clients are left — avoids memory leaks
					if len(clients) == 0 {
						delete(h.clients, client.TournamentID)
					}
				}
			}
			h.mu.Unlock()

		// A message arrived to broadcast to all clients watching a specific tournament
		case msg := <-h.broadcast:
			// Take the write lock because a slow client may be removed below.
			// The removal has to happen inline: sending on h.unregister from
			// here would deadlock, since this loop is that channel's only
			// receiver and it's busy in this very case.
			h.mu.Lock()
			clients := h.clients[msg.TournamentID]
			for client := range clients {
				select {
				// Try to send the message to the client's outgoing channel
				case client.Send <- msg.Data:
				// If the channel buffer is full, the client is too slow — drop and
				// disconnect it rather than stalling the broadcast for everyone else.
				// Deleting during range is safe in Go.
				default:
					delete(clients, client)
					close(client.Send)
				}
			}
			if len(clients) == 0 {
				delete(h.clients, msg.TournamentID)
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToTournament sends data to all clients currently watching the given
// tournament. This is the public API the store calls after recomputing totals.
func (h *Hub) BroadcastToTournament(tournamentID string, data []byte) {
	h.broadcast <- &Message{TournamentID: tournamentID, Data: data}
}

// Register adds a client to the Hub so it starts receiving broadcasts for its tournament.
// Called when a WebSocket connection is opened.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the Hub when its WebSocket connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
