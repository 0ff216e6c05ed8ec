// Package websocket implements a Hub for pushing live leaderboard refreshes.
// Clients watching a round hold a persistent connection; when a score is
// entered, the score handler recomputes the standings and broadcasts them to
// everyone watching that round, so viewers see updates the moment they land
// instead of waiting for the next poll.
package websocket

import "sync"

// Client represents a single connected viewer. Each spectator watching a live
// round has one Client instance on the server.
type Client struct {
	RoundID string      // Which round this client is watching — routes updates to the right audience
	Send    chan []byte // Buffered channel of outgoing messages; the Hub writes here, the connection's writer goroutine drains it
}

// Update is a unit of data to broadcast to all clients watching one round.
type Update struct {
	RoundID string // The round this update belongs to
	Data    []byte // JSON payload — typically the freshly recomputed leaderboard rows
}

// Hub manages all active connections, grouped by round ID. It runs in its own
// goroutine and processes registration, unregistration, and broadcast events
// through channels, keeping all map mutation on a single goroutine (concurrent
// map writes panic in Go).
type Hub struct {
	// clients is a nested map: roundID -> set of Client pointers.
	// map[*Client]bool as a "set" is the usual Go idiom.
	clients map[string]map[*Client]bool

	broadcast  chan *Update // Updates to fan out to a round's watchers
	register   chan *Client // A new client connected
	unregister chan *Client // A client disconnected

	// mu lets broadcasts read the client set (RLock) while the main loop
	// holds the write lock for mutations.
	mu sync.RWMutex
}

// NewHub creates an empty Hub. The broadcast channel is buffered so score
// handlers don't block if the Hub goroutine is briefly busy; register and
// unregister are unbuffered because those must complete synchronously.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Update, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's main event loop; call it in a goroutine ("go hub.Run()").
// It blocks forever, processing one event at a time.
func (h *Hub) Run() {
	for {
		select {

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.RoundID] == nil {
				h.clients[client.RoundID] = make(map[*Client]bool)
			}
			h.clients[client.RoundID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.RoundID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send) // signals the connection's writer goroutine to stop
					if len(clients) == 0 {
						delete(h.clients, client.RoundID) // avoid leaking empty round entries
					}
				}
			}
			h.mu.Unlock()

		case upd := <-h.broadcast:
			h.mu.RLock()
			clients := h.clients[upd.RoundID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.Send <- upd.Data:
				// A full Send buffer means the client can't keep up — drop
				// and disconnect it rather than stalling every other watcher.
				default:
					h.unregister <- client
				}
			}
		}
	}
}

// BroadcastToRound sends data to all clients currently watching the given
// round. Score and handicap handlers call this after recomputing standings.
func (h *Hub) BroadcastToRound(roundID string, data []byte) {
	h.broadcast <- &Update{RoundID: roundID, Data: data}
}

// Register adds a client so it starts receiving updates for its round.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
