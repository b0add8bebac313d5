// Package realtime streams a session's fill progress to websocket clients.
// Unlike a multiplayer room, a session has exactly one producer (the
// backtracking filler) and any number of read-only subscribers: there is no
// client-to-server message catalogue, only a one-way feed of fill events.
package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType identifies the shape of a progress message's payload.
type MessageType string

const (
	// MsgCellFilled reports a word placed during the current fill attempt.
	MsgCellFilled MessageType = "cell_filled"
	// MsgBacktrack reports the filler undoing a placement.
	MsgBacktrack MessageType = "backtrack"
	// MsgEntropy reports the candidate count considered for a cell.
	MsgEntropy MessageType = "entropy"
	// MsgSessionDone reports a successfully completed session.
	MsgSessionDone MessageType = "session_done"
	// MsgSessionFailed reports a session that ended without a completed grid.
	MsgSessionFailed MessageType = "session_failed"
)

// Message is the envelope written to every subscriber.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CellFilledPayload names the word just placed and where it starts.
type CellFilledPayload struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Text      string `json:"text"`
	Direction string `json:"direction"`
}

// BacktrackPayload names the word the filler is unwinding.
type BacktrackPayload struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Text      string `json:"text"`
	Direction string `json:"direction"`
}

// EntropyPayload reports a cell's candidate count from the filler's latest
// recomputation; one is sent for every cell that has candidates.
type EntropyPayload struct {
	Row        int `json:"row"`
	Col        int `json:"col"`
	Candidates int `json:"candidates"`
}

// SessionDonePayload summarizes a completed fill.
type SessionDonePayload struct {
	Attempts  int   `json:"attempts"`
	ElapsedMS int64 `json:"elapsedMs"`
}

// SessionFailedPayload explains why a session could not complete.
type SessionFailedPayload struct {
	Message string `json:"message"`
}

// Hub fans out progress messages to every client subscribed to a session.
type Hub struct {
	sessions   map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
}

// NewHub builds an empty hub. Call Run in its own goroutine before use.
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes registrations until the hub's channels are abandoned.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			if h.sessions[client.SessionID] == nil {
				h.sessions[client.SessionID] = make(map[*Client]bool)
			}
			h.sessions[client.SessionID][client] = true
			h.mutex.Unlock()
			log.Printf("realtime: client subscribed to session %s", client.SessionID)

		case client := <-h.unregister:
			h.mutex.Lock()
			if clients, ok := h.sessions[client.SessionID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.sessions, client.SessionID)
					}
				}
			}
			h.mutex.Unlock()
			log.Printf("realtime: client unsubscribed from session %s", client.SessionID)
		}
	}
}

// Register subscribes a client to its session's feed.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client, closing its send channel.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends a typed message to every client subscribed to sessionID.
// A client whose send buffer is full misses the message rather than
// blocking the filler; it stays subscribed.
func (h *Hub) Broadcast(sessionID string, msgType MessageType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("realtime: marshal payload for %s: %v", msgType, err)
		return
	}

	msgData, err := json.Marshal(Message{Type: msgType, Payload: data})
	if err != nil {
		log.Printf("realtime: marshal message for %s: %v", msgType, err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for client := range h.sessions[sessionID] {
		select {
		case client.Send <- msgData:
		default:
			// Channel full, skip message rather than stall the filler.
		}
	}
}

// SubscriberCount reports how many clients are watching sessionID.
func (h *Hub) SubscriberCount(sessionID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.sessions[sessionID])
}
