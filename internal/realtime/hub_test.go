package realtime

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMessageTypesAreDistinct(t *testing.T) {
	types := []MessageType{
		MsgCellFilled, MsgBacktrack, MsgEntropy, MsgSessionDone, MsgSessionFailed,
	}

	seen := make(map[MessageType]bool)
	for _, mt := range types {
		if seen[mt] {
			t.Errorf("duplicate message type: %s", mt)
		}
		seen[mt] = true
	}
}

func TestMessageSerialization(t *testing.T) {
	msg := Message{
		Type:    MsgCellFilled,
		Payload: json.RawMessage(`{"row":1,"col":2,"text":"cat","direction":"E"}`),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Type != msg.Type {
		t.Errorf("Type = %s, want %s", decoded.Type, msg.Type)
	}
}

func TestHubBroadcastDeliversOnlyToSubscribedSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := &Client{SessionID: "session-a", Send: make(chan []byte, 4)}
	b := &Client{SessionID: "session-b", Send: make(chan []byte, 4)}
	hub.Register(a)
	hub.Register(b)

	waitForSubscriberCount(t, hub, "session-a", 1)
	waitForSubscriberCount(t, hub, "session-b", 1)

	hub.Broadcast("session-a", MsgCellFilled, CellFilledPayload{Row: 0, Col: 0, Text: "cat", Direction: "E"})

	select {
	case msg := <-a.Send:
		var decoded Message
		if err := json.Unmarshal(msg, &decoded); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if decoded.Type != MsgCellFilled {
			t.Errorf("Type = %s, want %s", decoded.Type, MsgCellFilled)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber to session-a received nothing")
	}

	select {
	case msg := <-b.Send:
		t.Fatalf("subscriber to session-b should not have received a message, got %s", msg)
	default:
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{SessionID: "session-a", Send: make(chan []byte, 4)}
	hub.Register(client)
	waitForSubscriberCount(t, hub, "session-a", 1)

	hub.Unregister(client)
	waitForSubscriberCount(t, hub, "session-a", 0)

	if _, ok := <-client.Send; ok {
		t.Fatal("Send channel should be closed after Unregister")
	}
}

func waitForSubscriberCount(t *testing.T, hub *Hub, sessionID string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.SubscriberCount(sessionID) == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("SubscriberCount(%q) never reached %d", sessionID, want)
}
