package hub

import (
	"encoding/json"
	"testing"
	"time"
)

// addClient registers a bare client so fan-out can be observed on its send
// channel without a live websocket.
func addClient(t *testing.T, h *Hub) *Client {
	t.Helper()
	c := NewClient(h, nil)

	deadline := time.After(time.Second)
	for h.ClientCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("client never registered")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	return c
}

func TestHubBroadcastFanOut(t *testing.T) {
	h := New("status")
	go h.Run()

	a := addClient(t, h)
	b := addClient(t, h)

	h.Broadcast([]byte(`{"reps":3}`))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			if string(msg) != `{"reps":3}` {
				t.Errorf("unexpected message %s", msg)
			}
		case <-time.After(time.Second):
			t.Fatal("client never received broadcast")
		}
	}
}

func TestHubBroadcastJSON(t *testing.T) {
	h := New("status")
	go h.Run()

	c := addClient(t, h)

	if err := h.BroadcastJSON(map[string]int{"reps": 7}); err != nil {
		t.Fatalf("BroadcastJSON: %v", err)
	}

	select {
	case msg := <-c.send:
		var got map[string]int
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["reps"] != 7 {
			t.Errorf("reps = %d, want 7", got["reps"])
		}
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	h := New("status")
	go h.Run()

	addClient(t, h)

	// Keep broadcasting without draining until the client's buffer
	// overflows and the hub evicts it.
	deadline := time.After(5 * time.Second)
	for h.ClientCount() != 0 {
		h.Broadcast([]byte("x"))
		select {
		case <-deadline:
			t.Fatal("slow client was never dropped")
		default:
		}
	}
}
