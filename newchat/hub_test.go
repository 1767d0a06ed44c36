package newchat

import (
	"encoding/json"
	"testing"
	"time"

	"pasarin/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newClient(nil, "room1", "u1")
	hub.register <- client

	msg := outboundPayload{Action: "chat", Text: "hello test"}
	data, _ := json.Marshal(msg)
	hub.broadcast <- broadcastMsg{Room: "room1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubBroadcastSkipsOtherRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := newClient(nil, "a", "u1")
	b := newClient(nil, "b", "u2")
	hub.register <- a
	hub.register <- b

	hub.Broadcast("a", []byte("only-a"))

	select {
	case got := <-a.Send:
		if string(got) != "only-a" {
			t.Fatalf("unexpected payload: %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("room b should not receive %s", got)
	case <-time.After(50 * time.Millisecond):
	}
}

// A client can disconnect while its history replay is still loading from the
// database. The late delivery must fail cleanly instead of panicking.
func TestHubDeliverAfterDisconnect(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newClient(nil, "room1", "u1")
	hub.register <- client
	hub.unregister <- client

	select {
	case <-client.done:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for disconnect")
	}

	if client.deliver([]byte("late history")) {
		t.Fatal("delivery to a disconnected client should report failure")
	}
}

func TestHubBroadcastMessageReachesRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := newClient(nil, "room1", "u1")
	hub.register <- client

	hub.BroadcastMessage(models.Message{
		ChatID:    "room1",
		UserID:    "u2",
		Text:      "sent over rest",
		CreatedAt: time.Now(),
	})

	select {
	case got := <-client.Send:
		var out outboundPayload
		if err := json.Unmarshal(got, &out); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if out.Action != "chat" || out.Room != "room1" || out.Text != "sent over rest" {
			t.Fatalf("unexpected payload: %+v", out)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}
}
