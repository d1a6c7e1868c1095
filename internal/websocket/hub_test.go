package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHub(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Mock client
	client := &Client{
		hub:  hub,
		send: make(chan []byte, 1),
	}

	// Test registration
	hub.register <- client

	// Test broadcast
	message := []byte("hello")
	hub.broadcast <- message

	select {
	case received := <-client.send:
		if string(received) != "hello" {
			t.Errorf("Client received wrong message: got %s, want %s", received, message)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Client did not receive broadcast message in time")
	}

	// Test unregistration; the hub closes the send channel.
	hub.unregister <- client
	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("Expected send channel to be closed after unregistration")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Client was not unregistered in time")
	}
}

func TestServeWsReceivesBroadcastJSON(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	// Registration happens before ServeWs returns, but give the hub a moment.
	time.Sleep(50 * time.Millisecond)
	hub.BroadcastJSON(map[string]string{"jobId": "tmp-sweep"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	if string(msg) != `{"jobId":"tmp-sweep"}` {
		t.Errorf("Unexpected message: %s", msg)
	}
}
