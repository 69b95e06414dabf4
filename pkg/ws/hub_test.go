package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubCloseAll(t *testing.T) {
	hub := NewHub()
	up := websocket.Upgrader{}
	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Add("stream_1", conn)
		close(registered)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()
	<-registered

	if hub.Len() != 1 {
		t.Fatalf("Len = %d; want 1", hub.Len())
	}
	hub.CloseAll()
	if hub.Len() != 0 {
		t.Fatalf("Len after CloseAll = %d", hub.Len())
	}

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = client.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Fatalf("client read err = %v; want going-away close", err)
	}
}

func TestHubRemove(t *testing.T) {
	hub := NewHub()
	hub.Add("a", nil)
	hub.Add("b", nil)
	hub.Remove("a")
	hub.Remove("missing")
	if hub.Len() != 1 {
		t.Fatalf("Len = %d; want 1", hub.Len())
	}
}
