package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestHubBroadcastSetsTimestamp(t *testing.T) {
	h := NewHub()
	h.Broadcast(ProgressMessage{Type: "progress", JobID: "job-1"})

	select {
	case data := <-h.broadcast:
		var msg ProgressMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal broadcast: %v", err)
		}
		if msg.JobID != "job-1" {
			t.Errorf("job id = %q, want job-1", msg.JobID)
		}
		if msg.Timestamp == "" {
			t.Error("no timestamp set")
		}
	default:
		t.Fatal("nothing on broadcast channel")
	}
}

func TestWebSocketStream(t *testing.T) {
	s := newTestServer(t, Config{})
	go s.hub.Run()

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("status = %d, want 101", resp.StatusCode)
	}

	// Registration races the broadcast, wait for the client to land.
	deadline := time.Now().Add(2 * time.Second)
	for s.hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	s.hub.Broadcast(ProgressMessage{Type: "complete", JobID: "job-9", Progress: 100})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var msg ProgressMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != "complete" || msg.JobID != "job-9" {
		t.Errorf("message = %+v, want complete for job-9", msg)
	}
}
