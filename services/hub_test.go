package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"truthordare/storage"

	"github.com/gorilla/websocket"
)

func newTestHub(t *testing.T) (*Hub, *RosterService) {
	t.Helper()
	store := storage.NewMemoryStore()
	catalog := newTestCatalog(t, store)
	roster := NewRosterService(store)
	session := NewSessionService(catalog, store, NewDrawer(testRand()), DefaultRules())
	return NewHub(roster, session, NewPhotoService(store), catalog), roster
}

func TestHubForwardsServiceUpdates(t *testing.T) {
	hub, roster := newTestHub(t)
	unsubscribe := hub.Subscribe()
	defer unsubscribe()

	// drain the replayed initial state
	for i := 0; i < 4; i++ {
		<-hub.broadcast
	}

	if _, err := roster.Add(context.Background(), &AddPlayerRequest{Name: "Ana", Gender: "female"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	var msg struct {
		Type    string            `json:"type"`
		Payload []json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(<-hub.broadcast, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != MessagePlayersUpdate || len(msg.Payload) != 1 {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestHubStateSyncOverWebsocket(t *testing.T) {
	hub, roster := newTestHub(t)
	go hub.Run()

	if _, err := roster.Add(context.Background(), &AddPlayerRequest{Name: "Ana", Gender: "female"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		hub.RegisterClient(conn)
	}))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(Message{Type: "request_state"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg struct {
		Type    string    `json:"type"`
		Payload StateSync `json:"payload"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != MessageStateSync {
		t.Fatalf("type = %q", msg.Type)
	}
	if len(msg.Payload.Players) != 1 || msg.Payload.Players[0].Name != "Ana" {
		t.Fatalf("players = %+v", msg.Payload.Players)
	}
	if !msg.Payload.CatalogReady || len(msg.Payload.Modes) != 3 || msg.Payload.Session != nil {
		t.Fatalf("unexpected snapshot %+v", msg.Payload)
	}
}
