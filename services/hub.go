package services

import (
	"encoding/json"
	"log"
	"sync"

	"truthordare/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub pushes roster, game, photo and mode changes to connected websocket
// clients (the app's screens).
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	unregister chan *Client
	mutex      sync.RWMutex

	roster  *RosterService
	session *SessionService
	photos  *PhotoService
	catalog *CatalogService
}

type Client struct {
	hub    *Hub
	id     string
	socket *websocket.Conn
	send   chan []byte
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	MessagePlayersUpdate = "players_update"
	MessageSessionUpdate = "session_update"
	MessagePhotosUpdate  = "photos_update"
	MessageModesUpdate   = "modes_update"
	MessageStateSync     = "state_sync"
)

func NewHub(roster *RosterService, session *SessionService, photos *PhotoService, catalog *CatalogService) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		unregister: make(chan *Client),
		roster:     roster,
		session:    session,
		photos:     photos,
		catalog:    catalog,
	}
}

// Subscribe forwards every service notification to the broadcast loop. The
// returned function detaches the hub.
func (h *Hub) Subscribe() func() {
	unsubs := []func(){
		h.roster.Subject().Subscribe(func(players []models.Player) {
			h.Broadcast(MessagePlayersUpdate, players)
		}),
		h.session.Subject().Subscribe(func(session *models.GameSession) {
			h.Broadcast(MessageSessionUpdate, session)
		}),
		h.photos.Subject().Subscribe(func(photos []models.Photo) {
			h.Broadcast(MessagePhotosUpdate, photos)
		}),
		h.catalog.ModesSubject().Subscribe(func(modes []models.Mode) {
			h.Broadcast(MessageModesUpdate, modes)
		}),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client unregistered: %s - Total clients: %d", client.id, len(h.clients))
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					log.Printf("Client %s send buffer full, closing connection", client.id)
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast queues a message for every client. It never blocks the caller;
// when the queue is full the message is dropped and clients can resync.
func (h *Hub) Broadcast(messageType string, payload interface{}) {
	data, err := json.Marshal(Message{Type: messageType, Payload: payload})
	if err != nil {
		log.Printf("Error marshaling %s message: %v", messageType, err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Printf("Broadcast queue full, dropping %s", messageType)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// StateSync is the full snapshot sent on request.
type StateSync struct {
	Players          []models.Player     `json:"players"`
	Session          *models.GameSession `json:"session"`
	Photos           []models.Photo      `json:"photos"`
	Modes            []models.Mode       `json:"modes"`
	MustChooseAction bool                `json:"must_choose_action"`
	CatalogReady     bool                `json:"catalog_ready"`
}

func (h *Hub) Snapshot() StateSync {
	return StateSync{
		Players:          h.roster.List(),
		Session:          h.session.Current(),
		Photos:           h.photos.List(),
		Modes:            h.catalog.Modes(),
		MustChooseAction: h.session.MustChooseAction(),
		CatalogReady:     h.catalog.IsReady(),
	}
}

func (h *Hub) sendStateSync(client *Client) {
	data, err := json.Marshal(Message{Type: MessageStateSync, Payload: h.Snapshot()})
	if err != nil {
		log.Printf("Error marshaling state sync message: %v", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if !h.clients[client] {
		return
	}
	select {
	case client.send <- data:
	default:
		log.Printf("Client %s send buffer full, dropping state sync", client.id)
	}
}

func (h *Hub) RegisterClient(conn *websocket.Conn) *Client {
	client := &Client{
		hub:    h,
		id:     uuid.NewString(),
		socket: conn,
		send:   make(chan []byte, 256),
	}

	// Registered before the pumps start so the first request finds the client.
	h.mutex.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mutex.Unlock()
	log.Printf("Client registered: %s - Total clients: %d", client.id, total)

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		data, _ := json.Marshal(Message{Type: "pong", Payload: "pong"})
		c.hub.mutex.RLock()
		if c.hub.clients[c] {
			select {
			case c.send <- data:
			default:
			}
		}
		c.hub.mutex.RUnlock()

	case "request_state":
		c.hub.sendStateSync(c)

	default:
		log.Printf("Unknown message type %s from client %s", msg.Type, c.id)
	}
}
