package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rennixx/ServiceQR/models"
)

// Event types yang dikirim ke dashboard
const (
	EventRequestCreate  = "request_create"
	EventRequestUpdate  = "request_update"
	EventTableCreate    = "table_create"
	EventTableUpdate    = "table_update"
	EventTableDelete    = "table_delete"
	EventThemeUpdate    = "theme_update"
	EventFeedbackCreate = "feedback_create"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung semua client dashboard (staff, admin) per koneksi websocket.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastRequestCreate -> request baru dari guest, dengan detail meja
func BroadcastRequestCreate(req models.RequestDetails) {
	broadcast(Message{
		Event: EventRequestCreate,
		Data:  req,
	})
}

// BroadcastRequestUpdate -> transisi status request (pending -> done)
func BroadcastRequestUpdate(req models.RequestDetails) {
	broadcast(Message{
		Event: EventRequestUpdate,
		Data:  req,
	})
}

// BroadcastTableCreate -> meja baru dibuat admin
func BroadcastTableCreate(table models.Table) {
	broadcast(Message{
		Event: EventTableCreate,
		Data:  table,
	})
}

// BroadcastTableUpdate -> meja diubah admin
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{
		Event: EventTableUpdate,
		Data:  table,
	})
}

// BroadcastTableDelete -> meja dihapus admin
func BroadcastTableDelete(tableID uint) {
	broadcast(Message{
		Event: EventTableDelete,
		Data:  map[string]interface{}{"table_id": tableID},
	})
}

// BroadcastThemeUpdate -> theme restoran disimpan ulang
func BroadcastThemeUpdate(restaurant models.Restaurant) {
	broadcast(Message{
		Event: EventThemeUpdate,
		Data:  restaurant,
	})
}

// BroadcastFeedbackCreate -> feedback baru dari guest
func BroadcastFeedbackCreate(feedback models.Feedback) {
	broadcast(Message{
		Event: EventFeedbackCreate,
		Data:  feedback,
	})
}

// BroadcastMessage -> broadcast pesan umum
func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
