package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

var (
	errObserverClosed = errors.New("observer closed")
	errSlowObserver   = errors.New("observer send buffer full")
)

// Message is the frame exchanged on an observer connection.
type Message struct {
	Type string           `json:"type"`
	Data *models.Snapshot `json:"data,omitempty"`
}

const (
	MessageSnapshot = "snapshot"
	MessagePull     = "pull"
)

// WSHandler upgrades HTTP requests to observer connections. Authentication
// happens before ServeHTTP is reached; the connection is not re-verified.
type WSHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *Hub, checkOrigin func(r *http.Request) bool) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	o := newWSObserver(conn)
	go o.writePump()

	ctx := context.WithoutCancel(r.Context())
	if err := h.hub.Register(ctx, o); err != nil {
		log.Printf("could not register observer: %v", err)
		o.Close()
		return
	}
	defer h.hub.Unregister(o.ID())

	o.readLoop(func() {
		if err := h.hub.Pull(ctx, o); err != nil {
			log.Printf("pull for observer %s failed: %v", o.ID(), err)
		}
	})
}

type wsObserver struct {
	id        string
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newWSObserver(conn *websocket.Conn) *wsObserver {
	return &wsObserver{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (o *wsObserver) ID() string {
	return o.id
}

func (o *wsObserver) Send(snap models.Snapshot) error {
	payload, err := json.Marshal(Message{Type: MessageSnapshot, Data: &snap})
	if err != nil {
		return err
	}

	select {
	case <-o.done:
		return errObserverClosed
	default:
	}

	select {
	case o.send <- payload:
		return nil
	case <-o.done:
		return errObserverClosed
	default:
		return errSlowObserver
	}
}

func (o *wsObserver) Close() error {
	o.closeOnce.Do(func() { close(o.done) })
	return nil
}

// readLoop blocks until the peer goes away. Any "pull" frame triggers onPull.
func (o *wsObserver) readLoop(onPull func()) {
	defer o.Close()

	o.conn.SetReadLimit(maxMessageSize)
	o.conn.SetReadDeadline(time.Now().Add(pongWait))
	o.conn.SetPongHandler(func(string) error {
		return o.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := o.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("observer %s read error: %v", o.id, err)
			}
			return
		}
		if isPull(data) {
			onPull()
		}
	}
}

func (o *wsObserver) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		o.conn.Close()
	}()

	for {
		select {
		case payload := <-o.send:
			o.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := o.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				o.Close()
				return
			}
		case <-ticker.C:
			o.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := o.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				o.Close()
				return
			}
		case <-o.done:
			o.conn.SetWriteDeadline(time.Now().Add(writeWait))
			o.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func isPull(data []byte) bool {
	if strings.EqualFold(strings.TrimSpace(string(data)), MessagePull) {
		return true
	}
	var m Message
	return json.Unmarshal(data, &m) == nil && m.Type == MessagePull
}
