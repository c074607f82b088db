package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"blogupBack/internal/fsm"
	"blogupBack/internal/models"
	"blogupBack/utils"
)

/********** тайминги **********/
const (
	readLimit     = 1 << 20           // 1 MB
	readDeadline  = 120 * time.Second // дедлайн чтения (продлевается pong’ом)
	writeDeadline = 5 * time.Second   // дедлайн записи
	pingInterval  = 15 * time.Second  // период пингов
	resolveWait   = 3 * time.Second   // таймаут на проверку участников треда
)

/*****************************/

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true }, // при необходимости — белый список Origin
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// threadResolver отвечает, кто имеет право сидеть в комнате треда.
type threadResolver interface {
	GetThreadParticipants(ctx context.Context, responseID int) (models.ThreadParticipants, error)
}

// messageSender — отправка сообщения из сокета через тот же сервис, что и REST.
type messageSender interface {
	SendMessage(ctx context.Context, senderID, responseID int, content string, attachments []models.Attachment) (models.Message, error)
}

type wsClient struct {
	userID int
	conn   *websocket.Conn
	mu     sync.Mutex // сериализует записи в conn
	rooms  map[int]bool
}

func (c *wsClient) safeWrite(payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return c.conn.WriteJSON(payload)
}

// ChatHub держит подключённые сокеты и комнаты тредов. Все операции с
// clients/rooms — только под mu.
type ChatHub struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	rooms   map[int]map[*wsClient]struct{} // responseID -> клиенты в комнате

	Threads  threadResolver
	Messages messageSender
	tokens   *utils.Manager
	errorLog *log.Logger
}

func NewChatHub(threads threadResolver, tokens *utils.Manager, errorLog *log.Logger) *ChatHub {
	return &ChatHub{
		clients:  make(map[*wsClient]struct{}),
		rooms:    make(map[int]map[*wsClient]struct{}),
		Threads:  threads,
		tokens:   tokens,
		errorLog: errorLog,
	}
}

// Run блокируется до отмены контекста, затем закрывает все сокеты.
func (h *ChatHub) Run(ctx context.Context) {
	<-ctx.Done()
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.conn.Close()
	}
	h.clients = make(map[*wsClient]struct{})
	h.rooms = make(map[int]map[*wsClient]struct{})
}

func (h *ChatHub) register(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	log.Printf("WS register user=%d", c.userID)
}

func (h *ChatHub) unregister(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c)
	for roomID := range c.rooms {
		if members, ok := h.rooms[roomID]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
	log.Printf("WS unregister user=%d", c.userID)
}

func (h *ChatHub) joinRoom(c *wsClient, responseID int) {
	h.mu.Lock()
	if h.rooms[responseID] == nil {
		h.rooms[responseID] = make(map[*wsClient]struct{})
	}
	h.rooms[responseID][c] = struct{}{}
	c.rooms[responseID] = true
	h.mu.Unlock()
}

func (h *ChatHub) leaveRoom(c *wsClient, responseID int) {
	h.mu.Lock()
	if members, ok := h.rooms[responseID]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, responseID)
		}
	}
	delete(c.rooms, responseID)
	h.mu.Unlock()
}

func (h *ChatHub) roomMembers(responseID int) []*wsClient {
	h.mu.RLock()
	defer h.mu.RUnlock()
	members := make([]*wsClient, 0, len(h.rooms[responseID]))
	for c := range h.rooms[responseID] {
		members = append(members, c)
	}
	return members
}

// BroadcastMessage рассылает сохранённое сообщение всем в комнате, включая
// отправителя: его остальные вкладки тоже должны увидеть сообщение.
func (h *ChatHub) BroadcastMessage(responseID int, msg models.Message) {
	payload := map[string]any{
		"event": "message",
		"data":  msg,
	}
	for _, c := range h.roomMembers(responseID) {
		if err := c.safeWrite(payload); err != nil {
			log.Printf("broadcast error to=%d: %v", c.userID, err)
			h.unregister(c)
		}
	}
}

// broadcastTyping — индикатор набора всем в комнате, кроме автора.
func (h *ChatHub) broadcastTyping(event string, responseID, typistID int) {
	payload := map[string]any{
		"event": event,
		"data": map[string]int{
			"response_id": responseID,
			"user_id":     typistID,
		},
	}
	for _, c := range h.roomMembers(responseID) {
		if c.userID == typistID {
			continue
		}
		if err := c.safeWrite(payload); err != nil {
			log.Printf("typing broadcast error to=%d: %v", c.userID, err)
			h.unregister(c)
		}
	}
}

type wsEvent struct {
	Event string `json:"event"`
	Data  struct {
		ResponseID  int                 `json:"response_id"`
		Content     string              `json:"content"`
		Attachments []models.Attachment `json:"attachments"`
	} `json:"data"`
}

// WebSocketHandler апгрейдит соединение. Личность берётся из JWT в
// query-параметре token — заголовки из браузерного WebSocket не прокинуть.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := app.hub.tokens.Parse(r.URL.Query().Get("token"))
	if err != nil || userID <= 0 {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	client := &wsClient{userID: userID, conn: conn, rooms: make(map[int]bool)}
	app.hub.register(client)

	go app.hub.pingLoop(client)
	go app.hub.readLoop(client)
}

func (h *ChatHub) pingLoop(c *wsClient) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for range t.C {
		c.mu.Lock()
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		err := c.conn.WriteMessage(websocket.PingMessage, nil)
		c.mu.Unlock()
		if err != nil {
			h.unregister(c)
			return
		}
	}
}

func (h *ChatHub) readLoop(c *wsClient) {
	defer h.unregister(c)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var ev wsEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Println("read json error:", err)
			continue
		}
		if ev.Data.ResponseID <= 0 {
			continue
		}

		switch ev.Event {
		case "joinChat":
			// в комнату пускаем только участников живого (accepted) треда
			ctx, cancel := context.WithTimeout(context.Background(), resolveWait)
			participants, err := h.Threads.GetThreadParticipants(ctx, ev.Data.ResponseID)
			cancel()
			if err != nil || !participants.Contains(c.userID) || participants.Status != fsm.StatusAccepted {
				_ = c.safeWrite(map[string]any{
					"event": "error",
					"data":  map[string]any{"response_id": ev.Data.ResponseID, "message": "join rejected"},
				})
				continue
			}
			h.joinRoom(c, ev.Data.ResponseID)

		case "leaveChat":
			h.leaveRoom(c, ev.Data.ResponseID)

		case "sendMessage":
			if h.Messages == nil {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), resolveWait)
			_, err := h.Messages.SendMessage(ctx, c.userID, ev.Data.ResponseID, ev.Data.Content, ev.Data.Attachments)
			cancel()
			if err != nil {
				_ = c.safeWrite(map[string]any{
					"event": "error",
					"data":  map[string]any{"response_id": ev.Data.ResponseID, "message": err.Error()},
				})
			}

		case "startTyping":
			// наружу уходит событие typing
			if c.rooms[ev.Data.ResponseID] {
				h.broadcastTyping("typing", ev.Data.ResponseID, c.userID)
			}

		case "stopTyping":
			if c.rooms[ev.Data.ResponseID] {
				h.broadcastTyping("stopTyping", ev.Data.ResponseID, c.userID)
			}

		default:
			log.Printf("WS unknown event %q from user=%d", ev.Event, c.userID)
		}
	}
}
