package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"blogupBack/internal/fsm"
	"blogupBack/internal/models"
	"blogupBack/utils"
)

type stubThreads struct {
	threads map[int]models.ThreadParticipants
}

func (s *stubThreads) GetThreadParticipants(_ context.Context, responseID int) (models.ThreadParticipants, error) {
	p, ok := s.threads[responseID]
	if !ok {
		return models.ThreadParticipants{}, models.ErrResponseNotFound
	}
	return p, nil
}

func newTestWSServer(t *testing.T) (*application, *httptest.Server, *utils.Manager) {
	t.Helper()

	tokens, err := utils.NewManager("ws-test-key")
	if err != nil {
		t.Fatal(err)
	}
	threads := &stubThreads{threads: map[int]models.ThreadParticipants{
		5: {BloggerID: 1, AdvertiserID: 2, Status: fsm.StatusAccepted},
		6: {BloggerID: 1, AdvertiserID: 2, Status: fsm.StatusPending},
	}}
	quiet := log.New(io.Discard, "", 0)

	app := &application{
		errorLog: quiet,
		infoLog:  quiet,
		hub:      NewChatHub(threads, tokens, quiet),
	}
	srv := httptest.NewServer(http.HandlerFunc(app.WebSocketHandler))
	t.Cleanup(srv.Close)
	return app, srv, tokens
}

func dialWS(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendEvent(t *testing.T, conn *websocket.Conn, event string, responseID int) {
	t.Helper()

	payload := map[string]any{
		"event": event,
		"data":  map[string]any{"response_id": responseID},
	}
	if err := conn.WriteJSON(payload); err != nil {
		t.Fatal(err)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatal(err)
	}
	return frame.Event, frame.Data
}

func waitForRoom(t *testing.T, hub *ChatHub, responseID, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(hub.roomMembers(responseID)) >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("room %d never reached %d members", responseID, want)
}

func TestWebSocketRejectsMissingToken(t *testing.T) {
	_, srv, _ := newTestWSServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	if _, _, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Fatal("handshake without token must fail")
	}
}

func TestJoinRejectedForNonParticipant(t *testing.T) {
	_, srv, tokens := newTestWSServer(t)

	token, err := tokens.NewJWT(99, models.RoleBlogger, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	conn := dialWS(t, srv, token)

	sendEvent(t, conn, "joinChat", 5)

	event, data := readEvent(t, conn)
	if event != "error" {
		t.Fatalf("want error frame, got %q", event)
	}
	if !strings.Contains(string(data), "join rejected") {
		t.Fatalf("unexpected error payload: %s", data)
	}
}

func TestJoinRejectedForPendingThread(t *testing.T) {
	_, srv, tokens := newTestWSServer(t)

	// участник, но тред ещё не принят
	token, err := tokens.NewJWT(1, models.RoleBlogger, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	conn := dialWS(t, srv, token)

	sendEvent(t, conn, "joinChat", 6)

	event, _ := readEvent(t, conn)
	if event != "error" {
		t.Fatalf("want error frame, got %q", event)
	}
}

func TestJoinedParticipantReceivesMessage(t *testing.T) {
	app, srv, tokens := newTestWSServer(t)

	token, err := tokens.NewJWT(2, models.RoleAdvertiser, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	conn := dialWS(t, srv, token)

	sendEvent(t, conn, "joinChat", 5)
	waitForRoom(t, app.hub, 5, 1)

	app.hub.BroadcastMessage(5, models.Message{ID: 42, ResponseID: 5, SenderID: 1, Content: "привет"})

	event, data := readEvent(t, conn)
	if event != "message" {
		t.Fatalf("want message event, got %q", event)
	}
	var msg models.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.ID != 42 || msg.Content != "привет" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestTypingRelayedToOthersOnly(t *testing.T) {
	app, srv, tokens := newTestWSServer(t)

	bloggerToken, err := tokens.NewJWT(1, models.RoleBlogger, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	advertiserToken, err := tokens.NewJWT(2, models.RoleAdvertiser, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	blogger := dialWS(t, srv, bloggerToken)
	advertiser := dialWS(t, srv, advertiserToken)

	sendEvent(t, blogger, "joinChat", 5)
	sendEvent(t, advertiser, "joinChat", 5)
	waitForRoom(t, app.hub, 5, 2)

	sendEvent(t, blogger, "startTyping", 5)

	event, data := readEvent(t, advertiser)
	if event != "typing" {
		t.Fatalf("want typing event, got %q", event)
	}
	var signal struct {
		ResponseID int `json:"response_id"`
		UserID     int `json:"user_id"`
	}
	if err := json.Unmarshal(data, &signal); err != nil {
		t.Fatal(err)
	}
	if signal.UserID != 1 || signal.ResponseID != 5 {
		t.Fatalf("unexpected typing payload %+v", signal)
	}
}
