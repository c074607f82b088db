package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blogupBack/internal/models"
)

type stubDirectory struct {
	users  map[int]models.User
	tokens map[int][]string
}

func (s *stubDirectory) GetUserByID(_ context.Context, id int) (models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return u, nil
}

func (s *stubDirectory) GetTokensByUserID(_ context.Context, id int) ([]string, error) {
	return s.tokens[id], nil
}

type stubBot struct {
	sent []string
	err  error
}

func (s *stubBot) Send(_ context.Context, _ int64, text, _, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, text)
	return nil
}

type stubPush struct {
	tokens []string
	err    error
}

func (s *stubPush) Send(_ context.Context, token, _, _, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.tokens = append(s.tokens, token)
	return nil
}

func chatID(v int64) *int64 { return &v }

func testDirectory() *stubDirectory {
	return &stubDirectory{
		users: map[int]models.User{
			1: {ID: 1, Name: "Айдана", TelegramChatID: chatID(100)},
			2: {ID: 2, Name: "Без телеграма"},
		},
		tokens: map[int][]string{
			1: {"token-a", "token-b"},
		},
	}
}

func TestDeliverBothChannels(t *testing.T) {
	bot := &stubBot{}
	push := &stubPush{}
	d := NewDispatcher(testDirectory(), "https://app.example", nil, nil)
	d.Bot = bot
	d.Push = push

	d.deliver(Event{Type: EventResponseCreated, RecipientID: 1, ActorName: "Блогер", ListingTitle: "Обзор", Amount: 1000, ResponseID: 7})

	if len(bot.sent) != 1 {
		t.Fatalf("want 1 telegram message, got %d", len(bot.sent))
	}
	if !strings.Contains(bot.sent[0], "Новый отклик") {
		t.Fatalf("unexpected text: %s", bot.sent[0])
	}
	if len(push.tokens) != 2 {
		t.Fatalf("want push to 2 tokens, got %v", push.tokens)
	}
}

func TestDeliverSkipsTelegramWithoutChatID(t *testing.T) {
	bot := &stubBot{}
	d := NewDispatcher(testDirectory(), "https://app.example", nil, nil)
	d.Bot = bot

	d.deliver(Event{Type: EventChatMessage, RecipientID: 2, ActorName: "Кто-то", Preview: "привет"})

	if len(bot.sent) != 0 {
		t.Fatalf("user without telegram must be skipped, got %v", bot.sent)
	}
}

func TestDeliverSwallowsChannelErrors(t *testing.T) {
	bot := &stubBot{err: errors.New("telegram down")}
	push := &stubPush{err: errors.New("fcm down")}
	d := NewDispatcher(testDirectory(), "https://app.example", nil, nil)
	d.Bot = bot
	d.Push = push

	// ошибки каналов не должны паниковать и не должны всплывать
	d.deliver(Event{Type: EventOfferCreated, RecipientID: 1, ActorName: "Рекл", Amount: 500, OfferID: 3})
}

func TestDeliverUnknownRecipient(t *testing.T) {
	bot := &stubBot{}
	d := NewDispatcher(testDirectory(), "https://app.example", nil, nil)
	d.Bot = bot

	d.deliver(Event{Type: EventResponseAccepted, RecipientID: 999})

	if len(bot.sent) != 0 {
		t.Fatalf("unknown recipient must deliver nothing, got %v", bot.sent)
	}
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	d := NewDispatcher(testDirectory(), "", nil, nil)

	// очередь буферизована: переполнение не блокирует вызывающего
	for i := 0; i < 1000; i++ {
		d.Enqueue(Event{Type: EventChatMessage, RecipientID: 1})
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	msg := render(Event{
		Type:         EventResponseCreated,
		ActorName:    "<script>x</script>",
		ListingTitle: "A & B",
		ResponseID:   5,
	}, "https://app.example")

	if strings.Contains(msg.Text, "<script>") {
		t.Fatalf("actor name not escaped: %s", msg.Text)
	}
	if !strings.Contains(msg.Text, "&amp;") {
		t.Fatalf("title not escaped: %s", msg.Text)
	}
	if msg.Link != "https://app.example/listings/responses/5" {
		t.Fatalf("bad link: %s", msg.Link)
	}
}

func TestRenderRejectionIncludesReason(t *testing.T) {
	msg := render(Event{
		Type:      EventResponseRejected,
		ActorName: "Рекл",
		Reason:    "не та аудитория",
	}, "")

	if !strings.Contains(msg.Text, "не та аудитория") {
		t.Fatalf("reason missing: %s", msg.Text)
	}

	// без причины строка "Причина" не выводится
	msg = render(Event{Type: EventOfferRejected, ActorName: "Блогер"}, "")
	if strings.Contains(msg.Text, "Причина") {
		t.Fatalf("unexpected reason line: %s", msg.Text)
	}
}
