package notify

import (
	"context"
	"log"
	"time"

	"blogupBack/internal/models"
)

const deliverTimeout = 10 * time.Second

// UserDirectory resolves a recipient into deliverable addresses.
type UserDirectory interface {
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetTokensByUserID(ctx context.Context, id int) ([]string, error)
}

// BotSender is the outbound bot-style channel (Telegram in production).
type BotSender interface {
	Send(ctx context.Context, chatID int64, text, link, linkLabel string) error
}

// Pusher is the mobile push channel (FCM in production).
type Pusher interface {
	Send(ctx context.Context, token, title, body, link string) error
}

// Dispatcher consumes the notification outbox and delivers each event once
// per channel. Delivery is fire-and-forget: failures are logged and dropped,
// they never reach the code that enqueued the event.
type Dispatcher struct {
	Users   UserDirectory
	Bot     BotSender
	Push    Pusher
	BaseURL string

	infoLog  *log.Logger
	errorLog *log.Logger
	queue    chan Event
}

func NewDispatcher(users UserDirectory, baseURL string, infoLog, errorLog *log.Logger) *Dispatcher {
	return &Dispatcher{
		Users:    users,
		BaseURL:  baseURL,
		infoLog:  infoLog,
		errorLog: errorLog,
		queue:    make(chan Event, 256),
	}
}

// Enqueue appends an event to the outbox. It never blocks the caller: when
// the queue is full the event is dropped and logged.
func (d *Dispatcher) Enqueue(ev Event) {
	select {
	case d.queue <- ev:
	default:
		if d.errorLog != nil {
			d.errorLog.Printf("notify: queue full, dropping %s for user=%d", ev.Type, ev.RecipientID)
		}
	}
}

// Run consumes the outbox until the context is canceled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.queue:
			d.deliver(ev)
		}
	}
}

func (d *Dispatcher) deliver(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	msg := render(ev, d.BaseURL)

	user, err := d.Users.GetUserByID(ctx, ev.RecipientID)
	if err != nil {
		if d.errorLog != nil {
			d.errorLog.Printf("notify: resolve recipient %d: %v", ev.RecipientID, err)
		}
		return
	}

	if d.Bot != nil && user.TelegramChatID != nil {
		if err := d.Bot.Send(ctx, *user.TelegramChatID, msg.Text, msg.Link, msg.LinkLabel); err != nil {
			if d.errorLog != nil {
				d.errorLog.Printf("notify: telegram %s to user=%d: %v", ev.Type, ev.RecipientID, err)
			}
		}
	}

	if d.Push != nil {
		tokens, err := d.Users.GetTokensByUserID(ctx, ev.RecipientID)
		if err != nil {
			if d.errorLog != nil {
				d.errorLog.Printf("notify: fetch tokens for user=%d: %v", ev.RecipientID, err)
			}
			return
		}
		for _, token := range tokens {
			if err := d.Push.Send(ctx, token, msg.Title, msg.Body, msg.Link); err != nil {
				if d.errorLog != nil {
					d.errorLog.Printf("notify: push %s to user=%d: %v", ev.Type, ev.RecipientID, err)
				}
			}
		}
	}

	if d.infoLog != nil {
		d.infoLog.Printf("notify: delivered %s to user=%d", ev.Type, ev.RecipientID)
	}
}
