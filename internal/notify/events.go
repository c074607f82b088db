package notify

import (
	"fmt"
	"html"
)

const (
	EventResponseCreated  = "response_created"
	EventResponseAccepted = "response_accepted"
	EventResponseRejected = "response_rejected"
	EventOfferCreated     = "offer_created"
	EventOfferAccepted    = "offer_accepted"
	EventOfferRejected    = "offer_rejected"
	EventChatMessage      = "chat_message"
)

// Event is one business fact queued for best-effort delivery.
type Event struct {
	Type         string
	RecipientID  int
	ActorName    string
	ListingTitle string
	ResponseID   int
	OfferID      int
	Amount       float64
	Reason       string
	Preview      string
}

// rendered is the human-readable form of an event: a short title and plain
// body for push, an HTML text for the bot channel and a deep link back into
// the app.
type rendered struct {
	Title     string
	Body      string
	Text      string
	Link      string
	LinkLabel string
}

func render(ev Event, baseURL string) rendered {
	actor := html.EscapeString(ev.ActorName)
	listing := html.EscapeString(ev.ListingTitle)

	switch ev.Type {
	case EventResponseCreated:
		return rendered{
			Title:     "Новый отклик",
			Body:      fmt.Sprintf("Блогер %s откликнулся на «%s»", ev.ActorName, ev.ListingTitle),
			Text:      fmt.Sprintf("<b>Новый отклик</b>\nБлогер %s откликнулся на «%s» и предлагает %.0f ₸.", actor, listing, ev.Amount),
			Link:      fmt.Sprintf("%s/listings/responses/%d", baseURL, ev.ResponseID),
			LinkLabel: "Посмотреть отклик",
		}
	case EventResponseAccepted:
		return rendered{
			Title:     "Отклик принят",
			Body:      fmt.Sprintf("Ваш отклик на «%s» принят, чат открыт", ev.ListingTitle),
			Text:      fmt.Sprintf("<b>Отклик принят</b>\nРекламодатель %s принял ваш отклик на «%s». Чат открыт.", actor, listing),
			Link:      fmt.Sprintf("%s/chat/%d", baseURL, ev.ResponseID),
			LinkLabel: "Открыть чат",
		}
	case EventResponseRejected:
		text := fmt.Sprintf("<b>Отклик отклонён</b>\nРекламодатель %s отклонил ваш отклик на «%s».", actor, listing)
		if ev.Reason != "" {
			text += fmt.Sprintf("\nПричина: %s", html.EscapeString(ev.Reason))
		}
		return rendered{
			Title: "Отклик отклонён",
			Body:  fmt.Sprintf("Ваш отклик на «%s» отклонён", ev.ListingTitle),
			Text:  text,
		}
	case EventOfferCreated:
		return rendered{
			Title:     "Новое предложение",
			Body:      fmt.Sprintf("Рекламодатель %s предлагает сотрудничество", ev.ActorName),
			Text:      fmt.Sprintf("<b>Новое предложение</b>\nРекламодатель %s предлагает сотрудничество за %.0f ₸.", actor, ev.Amount),
			Link:      fmt.Sprintf("%s/offers/%d", baseURL, ev.OfferID),
			LinkLabel: "Открыть предложение",
		}
	case EventOfferAccepted:
		return rendered{
			Title:     "Предложение принято",
			Body:      fmt.Sprintf("Блогер %s принял ваше предложение", ev.ActorName),
			Text:      fmt.Sprintf("<b>Предложение принято</b>\nБлогер %s принял ваше предложение. Чат открыт.", actor),
			Link:      fmt.Sprintf("%s/chat/%d", baseURL, ev.ResponseID),
			LinkLabel: "Открыть чат",
		}
	case EventOfferRejected:
		text := fmt.Sprintf("<b>Предложение отклонено</b>\nБлогер %s отклонил ваше предложение.", actor)
		if ev.Reason != "" {
			text += fmt.Sprintf("\nПричина: %s", html.EscapeString(ev.Reason))
		}
		return rendered{
			Title: "Предложение отклонено",
			Body:  fmt.Sprintf("Блогер %s отклонил ваше предложение", ev.ActorName),
			Text:  text,
		}
	case EventChatMessage:
		return rendered{
			Title:     "Новое сообщение",
			Body:      fmt.Sprintf("%s: %s", ev.ActorName, ev.Preview),
			Text:      fmt.Sprintf("<b>Новое сообщение</b>\n%s: %s", actor, html.EscapeString(ev.Preview)),
			Link:      fmt.Sprintf("%s/chat/%d", baseURL, ev.ResponseID),
			LinkLabel: "Ответить",
		}
	default:
		return rendered{Title: "Уведомление", Body: "Уведомление", Text: "Уведомление"}
	}
}
