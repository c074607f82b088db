package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TelegramSender delivers alerts through the Telegram bot API. One HTTP call
// per event, no retries.
type TelegramSender struct {
	BotToken string
	Client   *http.Client
}

func NewTelegramSender(botToken string) *TelegramSender {
	return &TelegramSender{
		BotToken: botToken,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type inlineButton struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type sendMessageRequest struct {
	ChatID      int64  `json:"chat_id"`
	Text        string `json:"text"`
	ParseMode   string `json:"parse_mode"`
	ReplyMarkup *struct {
		InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
	} `json:"reply_markup,omitempty"`
}

// Send posts an HTML-formatted message to the chat, with an optional inline
// deep-link button.
func (s *TelegramSender) Send(ctx context.Context, chatID int64, text, link, linkLabel string) error {
	req := sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}
	if link != "" {
		req.ReplyMarkup = &struct {
			InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
		}{
			InlineKeyboard: [][]inlineButton{{{Text: linkLabel, URL: link}}},
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.BotToken)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram sendMessage status %d: %s", resp.StatusCode, data)
	}
	return nil
}
