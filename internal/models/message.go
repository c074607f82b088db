package models

import (
	"time"
)

// Структура сообщения. Поток сообщений привязан к отклику (response_id).
type Message struct {
	ID          int          `json:"id"`
	ResponseID  int          `json:"response_id"`
	SenderID    int          `json:"sender_id"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
	IsRead      bool         `json:"is_read"`
	ReadAt      *time.Time   `json:"read_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Attachment is an already-uploaded file referenced by URL. Uploads happen
// outside this service.
type Attachment struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}
