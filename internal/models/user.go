package models

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	RoleBlogger    = "blogger"
	RoleAdvertiser = "advertiser"
	RoleAdmin      = "admin"
)

type User struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	TelegramChatID *int64    `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}
