package repositories

import (
	"context"
	"database/sql"
	"errors"

	"blogupBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, role, telegram_chat_id, created_at FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Name, &user.Role, &user.TelegramChatID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetTokensByUserID returns the user's registered push tokens.
func (r *UserRepository) GetTokensByUserID(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT token FROM notify_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}
