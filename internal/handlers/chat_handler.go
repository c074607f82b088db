package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"blogupBack/internal/models"
	service "blogupBack/internal/services"
)

type ChatHandler struct {
	MessageService *service.MessageService
	ChatService    *service.ChatService
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ResponseID  int                 `json:"response_id"`
		Content     string              `json:"content"`
		Attachments []models.Attachment `json:"attachments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.ResponseID <= 0 {
		http.Error(w, "Invalid response_id", http.StatusBadRequest)
		return
	}

	msg, err := h.MessageService.SendMessage(r.Context(), userID, input.ResponseID, input.Content, input.Attachments)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    msg,
	})
}

// GetMessages возвращает страницу сообщений треда, новые сверху.
func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	responseID, err := strconv.Atoi(r.URL.Query().Get(":responseId"))
	if err != nil || responseID <= 0 {
		http.Error(w, "Invalid response ID", http.StatusBadRequest)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	messages, total, hasMore, err := h.MessageService.ListMessages(r.Context(), userID, responseID, page, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":    messages,
		"total":   total,
		"page":    page,
		"limit":   limit,
		"hasMore": hasMore,
	})
}

func (h *ChatHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	messageID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil || messageID <= 0 {
		http.Error(w, "Invalid message ID", http.StatusBadRequest)
		return
	}

	msg, err := h.MessageService.MarkRead(r.Context(), userID, messageID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    msg,
	})
}

func (h *ChatHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	count, err := h.MessageService.UnreadCount(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"count": count})
}

func (h *ChatHandler) GetChatList(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chats, err := h.ChatService.ChatList(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  chats,
		"total": len(chats),
	})
}
