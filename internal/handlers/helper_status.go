package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogupBack/internal/models"
)

// statusForError переводит доменные ошибки в HTTP-статусы.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrListingNotFound),
		errors.Is(err, models.ErrResponseNotFound),
		errors.Is(err, models.ErrOfferNotFound),
		errors.Is(err, models.ErrMessageNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrNoRecord):
		return http.StatusNotFound
	case errors.Is(err, models.ErrForbidden),
		errors.Is(err, models.ErrRoleMismatch):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotPending),
		errors.Is(err, models.ErrListingNotActive),
		errors.Is(err, models.ErrDuplicatePendingOffer):
		return http.StatusConflict
	case errors.Is(err, models.ErrReasonRequired),
		errors.Is(err, models.ErrEmptyContent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// userIDFromContext достаёт идентификатор, положенный JWT-мидлварой.
func userIDFromContext(r *http.Request) (int, bool) {
	id, ok := r.Context().Value("user_id").(int)
	return id, ok
}

func roleFromContext(r *http.Request) string {
	role, _ := r.Context().Value("role").(string)
	return role
}
