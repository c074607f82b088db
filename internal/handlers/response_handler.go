package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	service "blogupBack/internal/services"
)

type ResponseHandler struct {
	ResponseService *service.ResponseService
}

func (h *ResponseHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		ListingID     int     `json:"listing_id"`
		Message       string  `json:"message"`
		ProposedPrice float64 `json:"proposed_price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.ListingID <= 0 {
		http.Error(w, "Invalid listing_id", http.StatusBadRequest)
		return
	}

	resp, err := h.ResponseService.CreateResponse(r.Context(), userID, roleFromContext(r), input.ListingID, input.Message, input.ProposedPrice)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    resp,
	})
}

func (h *ResponseHandler) GetResponsesForListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	listingID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil || listingID <= 0 {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return
	}

	responses, err := h.ResponseService.ListForListing(r.Context(), userID, listingID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  responses,
		"total": len(responses),
	})
}

func (h *ResponseHandler) GetMySentResponses(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	responses, err := h.ResponseService.ListSent(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  responses,
		"total": len(responses),
	})
}

func (h *ResponseHandler) GetMyReceivedResponses(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	responses, err := h.ResponseService.ListReceived(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  responses,
		"total": len(responses),
	})
}

// ReviewResponse принимает или отклоняет отклик владельцем объявления.
func (h *ResponseHandler) ReviewResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	responseID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil || responseID <= 0 {
		http.Error(w, "Invalid response ID", http.StatusBadRequest)
		return
	}

	var input struct {
		Accept bool   `json:"accept"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.ResponseService.ReviewResponse(r.Context(), userID, responseID, input.Accept, input.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    resp,
	})
}

func (h *ResponseHandler) WithdrawResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	responseID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil || responseID <= 0 {
		http.Error(w, "Invalid response ID", http.StatusBadRequest)
		return
	}

	if err := h.ResponseService.WithdrawResponse(r.Context(), userID, responseID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
