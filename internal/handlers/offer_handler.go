package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	service "blogupBack/internal/services"
)

type OfferHandler struct {
	OfferService *service.OfferService
}

func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		BloggerID      int        `json:"blogger_id"`
		Message        string     `json:"message"`
		ProposedBudget float64    `json:"proposed_budget"`
		Deadline       *time.Time `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if input.BloggerID <= 0 {
		http.Error(w, "Invalid blogger_id", http.StatusBadRequest)
		return
	}

	offer, err := h.OfferService.CreateOffer(r.Context(), userID, roleFromContext(r), input.BloggerID, input.Message, input.ProposedBudget, input.Deadline)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    offer,
	})
}

func (h *OfferHandler) GetMyOffers(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	offers, err := h.OfferService.ListMy(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  offers,
		"total": len(offers),
	})
}

func (h *OfferHandler) GetOfferByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	offerID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil || offerID <= 0 {
		http.Error(w, "Invalid offer ID", http.StatusBadRequest)
		return
	}

	offer, err := h.OfferService.GetOffer(r.Context(), userID, offerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    offer,
	})
}

// RespondToOffer — блогер принимает или отклоняет предложение.
func (h *OfferHandler) RespondToOffer(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	offerID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil || offerID <= 0 {
		http.Error(w, "Invalid offer ID", http.StatusBadRequest)
		return
	}

	var input struct {
		Accept bool    `json:"accept"`
		Reason *string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	offer, err := h.OfferService.RespondToOffer(r.Context(), userID, offerID, input.Accept, input.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    offer,
	})
}
