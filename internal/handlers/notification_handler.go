package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"civicdesk/internal/services"
)

type NotificationHandler struct {
	Tokens services.DeviceTokenStore
}

func (h *NotificationHandler) SaveDeviceToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Tokens.SaveToken(r.Context(), ctxUserID(r), req.Token); err != nil {
		log.Printf("SaveDeviceToken error: %v", err)
		http.Error(w, "Failed to save token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "token saved"})
}
