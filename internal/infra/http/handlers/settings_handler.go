package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/leadrunner/internal/config"
)

type SettingsHandler struct {
	Store *config.SettingsStore
}

func NewSettingsHandler(store *config.SettingsStore) *SettingsHandler {
	return &SettingsHandler{Store: store}
}

// Get devolve as settings atuais da operação.
// GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.Settings())
}

// Update valida e persiste novas settings. O engine passa a usar os
// novos valores no próximo tick.
// POST /api/settings
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var s config.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		return
	}

	if err := h.Store.Update(s); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.Store.Settings())
}
