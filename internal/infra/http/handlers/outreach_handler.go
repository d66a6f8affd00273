package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/xavierca1/leadrunner/internal/infra/http/middleware"
	"github.com/xavierca1/leadrunner/internal/usecase"
)

type OutreachHandler struct {
	StartUseCase *usecase.StartOutreachUseCase
}

func NewOutreachHandler(start *usecase.StartOutreachUseCase) *OutreachHandler {
	return &OutreachHandler{StartUseCase: start}
}

type startOutreachRequest struct {
	LeadIDs []string `json:"lead_ids"`
}

// Start roda um tick da cadência nos leads pedidos (ou em todos os
// ativos, se a lista vier vazia).
// POST /api/outreach/start
func (h *OutreachHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startOutreachRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
			return
		}
	}

	var (
		result *usecase.OutreachResult
		err    error
	)
	if len(req.LeadIDs) == 0 {
		result, err = h.StartUseCase.Sweep(r.Context())
	} else {
		result, err = h.StartUseCase.Execute(r.Context(), req.LeadIDs)
	}
	if err != nil {
		log.Printf("[OUTREACH] erro no tick: %v", err)
		writeUseCaseError(w, err)
		return
	}

	RecordOutreachMetrics(result)
	writeJSON(w, http.StatusOK, result)
}

// RecordOutreachMetrics conta emails enviados e fechamentos por
// No Response a partir do resultado de um tick.
func RecordOutreachMetrics(result *usecase.OutreachResult) {
	for _, outcome := range result.Leads {
		if outcome.Error != "" {
			continue
		}
		switch outcome.Decision {
		case "SendFollowUp":
			middleware.RecordOutreachEmail(outcome.Template, string(outcome.Country))
		case "MarkNoResponse":
			middleware.RecordNoResponseClose()
		}
	}
}
