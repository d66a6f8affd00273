package handlers

import (
	"log"
	"net/http"

	"github.com/xavierca1/leadrunner/internal/usecase"
)

type AnalyticsHandler struct {
	UseCase *usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{UseCase: uc}
}

// Get monta o snapshot do funil pro dashboard.
// GET /api/analytics/get
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.UseCase.Execute(r.Context())
	if err != nil {
		log.Printf("[ANALYTICS] erro ao agregar: %v", err)
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}
