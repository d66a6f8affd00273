package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/leadrunner/internal/infra/http/middleware"
	"github.com/xavierca1/leadrunner/internal/usecase"
)

type PaymentHandler struct {
	CreateUseCase *usecase.CreatePaymentUseCase
}

func NewPaymentHandler(create *usecase.CreatePaymentUseCase) *PaymentHandler {
	return &PaymentHandler{CreateUseCase: create}
}

// Create gera o link de pagamento pro lead e dispara o email.
// POST /api/payment/create
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreatePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		return
	}

	out, err := h.CreateUseCase.Execute(r.Context(), input)
	if err != nil {
		log.Printf("[PAYMENT] erro ao criar link para %s: %v", input.LeadID, err)
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordPaymentLink(out.Provider)
	writeJSON(w, http.StatusOK, out)
}

// Suggest devolve os três tiers de preço sugeridos pro lead.
// GET /api/payment/suggest/{leadId}
func (h *PaymentHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")
	if leadID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "leadId é obrigatório")
		return
	}

	price, err := h.CreateUseCase.Suggest(r.Context(), leadID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, price)
}
