package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/xavierca1/leadrunner/internal/entity"
	"github.com/xavierca1/leadrunner/internal/usecase"
)

type LeadHandler struct {
	SearchUseCase *usecase.SearchLeadsUseCase
	UpdateUseCase *usecase.UpdateLeadUseCase
	LeadRepo      entity.LeadRepositoryInterface
}

func NewLeadHandler(search *usecase.SearchLeadsUseCase, update *usecase.UpdateLeadUseCase, repo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{
		SearchUseCase: search,
		UpdateUseCase: update,
		LeadRepo:      repo,
	}
}

// Search busca leads na base externa e persiste os novos.
// POST /api/leads/search
func (h *LeadHandler) Search(w http.ResponseWriter, r *http.Request) {
	var input usecase.SearchLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		return
	}

	leads, err := h.SearchUseCase.Execute(r.Context(), input)
	if err != nil {
		log.Printf("[LEAD] erro na busca: %v", err)
		writeUseCaseError(w, err)
		return
	}

	writeLeadList(w, leads)
}

// List lista leads persistidos com filtros opcionais.
// GET /api/leads?country=US&status=Replied&lead_ids=a,b,c
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := entity.LeadFilter{
		Country: entity.Country(r.URL.Query().Get("country")),
		Status:  entity.Status(r.URL.Query().Get("status")),
	}
	if raw := r.URL.Query().Get("lead_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				filter.IDs = append(filter.IDs, id)
			}
		}
	}

	leads, err := h.LeadRepo.List(r.Context(), filter)
	if err != nil {
		log.Printf("[LEAD] erro ao listar: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "erro ao listar leads")
		return
	}

	writeLeadList(w, leads)
}

// Update aplica um override manual de status.
// POST /api/lead/update
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		return
	}

	lead, err := h.UpdateUseCase.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}
