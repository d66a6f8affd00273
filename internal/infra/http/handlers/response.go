package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/leadrunner/internal/entity"
	"github.com/xavierca1/leadrunner/internal/usecase"
)

// Envelope padrão que o dashboard espera: {success, data, error}.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// listEnvelope é o formato das rotas de listagem: data é o array
// de leads e count fica como irmão no nível do envelope.
type listEnvelope struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Data    []*entity.Lead `json:"data"`
}

func writeLeadList(w http.ResponseWriter, leads []*entity.Lead) {
	if leads == nil {
		leads = []*entity.Lead{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(listEnvelope{Success: true, Count: len(leads), Data: leads})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Success: false, Error: &ErrorBody{Code: code, Message: msg}})
}

// writeUseCaseError mapeia a taxonomia do usecase pro status HTTP:
// DomainError vira 4xx, o resto 500.
func writeUseCaseError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		switch de.Code {
		case "LEAD_NOT_FOUND":
			status = http.StatusNotFound
		case "INVALID_TRANSITION":
			status = http.StatusConflict
		}
		writeError(w, status, de.Code, de.Message)
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		writeError(w, http.StatusInternalServerError, te.Code, te.Message)
		return
	}

	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}
