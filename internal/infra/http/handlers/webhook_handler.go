package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/xavierca1/leadrunner/internal/entity"
	"github.com/xavierca1/leadrunner/internal/infra/http/middleware"
	"github.com/xavierca1/leadrunner/internal/infra/queue"
)

// WebhookHandler recebe notificações externas (resposta de email,
// pagamento) e só publica na fila. Quem aplica na máquina de estados
// é o worker; aqui a resposta tem que ser rápida pro provedor não
// reentregar.
type WebhookHandler struct {
	Producer    queue.EventProducerInterface
	RateLimiter *RateLimiter

	Now func() time.Time
}

func NewWebhookHandler(producer queue.EventProducerInterface, limiter *RateLimiter) *WebhookHandler {
	return &WebhookHandler{
		Producer:    producer,
		RateLimiter: limiter,
		Now:         time.Now,
	}
}

type webhookRequest struct {
	LeadID     string `json:"lead_id"`
	Event      string `json:"event"`
	Provider   string `json:"provider,omitempty"`
	OccurredAt string `json:"occurred_at,omitempty"`
}

var emailEvents = map[string]entity.InboundEvent{
	"replied":        entity.EventReplied,
	"call_requested": entity.EventCallRequested,
	"call_scheduled": entity.EventCallScheduled,
	"call_completed": entity.EventCallCompleted,
}

var paymentEvents = map[string]entity.InboundEvent{
	"link_clicked":     entity.EventPaymentLinkClicked,
	"payment_received": entity.EventPaymentReceived,
}

// Email trata o webhook do provedor de email.
// POST /api/webhook/email
func (h *WebhookHandler) Email(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, emailEvents, "WEBHOOK_EMAIL")
}

// Payment trata o webhook do gateway de pagamento.
// POST /api/webhook/payment
func (h *WebhookHandler) Payment(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, paymentEvents, "WEBHOOK_PAYMENT")
}

func (h *WebhookHandler) handle(w http.ResponseWriter, r *http.Request, events map[string]entity.InboundEvent, origin string) {
	ip := getClientIP(r)
	if !h.RateLimiter.Allow(ip) {
		writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "muitas requisições, tente novamente em instantes")
		return
	}

	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		return
	}
	if req.LeadID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "lead_id é obrigatório")
		return
	}

	event, ok := events[req.Event]
	if !ok {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "evento desconhecido: "+req.Event)
		return
	}

	occurredAt := h.Now()
	if req.OccurredAt != "" {
		if parsed, err := time.Parse(time.RFC3339, req.OccurredAt); err == nil {
			occurredAt = parsed
		}
	}

	payload := queue.EventPayload{
		LeadID:     req.LeadID,
		Event:      event,
		OccurredAt: occurredAt,
		Origin:     origin,
	}

	if err := h.Producer.PublishEvent(r.Context(), payload); err != nil {
		log.Printf("[WEBHOOK] erro ao publicar evento %s do lead %s: %v", event, req.LeadID, err)
		writeError(w, http.StatusInternalServerError, "QUEUE_ERROR", "falha ao enfileirar o evento")
		return
	}

	middleware.RecordInboundEvent(string(event))
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
