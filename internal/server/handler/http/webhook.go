package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/afterly/afterly/internal/apperrors"
	"github.com/afterly/afterly/internal/service"
	"go.uber.org/zap"
)

// TriggerService defines the death-trigger operation required by the webhook
// handler.
type TriggerService interface {
	Trigger(ctx context.Context, input service.TriggerInput) (*service.TriggerSummary, error)
}

// InsuranceService defines the insurance feed operation required by the
// webhook handler.
type InsuranceService interface {
	Sync(ctx context.Context, payload service.SyncPayload) service.SyncResults
}

// WebhookHandler serves the unauthenticated partner-facing endpoints: the
// death trigger and the insurance sync feed.
type WebhookHandler struct {
	TriggerService   TriggerService
	InsuranceService InsuranceService
	Log              *zap.Logger
}

type webhookResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Results any    `json:"results,omitempty"`
}

func writeWebhook(w http.ResponseWriter, code int, resp webhookResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

// DeathTrigger handles POST /webhooks/death-trigger. The body must identify
// the deceased owner by email or external identity.
func (h *WebhookHandler) DeathTrigger(w http.ResponseWriter, r *http.Request) {
	var input service.TriggerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeWebhook(w, http.StatusBadRequest, webhookResponse{Message: "invalid request body"})
		return
	}

	summary, err := h.TriggerService.Trigger(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			writeWebhook(w, http.StatusBadRequest, webhookResponse{Message: "email or clerkUserId is required"})
		case errors.Is(err, apperrors.ErrProfileNotFound):
			writeWebhook(w, http.StatusNotFound, webhookResponse{Message: "user not found"})
		case errors.Is(err, apperrors.ErrAlreadyProcessed):
			writeWebhook(w, http.StatusBadRequest, webhookResponse{Message: "user is already marked as deceased"})
		default:
			h.Log.Error("death trigger failed", zap.Error(err))
			writeWebhook(w, http.StatusInternalServerError, webhookResponse{Message: "internal error", Error: err.Error()})
		}
		return
	}

	writeWebhook(w, http.StatusOK, webhookResponse{
		OK:      true,
		Message: "death trigger processed",
		Data:    summary,
	})
}

// DeathTriggerInfo handles GET /webhooks/death-trigger with a static
// capability description for partner integration checks.
func (h *WebhookHandler) DeathTriggerInfo(w http.ResponseWriter, r *http.Request) {
	writeWebhook(w, http.StatusOK, webhookResponse{
		OK:      true,
		Message: "death trigger webhook is active",
		Data: map[string]any{
			"method": http.MethodPost,
			"body":   map[string]string{"email": "string?", "clerkUserId": "string?", "deathDate": "RFC 3339 timestamp?"},
		},
	})
}

// InsuranceSync handles POST /webhooks/insurance. It always answers 200 with
// per-list tallies; only an unparseable body yields 500.
func (h *WebhookHandler) InsuranceSync(w http.ResponseWriter, r *http.Request) {
	var payload service.SyncPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeWebhook(w, http.StatusInternalServerError, webhookResponse{Message: "invalid request body", Error: err.Error()})
		return
	}

	results := h.InsuranceService.Sync(r.Context(), payload)
	writeWebhook(w, http.StatusOK, webhookResponse{OK: true, Results: results})
}

// InsuranceSyncInfo handles GET /webhooks/insurance.
func (h *WebhookHandler) InsuranceSyncInfo(w http.ResponseWriter, r *http.Request) {
	writeWebhook(w, http.StatusOK, webhookResponse{
		OK:      true,
		Message: "insurance sync webhook is active",
		Data: map[string]any{
			"method": http.MethodPost,
			"body":   map[string]string{"newUsers": "[]{email, name?, insuranceRef?}", "disabledUsers": "[]{email, clerkUserId?, insuranceRef?}"},
		},
	})
}
