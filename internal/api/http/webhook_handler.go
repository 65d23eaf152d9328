package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"rentalincome-backend/internal/domain"
	"rentalincome-backend/internal/logger"
	"rentalincome-backend/internal/service"
)

// WebhookHandler receives reservation emails forwarded by mail relay
// providers and hands them, normalized, to the ingestion pipeline.
type WebhookHandler struct {
	ingest service.IngestService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(ingest service.IngestService) *WebhookHandler {
	return &WebhookHandler{ingest: ingest}
}

// relayPayload is the shape posted by mail relay providers. Providers differ
// on field presence; text is preferred over html, and a missing message id
// gets a synthetic one so ingestion always has an idempotency key.
type relayPayload struct {
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	Text      string `json:"text"`
	HTML      string `json:"html"`
	MessageID string `json:"message_id"`
}

// HandleReservationEmail handles POST /webhooks/email/reservation
func (h *WebhookHandler) HandleReservationEmail(w http.ResponseWriter, r *http.Request) {
	var payload relayPayload

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") || strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(4 << 20); err != nil && err != http.ErrNotMultipart {
			if err := r.ParseForm(); err != nil {
				writeError(w, http.StatusBadRequest, "invalid form payload")
				return
			}
		}
		payload.Sender = r.FormValue("sender")
		payload.Subject = r.FormValue("subject")
		payload.Text = r.FormValue("text")
		payload.HTML = r.FormValue("html")
		payload.MessageID = r.FormValue("message_id")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}
	}

	content := payload.Text
	if content == "" {
		content = payload.HTML
	}
	if content == "" {
		writeError(w, http.StatusBadRequest, "no email content provided")
		return
	}

	messageID := payload.MessageID
	if messageID == "" {
		messageID = "relay-" + uuid.NewString()
		logger.Debug("Relay payload without message id, synthesized one", "message_id", messageID)
	}

	outcome := h.ingest.ProcessNotification(r.Context(), &domain.BookingNotification{
		Sender:    payload.Sender,
		Subject:   payload.Subject,
		Content:   content,
		MessageID: messageID,
	})
	writeOutcome(w, outcome)
}

// HandleManualEmail handles POST /webhooks/email/manual, an operator-facing
// endpoint that accepts the already-normalized notification shape.
func (h *WebhookHandler) HandleManualEmail(w http.ResponseWriter, r *http.Request) {
	var n domain.BookingNotification
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if n.Content == "" {
		writeError(w, http.StatusBadRequest, "email content is required")
		return
	}
	if n.MessageID == "" {
		n.MessageID = "manual-" + uuid.NewString()
	}

	outcome := h.ingest.ProcessNotification(r.Context(), &n)
	writeOutcome(w, outcome)
}

func writeOutcome(w http.ResponseWriter, outcome *domain.Outcome) {
	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusUnprocessableEntity
		if outcome.Fatal {
			status = http.StatusInternalServerError
		}
	}
	writeJSON(w, status, outcome)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
