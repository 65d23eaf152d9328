package domain

import "time"

// BookingNotification is a normalized inbound notification. MessageID is the
// idempotency key; transports may redeliver the same id.
type BookingNotification struct {
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	Content   string `json:"content"`
	MessageID string `json:"message_id"`
}

// ExtractedFields is the best-effort output of a channel extractor. Every
// field is optional; the orchestrator decides whether an absence is fatal.
type ExtractedFields struct {
	GuestName        string     `json:"guest_name,omitempty"`
	GuestEmail       string     `json:"guest_email,omitempty"`
	BookingReference string     `json:"booking_reference,omitempty"`
	PropertyName     string     `json:"property_name,omitempty"`
	ApartmentCode    string     `json:"apartment_code,omitempty"`
	CheckInDate      *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate     *time.Time `json:"check_out_date,omitempty"`
	GuestsCount      int32      `json:"guests_count,omitempty"`
	AmountCents      *int64     `json:"amount_cents,omitempty"`
	Currency         string     `json:"currency,omitempty"`
	Status           string     `json:"status,omitempty"`
	Channel          Channel    `json:"channel"`
}

// Outcome is the uniform result contract of notification processing. Every
// path through the orchestrator returns one; nothing escapes as a fault.
type Outcome struct {
	Success         bool             `json:"success"`
	Message         string           `json:"message"`
	IncomeID        string           `json:"income_id,omitempty"`
	Status          IncomeStatus     `json:"status,omitempty"`
	ApartmentCode   string           `json:"apartment_code,omitempty"`
	NonRefundableAt string           `json:"non_refundable_at,omitempty"`
	Fields          *ExtractedFields `json:"extracted_fields,omitempty"`

	// Fatal marks a storage-level failure so the HTTP layer can answer 500
	// instead of 422. Every other failure is a reportable processing result.
	Fatal bool `json:"-"`
}
