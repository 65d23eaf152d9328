package domain

import "time"

type IncomeStatus string

const (
	IncomeStatusPending   IncomeStatus = "PENDING"
	IncomeStatusConfirmed IncomeStatus = "CONFIRMED"
	IncomeStatusCancelled IncomeStatus = "CANCELLED"
)

// Channel is the originating booking platform of a notification.
type Channel string

const (
	ChannelBooking Channel = "BOOKING"
	ChannelAirbnb  Channel = "AIRBNB"
	ChannelWeb     Channel = "WEB"
	ChannelUnknown Channel = "UNKNOWN"
)

// Income is one booking's expected or realized revenue. non_refundable_at is
// fixed at creation; only status changes afterwards, and CANCELLED is terminal.
type Income struct {
	ID                 string       `json:"id"`
	ApartmentID        string       `json:"apartment_id"`
	ReservationID      *string      `json:"reservation_id,omitempty"`
	Date               time.Time    `json:"date"`
	AmountGrossCents   int64        `json:"amount_gross_cents"`
	Currency           string       `json:"currency"`
	Status             IncomeStatus `json:"status"`
	Source             Channel      `json:"source"`
	GuestName          string       `json:"guest_name,omitempty"`
	GuestEmail         string       `json:"guest_email,omitempty"`
	BookingReference   string       `json:"booking_reference,omitempty"`
	CheckInDate        *time.Time   `json:"check_in_date,omitempty"`
	CheckOutDate       *time.Time   `json:"check_out_date,omitempty"`
	GuestsCount        int32        `json:"guests_count"`
	NonRefundableAt    *time.Time   `json:"non_refundable_at,omitempty"`
	EmailMessageID     string       `json:"email_message_id,omitempty"`
	ProcessedFromEmail bool         `json:"processed_from_email"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// IncomeFilter narrows income listings for the read API.
type IncomeFilter struct {
	ApartmentID string
	Status      IncomeStatus
	From        *time.Time
	To          *time.Time
	Page        int32
	PageSize    int32
}

type SourceActivity struct {
	Count       int32 `json:"count"`
	AmountCents int64 `json:"amount_cents"`
}

// ActivitySummary aggregates one day of ingested records. Cancelled records
// are counted but excluded from amount totals.
type ActivitySummary struct {
	Date             time.Time                  `json:"date"`
	Total            int32                      `json:"total"`
	TotalAmountCents int64                      `json:"total_amount_cents"`
	ByStatus         map[IncomeStatus]int32     `json:"by_status"`
	BySource         map[Channel]SourceActivity `json:"by_source"`
}
