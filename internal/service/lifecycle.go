package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentalincome-backend/internal/domain"
	"rentalincome-backend/internal/logger"
)

// Channel cancellation policies. Booking.com allows cancellation up to the
// day before check-in; Airbnb's window closes five days out. These are policy
// constants of the platforms, not configuration.
const (
	bookingWindowDays = 1
	airbnbWindowDays  = 5
)

func cancellationWindowDays(ch domain.Channel) int {
	switch ch {
	case domain.ChannelBooking:
		return bookingWindowDays
	case domain.ChannelAirbnb:
		return airbnbWindowDays
	default:
		return 0
	}
}

// buildIncome assembles the record for a confirmation. The non-refundable
// date is computed once here and never recomputed afterwards.
func (s *ingestService) buildIncome(fields *domain.ExtractedFields, apt *domain.Apartment, messageID string) *domain.Income {
	now := time.Now().UTC()

	inc := &domain.Income{
		ID:                 uuid.NewString(),
		ApartmentID:        apt.ID,
		Date:               now,
		AmountGrossCents:   *fields.AmountCents,
		Currency:           fields.Currency,
		Source:             fields.Channel,
		GuestName:          fields.GuestName,
		GuestEmail:         fields.GuestEmail,
		BookingReference:   fields.BookingReference,
		CheckInDate:        fields.CheckInDate,
		CheckOutDate:       fields.CheckOutDate,
		GuestsCount:        fields.GuestsCount,
		EmailMessageID:     messageID,
		ProcessedFromEmail: true,
	}
	if inc.Currency == "" {
		inc.Currency = "EUR"
	}
	if inc.GuestsCount < 1 {
		inc.GuestsCount = 1
	}

	switch {
	case fields.Channel == domain.ChannelWeb:
		// The first-party payload carries an explicit status; trust it.
		inc.Status = domain.IncomeStatusConfirmed
		if st := domain.IncomeStatus(fields.Status); st == domain.IncomeStatusPending || st == domain.IncomeStatusCancelled {
			inc.Status = st
		}
	case fields.CheckInDate != nil:
		nonRefundable := fields.CheckInDate.AddDate(0, 0, -cancellationWindowDays(fields.Channel))
		inc.NonRefundableAt = &nonRefundable
		if nonRefundable.After(now) {
			inc.Status = domain.IncomeStatusPending
		} else {
			inc.Status = domain.IncomeStatusConfirmed
		}
	default:
		// No check-in date means no cancellation window to track.
		inc.Status = domain.IncomeStatusConfirmed
	}

	return inc
}

// processCancellation matches a cancellation notification to an existing
// record by (booking_reference, apartment, channel), never by message id,
// since the cancellation arrives under its own message id.
func (s *ingestService) processCancellation(ctx context.Context, fields *domain.ExtractedFields) *domain.Outcome {
	if fields.BookingReference == "" {
		return &domain.Outcome{
			Success: false,
			Message: "cancellation carries no booking reference",
			Fields:  fields,
		}
	}

	apt, err := s.apartments.Resolve(ctx, fields.PropertyName, fields.ApartmentCode)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Outcome{
			Success: false,
			Message: fmt.Sprintf("no apartment matches %q", fields.PropertyName),
			Fields:  fields,
		}
	}
	if err != nil {
		return storageFailure("resolving apartment for cancellation", err)
	}

	inc, err := s.incomes.FindByReference(ctx, fields.BookingReference, apt.ID, fields.Channel)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Outcome{
			Success:       false,
			Message:       fmt.Sprintf("no income matches reference %s, nothing to cancel", fields.BookingReference),
			ApartmentCode: apt.Code,
			Fields:        fields,
		}
	}
	if err != nil {
		return storageFailure("matching cancellation", err)
	}

	if inc.Status == domain.IncomeStatusCancelled {
		// Terminal state; a repeated cancellation is a no-op.
		return &domain.Outcome{
			Success:       true,
			Message:       fmt.Sprintf("booking %s already cancelled", fields.BookingReference),
			IncomeID:      inc.ID,
			Status:        inc.Status,
			ApartmentCode: apt.Code,
		}
	}

	if err := s.incomes.MarkCancelled(ctx, inc.ID); err != nil {
		return storageFailure("cancelling income", err)
	}

	logger.Info("Cancelled income from notification",
		"income_id", inc.ID,
		"apartment_code", apt.Code,
		"booking_reference", fields.BookingReference,
		"source", fields.Channel)

	return &domain.Outcome{
		Success:       true,
		Message:       fmt.Sprintf("booking %s cancelled", fields.BookingReference),
		IncomeID:      inc.ID,
		Status:        domain.IncomeStatusCancelled,
		ApartmentCode: apt.Code,
	}
}
