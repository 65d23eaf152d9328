package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentalincome-backend/internal/domain"
	"rentalincome-backend/internal/logger"
	"rentalincome-backend/internal/mailparse"
	"rentalincome-backend/internal/repository"
)

type ingestService struct {
	incomes    repository.IncomeRepository
	apartments ApartmentResolver
	classifier *mailparse.Classifier
	timeout    time.Duration
}

func NewIngestService(
	incomes repository.IncomeRepository,
	apartments ApartmentResolver,
	classifier *mailparse.Classifier,
	timeout time.Duration,
) IngestService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ingestService{
		incomes:    incomes,
		apartments: apartments,
		classifier: classifier,
		timeout:    timeout,
	}
}

func (s *ingestService) ProcessNotification(ctx context.Context, n *domain.BookingNotification) *domain.Outcome {
	// One malformed message must not stall a batch.
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	channel := s.classifier.Detect(n.Sender, n.Subject, n.Content)
	if channel == domain.ChannelUnknown {
		logger.Warn("Unrecognized notification source", "sender", n.Sender, "message_id", n.MessageID)
		return &domain.Outcome{
			Success: false,
			Message: fmt.Sprintf("unrecognized sender: %s", n.Sender),
		}
	}

	extractor, _ := mailparse.ForChannel(channel)
	fields := extractor.Extract(n.Content)

	if mailparse.IsCancellation(n.Subject, n.Content) {
		return s.processCancellation(ctx, &fields)
	}

	if fields.AmountCents == nil {
		return &domain.Outcome{
			Success: false,
			Message: fmt.Sprintf("could not extract an amount from %s notification", channel),
			Fields:  &fields,
		}
	}

	apt, err := s.apartments.Resolve(ctx, fields.PropertyName, fields.ApartmentCode)
	if errors.Is(err, domain.ErrNotFound) {
		// Surfaced for manual assignment; the notification is not retried.
		return &domain.Outcome{
			Success: false,
			Message: fmt.Sprintf("no apartment matches %q", firstNonEmpty(fields.ApartmentCode, fields.PropertyName)),
			Fields:  &fields,
		}
	}
	if err != nil {
		return storageFailure("resolving apartment", err)
	}

	if existing, err := s.incomes.GetByMessageID(ctx, n.MessageID); err == nil {
		return alreadyProcessed(existing, apt.Code)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return storageFailure("checking message id", err)
	}

	inc := s.buildIncome(&fields, apt, n.MessageID)
	if err := s.incomes.Create(ctx, inc); err != nil {
		if errors.Is(err, domain.ErrDuplicateMessage) {
			// A concurrent worker got the same redelivery first; the unique
			// index on email_message_id is the arbiter.
			existing, lookupErr := s.incomes.GetByMessageID(ctx, n.MessageID)
			if lookupErr != nil {
				return storageFailure("loading duplicate income", lookupErr)
			}
			return alreadyProcessed(existing, apt.Code)
		}
		return storageFailure("creating income", err)
	}

	logger.Info("Created income from notification",
		"income_id", inc.ID,
		"apartment_code", apt.Code,
		"source", inc.Source,
		"status", inc.Status,
		"amount_cents", inc.AmountGrossCents)

	outcome := &domain.Outcome{
		Success:       true,
		Message:       fmt.Sprintf("income created from %s: %.2f %s", inc.Source, float64(inc.AmountGrossCents)/100, inc.Currency),
		IncomeID:      inc.ID,
		Status:        inc.Status,
		ApartmentCode: apt.Code,
	}
	if inc.NonRefundableAt != nil {
		outcome.NonRefundableAt = inc.NonRefundableAt.Format("2006-01-02")
	}
	return outcome
}

func alreadyProcessed(inc *domain.Income, aptCode string) *domain.Outcome {
	return &domain.Outcome{
		Success:       true,
		Message:       fmt.Sprintf("notification already processed: %s", inc.EmailMessageID),
		IncomeID:      inc.ID,
		Status:        inc.Status,
		ApartmentCode: aptCode,
	}
}

func storageFailure(op string, err error) *domain.Outcome {
	logger.Error("Storage failure during ingestion", "op", op, "error", err)
	return &domain.Outcome{
		Success: false,
		Message: fmt.Sprintf("storage failure while %s: %v", op, err),
		Fatal:   true,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
