package service

import (
	"context"

	"rentalincome-backend/internal/domain"
)

type IngestService interface {
	// ProcessNotification runs the full ingestion pipeline for one normalized
	// notification. It never returns an error; every path yields an Outcome.
	ProcessNotification(ctx context.Context, n *domain.BookingNotification) *domain.Outcome
}

type ApartmentResolver interface {
	// Resolve finds the rental unit targeted by a notification, by exact unit
	// code first and then by substring match against display names.
	Resolve(ctx context.Context, propertyName, code string) (*domain.Apartment, error)
}

type IncomeService interface {
	ListIncomes(ctx context.Context, filter domain.IncomeFilter) ([]domain.Income, int32, error)
	GetIncome(ctx context.Context, id string) (*domain.Income, error)
}

type EmailService interface {
	SendDailySummary(ctx context.Context, to string, summary *domain.ActivitySummary) error
}
