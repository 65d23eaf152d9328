package repository

import (
	"context"
	"time"

	"rentalincome-backend/internal/domain"
)

type ApartmentRepository interface {
	Create(ctx context.Context, apt *domain.Apartment) error
	GetByID(ctx context.Context, id string) (*domain.Apartment, error)
	// GetByCode matches the unit code case-insensitively against active units.
	GetByCode(ctx context.Context, code string) (*domain.Apartment, error)
	// FindByNameMatch resolves a free-text property reference by substring
	// match on active unit names. Ties break deterministically: shortest
	// matching name first, then code.
	FindByNameMatch(ctx context.Context, reference string) (*domain.Apartment, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Apartment, error)
}

type IncomeRepository interface {
	// Create inserts a record. A unique index on email_message_id is the
	// duplicate arbiter; violations surface as domain.ErrDuplicateMessage.
	Create(ctx context.Context, inc *domain.Income) error
	GetByID(ctx context.Context, id string) (*domain.Income, error)
	GetByMessageID(ctx context.Context, messageID string) (*domain.Income, error)
	// FindByReference locates the record a cancellation targets. Cancellations
	// carry a different message id than the original confirmation, so matching
	// is by (booking_reference, apartment_id, source).
	FindByReference(ctx context.Context, reference, apartmentID string, source domain.Channel) (*domain.Income, error)
	MarkCancelled(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.IncomeFilter) ([]domain.Income, int32, error)

	// Reconciliation sweep operations. Each is a single idempotent statement.
	PromoteDue(ctx context.Context, asOf time.Time) ([]domain.Income, error)
	DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error)
	SummarizeDay(ctx context.Context, day time.Time) (*domain.ActivitySummary, error)
}
