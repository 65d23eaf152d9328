package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentalincome-backend/internal/domain"
)

// MockIncomeRepo
type MockIncomeRepo struct {
	mock.Mock
}

func (m *MockIncomeRepo) Create(ctx context.Context, inc *domain.Income) error {
	args := m.Called(ctx, inc)
	return args.Error(0)
}
func (m *MockIncomeRepo) GetByID(ctx context.Context, id string) (*domain.Income, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}
func (m *MockIncomeRepo) GetByMessageID(ctx context.Context, messageID string) (*domain.Income, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}
func (m *MockIncomeRepo) FindByReference(ctx context.Context, reference, apartmentID string, source domain.Channel) (*domain.Income, error) {
	args := m.Called(ctx, reference, apartmentID, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}
func (m *MockIncomeRepo) MarkCancelled(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockIncomeRepo) List(ctx context.Context, filter domain.IncomeFilter) ([]domain.Income, int32, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, int32(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]domain.Income), int32(args.Int(1)), args.Error(2)
}
func (m *MockIncomeRepo) PromoteDue(ctx context.Context, asOf time.Time) ([]domain.Income, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Income), args.Error(1)
}
func (m *MockIncomeRepo) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockIncomeRepo) SummarizeDay(ctx context.Context, day time.Time) (*domain.ActivitySummary, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivitySummary), args.Error(1)
}

// MockApartmentRepo
type MockApartmentRepo struct {
	mock.Mock
}

func (m *MockApartmentRepo) Create(ctx context.Context, apt *domain.Apartment) error {
	args := m.Called(ctx, apt)
	return args.Error(0)
}
func (m *MockApartmentRepo) GetByID(ctx context.Context, id string) (*domain.Apartment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Apartment), args.Error(1)
}
func (m *MockApartmentRepo) GetByCode(ctx context.Context, code string) (*domain.Apartment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Apartment), args.Error(1)
}
func (m *MockApartmentRepo) FindByNameMatch(ctx context.Context, reference string) (*domain.Apartment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Apartment), args.Error(1)
}
func (m *MockApartmentRepo) List(ctx context.Context, activeOnly bool) ([]domain.Apartment, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Apartment), args.Error(1)
}

// MockResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, propertyName, code string) (*domain.Apartment, error) {
	args := m.Called(ctx, propertyName, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Apartment), args.Error(1)
}

