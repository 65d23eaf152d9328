package service

import (
	"context"

	"rentalincome-backend/internal/domain"
	"rentalincome-backend/internal/repository"
)

type incomeService struct {
	incomes repository.IncomeRepository
}

func NewIncomeService(incomes repository.IncomeRepository) IncomeService {
	return &incomeService{incomes: incomes}
}

func (s *incomeService) ListIncomes(ctx context.Context, filter domain.IncomeFilter) ([]domain.Income, int32, error) {
	return s.incomes.List(ctx, filter)
}

func (s *incomeService) GetIncome(ctx context.Context, id string) (*domain.Income, error) {
	return s.incomes.GetByID(ctx, id)
}
