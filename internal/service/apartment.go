package service

import (
	"context"
	"errors"

	"rentalincome-backend/internal/domain"
	"rentalincome-backend/internal/repository"
)

type apartmentResolver struct {
	aptRepo repository.ApartmentRepository
}

func NewApartmentResolver(aptRepo repository.ApartmentRepository) ApartmentResolver {
	return &apartmentResolver{aptRepo: aptRepo}
}

// Resolve tries the explicit unit code first (exact, case-insensitive), then
// falls back to a substring match of the property reference against unit
// names. First match wins; no ranking beyond the repository's deterministic
// tie-break. Returns domain.ErrNotFound when neither matches.
func (r *apartmentResolver) Resolve(ctx context.Context, propertyName, code string) (*domain.Apartment, error) {
	if code != "" {
		apt, err := r.aptRepo.GetByCode(ctx, code)
		if err == nil {
			return apt, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	if propertyName != "" {
		apt, err := r.aptRepo.FindByNameMatch(ctx, propertyName)
		if err == nil {
			return apt, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	return nil, domain.ErrNotFound
}
