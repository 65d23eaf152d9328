package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"rentalincome-backend/internal/domain"
	"rentalincome-backend/internal/repository"
)

type apartmentRepository struct {
	db *sql.DB
}

func NewApartmentRepository(db *sql.DB) repository.ApartmentRepository {
	return &apartmentRepository{db: db}
}

const apartmentColumns = `id, code, name, COALESCE(owner_email, ''), active, created_at`

func (r *apartmentRepository) Create(ctx context.Context, apt *domain.Apartment) error {
	query := `INSERT INTO apartments (id, code, name, owner_email, active, created_at)
	          VALUES ($1, upper($2), $3, $4, $5, NOW()) RETURNING created_at`
	return r.db.QueryRowContext(ctx, query, apt.ID, apt.Code, apt.Name, apt.OwnerEmail, apt.Active).Scan(&apt.CreatedAt)
}

func (r *apartmentRepository) GetByID(ctx context.Context, id string) (*domain.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *apartmentRepository) GetByCode(ctx context.Context, code string) (*domain.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments WHERE upper(code) = upper($1) AND active = TRUE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, strings.TrimSpace(code)))
}

func (r *apartmentRepository) FindByNameMatch(ctx context.Context, reference string) (*domain.Apartment, error) {
	// Shortest matching name wins, code as final tie-break, so a reference
	// contained in several unit names resolves the same way on every backend.
	query := `SELECT ` + apartmentColumns + ` FROM apartments
	          WHERE active = TRUE AND name ILIKE '%' || $1 || '%'
	          ORDER BY length(name), code LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, strings.TrimSpace(reference)))
}

func (r *apartmentRepository) List(ctx context.Context, activeOnly bool) ([]domain.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apts []domain.Apartment
	for rows.Next() {
		var apt domain.Apartment
		var createdAt time.Time
		if err := rows.Scan(&apt.ID, &apt.Code, &apt.Name, &apt.OwnerEmail, &apt.Active, &createdAt); err != nil {
			return nil, err
		}
		apt.CreatedAt = createdAt
		apts = append(apts, apt)
	}
	return apts, rows.Err()
}

func (r *apartmentRepository) scanOne(row *sql.Row) (*domain.Apartment, error) {
	var apt domain.Apartment
	err := row.Scan(&apt.ID, &apt.Code, &apt.Name, &apt.OwnerEmail, &apt.Active, &apt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &apt, nil
}
