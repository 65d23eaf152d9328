package postgres

import (
	"database/sql"

	"rentalincome-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ApartmentRepository
	repository.IncomeRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		ApartmentRepository: NewApartmentRepository(db),
		IncomeRepository:    NewIncomeRepository(db),
	}
}
