package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"rentalincome-backend/internal/domain"
	"rentalincome-backend/internal/repository"
)

type incomeRepository struct {
	db *sql.DB
}

func NewIncomeRepository(db *sql.DB) repository.IncomeRepository {
	return &incomeRepository{db: db}
}

const incomeColumns = `id, apartment_id, reservation_id, date, amount_gross_cents, currency, status, source,
	COALESCE(guest_name, ''), COALESCE(guest_email, ''), COALESCE(booking_reference, ''),
	check_in_date, check_out_date, guests_count, non_refundable_at,
	COALESCE(email_message_id, ''), processed_from_email, created_at, updated_at`

func (r *incomeRepository) Create(ctx context.Context, inc *domain.Income) error {
	query := `INSERT INTO incomes (id, apartment_id, reservation_id, date, amount_gross_cents, currency, status, source,
	              guest_name, guest_email, booking_reference, check_in_date, check_out_date, guests_count,
	              non_refundable_at, email_message_id, processed_from_email, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
	          RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		inc.ID, inc.ApartmentID, inc.ReservationID, inc.Date, inc.AmountGrossCents, inc.Currency,
		inc.Status, inc.Source, nullIfEmpty(inc.GuestName), nullIfEmpty(inc.GuestEmail),
		nullIfEmpty(inc.BookingReference), inc.CheckInDate, inc.CheckOutDate, inc.GuestsCount,
		inc.NonRefundableAt, nullIfEmpty(inc.EmailMessageID), inc.ProcessedFromEmail,
	).Scan(&inc.CreatedAt, &inc.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrDuplicateMessage
		}
		return err
	}
	return nil
}

func (r *incomeRepository) GetByID(ctx context.Context, id string) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *incomeRepository) GetByMessageID(ctx context.Context, messageID string) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE email_message_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, messageID))
}

func (r *incomeRepository) FindByReference(ctx context.Context, reference, apartmentID string, source domain.Channel) (*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes
	          WHERE booking_reference = $1 AND apartment_id = $2 AND source = $3
	          ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, reference, apartmentID, source))
}

func (r *incomeRepository) MarkCancelled(ctx context.Context, id string) error {
	query := `UPDATE incomes SET status = 'CANCELLED', updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *incomeRepository) List(ctx context.Context, filter domain.IncomeFilter) ([]domain.Income, int32, error) {
	where := " WHERE 1=1"
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.ApartmentID != "" {
		where += " AND apartment_id = " + next(filter.ApartmentID)
	}
	if filter.Status != "" {
		where += " AND status = " + next(filter.Status)
	}
	if filter.From != nil {
		where += " AND date >= " + next(*filter.From)
	}
	if filter.To != nil {
		where += " AND date <= " + next(*filter.To)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM incomes`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}
	query := `SELECT ` + incomeColumns + ` FROM incomes` + where +
		` ORDER BY date DESC, created_at DESC LIMIT ` + next(pageSize) + ` OFFSET ` + next((page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var incomes []domain.Income
	for rows.Next() {
		inc, err := scanIncome(rows)
		if err != nil {
			return nil, 0, err
		}
		incomes = append(incomes, *inc)
	}
	return incomes, count, rows.Err()
}

// PromoteDue flips PENDING records whose cancellation window has closed to
// CONFIRMED. The write is idempotent: a second run finds nothing to promote.
func (r *incomeRepository) PromoteDue(ctx context.Context, asOf time.Time) ([]domain.Income, error) {
	query := `UPDATE incomes
	          SET status = 'CONFIRMED', updated_at = NOW()
	          WHERE status = 'PENDING' AND non_refundable_at IS NOT NULL AND non_refundable_at <= $1
	          RETURNING id, apartment_id, COALESCE(booking_reference, ''), amount_gross_cents`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promoted []domain.Income
	for rows.Next() {
		var inc domain.Income
		if err := rows.Scan(&inc.ID, &inc.ApartmentID, &inc.BookingReference, &inc.AmountGrossCents); err != nil {
			return nil, err
		}
		inc.Status = domain.IncomeStatusConfirmed
		promoted = append(promoted, inc)
	}
	return promoted, rows.Err()
}

// DeleteCancelledBefore retires old terminal records created by ingestion.
// Pending and confirmed rows are never touched.
func (r *incomeRepository) DeleteCancelledBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM incomes
	          WHERE status = 'CANCELLED' AND processed_from_email = TRUE AND created_at < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *incomeRepository) SummarizeDay(ctx context.Context, day time.Time) (*domain.ActivitySummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	query := `SELECT source, status, count(*), COALESCE(sum(amount_gross_cents), 0)
	          FROM incomes
	          WHERE processed_from_email = TRUE AND created_at >= $1 AND created_at < $2
	          GROUP BY source, status`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &domain.ActivitySummary{
		Date:     start,
		ByStatus: make(map[domain.IncomeStatus]int32),
		BySource: make(map[domain.Channel]domain.SourceActivity),
	}
	for rows.Next() {
		var source domain.Channel
		var status domain.IncomeStatus
		var count int32
		var cents int64
		if err := rows.Scan(&source, &status, &count, &cents); err != nil {
			return nil, err
		}
		summary.Total += count
		summary.ByStatus[status] += count

		activity := summary.BySource[source]
		activity.Count += count
		if status != domain.IncomeStatusCancelled {
			activity.AmountCents += cents
			summary.TotalAmountCents += cents
		}
		summary.BySource[source] = activity
	}
	return summary, rows.Err()
}

func (r *incomeRepository) scanOne(row *sql.Row) (*domain.Income, error) {
	inc, err := scanIncome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncome(row rowScanner) (*domain.Income, error) {
	var inc domain.Income
	err := row.Scan(
		&inc.ID, &inc.ApartmentID, &inc.ReservationID, &inc.Date, &inc.AmountGrossCents, &inc.Currency,
		&inc.Status, &inc.Source, &inc.GuestName, &inc.GuestEmail, &inc.BookingReference,
		&inc.CheckInDate, &inc.CheckOutDate, &inc.GuestsCount, &inc.NonRefundableAt,
		&inc.EmailMessageID, &inc.ProcessedFromEmail, &inc.CreatedAt, &inc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inc, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
