package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/timeoff"
	"github.com/driveline-dms/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type timeOffRepository struct {
	db *database.DB
}

func NewTimeOffRepository(db *database.DB) timeoff.TimeOffRepository {
	return &timeOffRepository{db: db}
}

const requestColumns = `
	r.id, r.dealer_id, r.employee_id, r.start_date, r.end_date,
	r.days_requested, r.type, r.reason, r.status,
	r.decided_by, r.decided_at, r.created_at, r.updated_at,
	e.name AS employee_name
`

func (r *timeOffRepository) Create(ctx context.Context, request timeoff.Request) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_off_requests (
			id, dealer_id, employee_id, start_date, end_date,
			days_requested, type, reason, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID, request.DealerID, request.EmployeeID,
		request.StartDate, request.EndDate,
		request.DaysRequested, request.Type, request.Reason, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return timeoff.Request{}, fmt.Errorf("failed to create time off request: %w", err)
	}

	return request, nil
}

func (r *timeOffRepository) GetByID(ctx context.Context, id string, dealerID string) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + requestColumns + `
		FROM time_off_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1 AND r.dealer_id = $2
	`

	request, err := scanRequest(q.QueryRow(ctx, query, id, dealerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeoff.Request{}, timeoff.ErrRequestNotFound
		}
		return timeoff.Request{}, fmt.Errorf("failed to get time off request: %w", err)
	}

	return request, nil
}

func (r *timeOffRepository) ListForEmployee(ctx context.Context, employeeID string, dealerID string) ([]timeoff.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM time_off_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.employee_id = $1 AND r.dealer_id = $2
		ORDER BY r.created_at DESC
	`

	return r.listRequests(ctx, query, employeeID, dealerID)
}

func (r *timeOffRepository) ListForDealer(ctx context.Context, dealerID string) ([]timeoff.Request, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM time_off_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.dealer_id = $1
		ORDER BY r.created_at DESC
	`

	return r.listRequests(ctx, query, dealerID)
}

func (r *timeOffRepository) UpdateStatusIfPending(ctx context.Context, id string, dealerID string, status timeoff.Status, decidedBy string, decidedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_off_requests
		SET status = $3, decided_by = $4, decided_at = $5, updated_at = NOW()
		WHERE id = $1 AND dealer_id = $2 AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, dealerID, status, decidedBy, decidedAt)
	if err != nil {
		return false, fmt.Errorf("failed to update time off request status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *timeOffRepository) ApprovePTO(ctx context.Context, id string, dealerID string, employeeID string, days decimal.Decimal, decidedBy string, decidedAt time.Time) (bool, error) {
	decided := false

	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		update := `
			UPDATE time_off_requests
			SET status = 'approved', decided_by = $3, decided_at = $4, updated_at = NOW()
			WHERE id = $1 AND dealer_id = $2 AND status = 'pending'
		`

		tag, err := tx.Exec(ctx, update, id, dealerID, decidedBy, decidedAt)
		if err != nil {
			return fmt.Errorf("failed to approve time off request: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// Lost the race to another decision; leave the balance alone.
			return nil
		}

		increment := `
			UPDATE employees
			SET pto_used = pto_used + $3, updated_at = NOW()
			WHERE id = $1 AND dealer_id = $2
		`

		tag, err = tx.Exec(ctx, increment, employeeID, dealerID, days)
		if err != nil {
			return fmt.Errorf("failed to increment pto used: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("employee %s not found while approving pto", employeeID)
		}

		decided = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return decided, nil
}

func (r *timeOffRepository) listRequests(ctx context.Context, query string, args ...any) ([]timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time off requests: %w", err)
	}
	defer rows.Close()

	var requests []timeoff.Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time off request: %w", err)
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

func scanRequest(row pgx.Row) (timeoff.Request, error) {
	var request timeoff.Request
	err := row.Scan(
		&request.ID, &request.DealerID, &request.EmployeeID,
		&request.StartDate, &request.EndDate,
		&request.DaysRequested, &request.Type, &request.Reason, &request.Status,
		&request.DecidedBy, &request.DecidedAt,
		&request.CreatedAt, &request.UpdatedAt,
		&request.EmployeeName,
	)
	return request, err
}
