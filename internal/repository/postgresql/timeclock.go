package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/timeclock"
	"github.com/driveline-dms/payroll-backend-go/internal/pkg/database"
)

type timeClockRepository struct {
	db *database.DB
}

func NewTimeClockRepository(db *database.DB) timeclock.TimeClockRepository {
	return &timeClockRepository{db: db}
}

func (r *timeClockRepository) ListForPeriod(ctx context.Context, dealerID string, start, end time.Time) ([]timeclock.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, dealer_id, employee_id, clock_in, clock_out, total_hours, created_at
		FROM time_clock_entries
		WHERE dealer_id = $1 AND clock_in >= $2 AND clock_in < $3
		ORDER BY clock_in
	`

	rows, err := q.Query(ctx, query, dealerID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list time clock entries: %w", err)
	}
	defer rows.Close()

	var entries []timeclock.Entry
	for rows.Next() {
		var e timeclock.Entry
		err := rows.Scan(
			&e.ID, &e.DealerID, &e.EmployeeID, &e.ClockIn, &e.ClockOut,
			&e.TotalHours, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time clock entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
