package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/commission"
	"github.com/driveline-dms/payroll-backend-go/internal/pkg/database"
)

type commissionRepository struct {
	db *database.DB
}

func NewCommissionRepository(db *database.DB) commission.CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) ListForPeriod(ctx context.Context, dealerID string, start, end time.Time) ([]commission.Commission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, dealer_id, employee_id, amount, description, created_at
		FROM commissions
		WHERE dealer_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, dealerID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}
	defer rows.Close()

	var commissions []commission.Commission
	for rows.Next() {
		var c commission.Commission
		err := rows.Scan(&c.ID, &c.DealerID, &c.EmployeeID, &c.Amount, &c.Description, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan commission: %w", err)
		}
		commissions = append(commissions, c)
	}

	return commissions, rows.Err()
}

func (r *commissionRepository) Delete(ctx context.Context, id string, dealerID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM commissions WHERE id = $1 AND dealer_id = $2`

	tag, err := q.Exec(ctx, query, id, dealerID)
	if err != nil {
		return fmt.Errorf("failed to delete commission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return commission.ErrCommissionNotFound
	}

	return nil
}
