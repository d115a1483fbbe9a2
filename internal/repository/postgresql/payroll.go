package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/payroll"
	"github.com/driveline-dms/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) GetSettings(ctx context.Context, dealerID string) (payroll.PaySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, dealer_id, frequency, pay_day_1, pay_day_2, created_at, updated_at
		FROM pay_settings
		WHERE dealer_id = $1
	`

	var s payroll.PaySettings
	err := q.QueryRow(ctx, query, dealerID).Scan(
		&s.ID, &s.DealerID, &s.Frequency, &s.PayDay1, &s.PayDay2,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PaySettings{}, payroll.ErrPaySettingsNotFound
		}
		return payroll.PaySettings{}, fmt.Errorf("failed to get pay settings: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) UpsertSettings(ctx context.Context, settings payroll.PaySettings) (payroll.PaySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_settings (id, dealer_id, frequency, pay_day_1, pay_day_2)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (dealer_id) DO UPDATE SET
			frequency = EXCLUDED.frequency,
			pay_day_1 = EXCLUDED.pay_day_1,
			pay_day_2 = EXCLUDED.pay_day_2,
			updated_at = NOW()
		RETURNING id, dealer_id, frequency, pay_day_1, pay_day_2, created_at, updated_at
	`

	var s payroll.PaySettings
	err := q.QueryRow(ctx, query,
		settings.ID, settings.DealerID, settings.Frequency,
		settings.PayDay1, settings.PayDay2,
	).Scan(
		&s.ID, &s.DealerID, &s.Frequency, &s.PayDay1, &s.PayDay2,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.PaySettings{}, fmt.Errorf("failed to upsert pay settings: %w", err)
	}

	return s, nil
}

const runColumns = `
	id, dealer_id, period_start, period_end, pay_date,
	employee_count, skipped_count, failed_count,
	total_gross, total_net, status, created_at, updated_at
`

func (r *payrollRepository) CreateRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (
			id, dealer_id, period_start, period_end, pay_date,
			employee_count, skipped_count, failed_count,
			total_gross, total_net, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query,
		run.ID, run.DealerID, run.PeriodStart, run.PeriodEnd, run.PayDate,
		run.EmployeeCount, run.SkippedCount, run.FailedCount,
		run.TotalGross, run.TotalNet, run.Status,
	))
	if err != nil {
		return payroll.PayrollRun{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetRunByID(ctx context.Context, id string, dealerID string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE id = $1 AND dealer_id = $2
	`

	run, err := scanRun(q.QueryRow(ctx, query, id, dealerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) GetRunByPeriod(ctx context.Context, dealerID string, start, end time.Time) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE dealer_id = $1 AND period_start = $2 AND period_end = $3
	`

	run, err := scanRun(q.QueryRow(ctx, query, dealerID, start, end))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run by period: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) ListRecentRuns(ctx context.Context, dealerID string, limit int) ([]payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE dealer_id = $1
		ORDER BY period_end DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, dealerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *payrollRepository) UpdateRunTotals(ctx context.Context, dealerID string, req payroll.UpdateRunTotalsRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET employee_count = $3,
			skipped_count = $4,
			failed_count = $5,
			total_gross = $6,
			total_net = $7,
			status = $8,
			updated_at = NOW()
		WHERE id = $1 AND dealer_id = $2
	`

	tag, err := q.Exec(ctx, query,
		req.ID, dealerID,
		req.EmployeeCount, req.SkippedCount, req.FailedCount,
		req.TotalGross, req.TotalNet, req.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll run totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

const paystubColumns = `
	p.id, p.run_id, p.dealer_id, p.employee_id,
	p.regular_hours, p.overtime_hours, p.hourly_rate, p.salary_amount,
	p.commission_amount, p.bonus_amount, p.reimbursement_amount,
	p.gross_pay, p.federal_tax, p.state_tax, p.social_security, p.medicare,
	p.net_pay, p.status, p.created_at, e.name AS employee_name
`

func (r *payrollRepository) CreatePaystub(ctx context.Context, stub payroll.Paystub) (payroll.Paystub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO paystubs (
			id, run_id, dealer_id, employee_id,
			regular_hours, overtime_hours, hourly_rate, salary_amount,
			commission_amount, bonus_amount, reimbursement_amount,
			gross_pay, federal_tax, state_tax, social_security, medicare,
			net_pay, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		stub.ID, stub.RunID, stub.DealerID, stub.EmployeeID,
		stub.RegularHours, stub.OvertimeHours, stub.HourlyRate, stub.SalaryAmount,
		stub.CommissionAmount, stub.BonusAmount, stub.ReimbursementAmount,
		stub.GrossPay, stub.FederalTax, stub.StateTax, stub.SocialSecurity, stub.Medicare,
		stub.NetPay, stub.Status,
	).Scan(&stub.ID, &stub.CreatedAt)
	if err != nil {
		return payroll.Paystub{}, fmt.Errorf("failed to create paystub: %w", err)
	}

	return stub, nil
}

func (r *payrollRepository) GetPaystubByID(ctx context.Context, id string, dealerID string) (payroll.Paystub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + paystubColumns + `
		FROM paystubs p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND p.dealer_id = $2
	`

	stub, err := scanPaystub(q.QueryRow(ctx, query, id, dealerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Paystub{}, payroll.ErrPaystubNotFound
		}
		return payroll.Paystub{}, fmt.Errorf("failed to get paystub: %w", err)
	}

	return stub, nil
}

func (r *payrollRepository) ListPaystubsForEmployee(ctx context.Context, employeeID string, dealerID string) ([]payroll.Paystub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + paystubColumns + `
		FROM paystubs p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.dealer_id = $2
		ORDER BY p.created_at DESC
	`

	return r.listPaystubs(ctx, q, query, employeeID, dealerID)
}

func (r *payrollRepository) ListPaystubsForRun(ctx context.Context, runID string, dealerID string) ([]payroll.Paystub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + paystubColumns + `
		FROM paystubs p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.run_id = $1 AND p.dealer_id = $2
		ORDER BY e.name
	`

	return r.listPaystubs(ctx, q, query, runID, dealerID)
}

func (r *payrollRepository) listPaystubs(ctx context.Context, q database.Querier, query string, args ...any) ([]payroll.Paystub, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list paystubs: %w", err)
	}
	defer rows.Close()

	var stubs []payroll.Paystub
	for rows.Next() {
		stub, err := scanPaystub(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paystub: %w", err)
		}
		stubs = append(stubs, stub)
	}

	return stubs, rows.Err()
}

func scanRun(row pgx.Row) (payroll.PayrollRun, error) {
	var run payroll.PayrollRun
	err := row.Scan(
		&run.ID, &run.DealerID, &run.PeriodStart, &run.PeriodEnd, &run.PayDate,
		&run.EmployeeCount, &run.SkippedCount, &run.FailedCount,
		&run.TotalGross, &run.TotalNet, &run.Status,
		&run.CreatedAt, &run.UpdatedAt,
	)
	return run, err
}

func scanPaystub(row pgx.Row) (payroll.Paystub, error) {
	var stub payroll.Paystub
	err := row.Scan(
		&stub.ID, &stub.RunID, &stub.DealerID, &stub.EmployeeID,
		&stub.RegularHours, &stub.OvertimeHours, &stub.HourlyRate, &stub.SalaryAmount,
		&stub.CommissionAmount, &stub.BonusAmount, &stub.ReimbursementAmount,
		&stub.GrossPay, &stub.FederalTax, &stub.StateTax, &stub.SocialSecurity, &stub.Medicare,
		&stub.NetPay, &stub.Status, &stub.CreatedAt, &stub.EmployeeName,
	)
	return stub, err
}
