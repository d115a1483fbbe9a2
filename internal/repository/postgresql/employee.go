package postgresql

import (
	"context"
	"fmt"

	"github.com/driveline-dms/payroll-backend-go/internal/domain/employee"
	"github.com/driveline-dms/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, dealer_id, name, email, pay_types, hourly_rate, annual_salary,
	pto_accrued, pto_used, is_active, created_at, updated_at
`

func (r *employeeRepository) GetByID(ctx context.Context, id string, dealerID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND dealer_id = $2
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, dealerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

func (r *employeeRepository) GetActiveByDealerID(ctx context.Context, dealerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE dealer_id = $1 AND is_active = TRUE
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, dealerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var payTypes []string

	err := row.Scan(
		&emp.ID, &emp.DealerID, &emp.Name, &emp.Email, &payTypes,
		&emp.HourlyRate, &emp.AnnualSalary,
		&emp.PTOAccrued, &emp.PTOUsed, &emp.IsActive,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	emp.PayTypes, err = employee.ParsePayTypes(payTypes)
	if err != nil {
		return employee.Employee{}, err
	}

	return emp, nil
}
