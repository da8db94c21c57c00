package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/employee"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, code, name, department_id, COALESCE(division_id, ''),
	gross_salary, dearness_allowance, compensation, is_active,
	joined_at, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var compensation []byte

	err := row.Scan(
		&e.ID, &e.Code, &e.Name, &e.DepartmentID, &e.DivisionID,
		&e.GrossSalary, &e.DearnessAllowance, &compensation, &e.IsActive,
		&e.JoinedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if len(compensation) > 0 {
		if err := json.Unmarshal(compensation, &e.Compensation); err != nil {
			return employee.Employee{}, fmt.Errorf("failed to decode compensation profile: %w", err)
		}
	}
	return e, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1) ORDER BY code`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepository) GetActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = TRUE ORDER BY code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return employees, nil
}
