package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/domain/attendance"
	"github.com/Pydah-Soft-Projects/li-hrms-sub004/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const aggregateColumns = `
	employee_id, month, total_days, present_days, od_days, paid_leave_days,
	weekly_offs, holidays, absent_days, ot_hours, lop_days,
	earned_leave_balance, late_in_count, early_out_count, permission_count
`

func scanAggregate(row pgx.Row) (attendance.MonthlyAggregate, error) {
	var a attendance.MonthlyAggregate
	err := row.Scan(
		&a.EmployeeID, &a.Month, &a.TotalDays, &a.PresentDays, &a.ODDays, &a.PaidLeaveDays,
		&a.WeeklyOffs, &a.Holidays, &a.AbsentDays, &a.OTHours, &a.LOPDays,
		&a.EarnedLeaveBalance, &a.LateInCount, &a.EarlyOutCount, &a.PermissionCount,
	)
	return a, err
}

func (r *attendanceRepository) GetMonthlyAggregate(ctx context.Context, employeeID, month string) (attendance.MonthlyAggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + aggregateColumns + ` FROM attendance_monthly WHERE employee_id = $1 AND month = $2`

	a, err := scanAggregate(q.QueryRow(ctx, query, employeeID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.MonthlyAggregate{}, attendance.ErrAttendanceNotFound
		}
		return attendance.MonthlyAggregate{}, fmt.Errorf("failed to get attendance aggregate: %w", err)
	}
	return a, nil
}

func (r *attendanceRepository) GetMonthlyAggregates(ctx context.Context, month string, employeeIDs []string) ([]attendance.MonthlyAggregate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + aggregateColumns + ` FROM attendance_monthly WHERE month = $1`
	args := []interface{}{month}
	if len(employeeIDs) > 0 {
		query += ` AND employee_id = ANY($2)`
		args = append(args, employeeIDs)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []attendance.MonthlyAggregate
	for rows.Next() {
		a, err := scanAggregate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance aggregates: %w", err)
	}
	return aggs, nil
}
