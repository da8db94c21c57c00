package attendance

import "context"

type AttendanceRepository interface {
	GetMonthlyAggregate(ctx context.Context, employeeID, month string) (MonthlyAggregate, error)
	GetMonthlyAggregates(ctx context.Context, month string, employeeIDs []string) ([]MonthlyAggregate, error)
}
