package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance aggregate not found for month")
	ErrInvalidMonth       = errors.New("invalid month key, expected YYYY-MM")
)
