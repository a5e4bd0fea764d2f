package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers the repositories react to.
const (
	ErrDuplicateEntry  = 1062
	ErrLockWaitTimeout = 1205
	ErrDeadlock        = 1213
)

func hasNumber(err error, numbers ...uint16) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	for _, n := range numbers {
		if mysqlErr.Number == n {
			return true
		}
	}
	return false
}

// IsDuplicateEntry reports a unique key violation.
func IsDuplicateEntry(err error) bool {
	return hasNumber(err, ErrDuplicateEntry)
}

// IsRetryable reports a deadlock or lock wait timeout.
func IsRetryable(err error) bool {
	return hasNumber(err, ErrDeadlock, ErrLockWaitTimeout)
}
