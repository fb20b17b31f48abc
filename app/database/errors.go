package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
)

// sqliteConstraint is SQLITE_CONSTRAINT; extended codes keep it in the low byte.
const sqliteConstraint = 19

// IsNotFound reports whether err is the "no rows" result of a single-row query.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ConstraintViolation reports whether err is an integrity constraint failure
// (foreign key, unique, check, not null) and returns the constraint name or
// driver message for diagnostics.
func ConstraintViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code.Class() == "23" {
			if pqErr.Constraint != "" {
				return pqErr.Constraint, true
			}
			return pqErr.Code.Name(), true
		}
		return "", false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		if liteErr.Code()&0xff == sqliteConstraint {
			return liteErr.Error(), true
		}
	}
	return "", false
}
