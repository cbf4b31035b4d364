// Package repo is the persistence boundary: thin repositories over a shared
// *sql.DB pool. SQL lives here and nowhere else.
package repo

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code for a unique-constraint conflict.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint conflict from
// the database. Callers translate this into their own duplicate-key error
// rather than leaking the driver error shape.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
