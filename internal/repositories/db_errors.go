package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateEntryError checks if the error corresponds to a MySQL/MariaDB
// duplicate-key failure (error 1062), which the unique email index produces.
// This lets repositories translate DB failures into the sentinel errors the
// handlers map to client-facing responses instead of generic 500 errors.
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
