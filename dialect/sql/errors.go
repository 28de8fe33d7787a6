package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQL error numbers for constraint violations.
const (
	mysqlDuplicateEntry   = 1062
	mysqlForeignKeyParent = 1451 // Cannot delete or update a parent row
	mysqlForeignKeyChild  = 1452 // Cannot add or update a child row
)

// IsConstraintError reports whether err resulted from a constraint violation.
func IsConstraintError(err error) bool {
	return IsUniqueConstraintError(err) || IsForeignKeyConstraintError(err)
}

// IsUniqueConstraintError reports whether err resulted from a duplicate
// value in a primary key or unique index.
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "Error 1062")
}

// IsForeignKeyConstraintError reports whether err resulted from a foreign-key
// violation, e.g. a link row pointing at a missing parent.
func IsForeignKeyConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlForeignKeyParent || me.Number == mysqlForeignKeyChild
	}
	return strings.Contains(err.Error(), "Error 1451") || strings.Contains(err.Error(), "Error 1452")
}
