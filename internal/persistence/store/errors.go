package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/example/room-reservations/internal/persistence"
)

// mapError maps driver and GORM errors to persistence layer errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, persistence.ErrNotFound),
		errors.Is(err, persistence.ErrDuplicate),
		errors.Is(err, persistence.ErrConstraintViolation):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return persistence.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return persistence.ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return persistence.ErrConstraintViolation
	}

	errStr := err.Error()

	// UNIQUE violations: SQLite, PostgreSQL, MySQL wording.
	if containsAny(errStr, "UNIQUE constraint failed", "duplicate key value", "Duplicate entry") {
		return persistence.ErrDuplicate
	}

	if containsAny(errStr,
		"FOREIGN KEY constraint failed",
		"violates foreign key constraint",
		"a foreign key constraint fails",
		"CHECK constraint failed",
		"NOT NULL constraint failed",
		"violates not-null constraint",
	) {
		return persistence.ErrConstraintViolation
	}

	return err
}

func containsAny(s string, substrings ...string) bool {
	for _, substr := range substrings {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
