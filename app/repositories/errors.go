// Package repositories is the storage gateway: one repository per table,
// each constructed with the shared *database.Pool. Repositories hold no
// business rules.
package repositories

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("repositories: record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("repositories: duplicate key")
)

// translate maps driver-level failures onto the package sentinels and
// tags everything else with op.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), uniqueViolation(err):
		return ErrDuplicate
	default:
		return fmt.Errorf("repositories: %s: %w", op, err)
	}
}

// uniqueViolation catches the sqlite constraint errors the gorm translator
// misses: go-sqlite3 returns sqlite3.Error by value.
func uniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
		se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
