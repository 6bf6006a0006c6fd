// Package repository provides data access layer implementations for the application.
package repository

import (
	"errors"

	"scribe/internal/models"

	"gorm.io/gorm"
)

// translateWriteError maps storage errors on write paths: duplicated
// keys become distinguishable conflicts, everything else is internal.
func translateWriteError(err error, resource, conflictMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError(resource, conflictMsg)
	}
	return models.NewInternalError(err)
}
