// store.go
//
// A drone model catalog data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of dronedb.
// dronedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// dronedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with dronedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/localnerve/dronedb/internal/config"
	"github.com/localnerve/dronedb/internal/database"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/models"
	"github.com/localnerve/dronedb/internal/query"
	"github.com/localnerve/dronedb/internal/validation"
)

var (
	// ErrNotFound is returned when no record has the requested identifier
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned when an identifier is not a UUID
	ErrInvalidID = errors.New("invalid identifier")
	// ErrDuplicate is matched by DuplicateError
	ErrDuplicate = errors.New("duplicate value")
)

// DuplicateError reports a uniqueness violation on Field
type DuplicateError struct {
	Field string
	Err   error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for field %s: %v", e.Field, e.Err)
}

// Is matches ErrDuplicate
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

func (e *DuplicateError) Unwrap() error {
	return e.Err
}

// RecordValidationError reports a record that would violate the persisted schema
type RecordValidationError struct {
	Fields validation.FieldErrors
}

func (e *RecordValidationError) Error() string {
	return "record validation failed: " + e.Fields.Error()
}

// DroneStore is the persistence contract for drone records
type DroneStore interface {
	// Insert assigns an identifier and timestamps and stores a new record
	Insert(ctx context.Context, payload *validation.Payload) (models.DroneRecord, error)
	// FindMany returns one page of the records matching filter, newest first
	FindMany(ctx context.Context, filter query.Filter, page query.Page) ([]models.DroneRecord, error)
	// Count returns the number of records matching filter
	Count(ctx context.Context, filter query.Filter) (int64, error)
	// FindByID returns the record with the given identifier
	FindByID(ctx context.Context, id string) (models.DroneRecord, error)
	// UpdateByID merges payload into the record, re-validates and stores it
	UpdateByID(ctx context.Context, id string, payload *validation.Payload) (models.DroneRecord, error)
	// DeleteByID removes the record and returns its last value
	DeleteByID(ctx context.Context, id string) (models.DroneRecord, error)
	// AggregateStats returns per-category counts and averages, largest category first
	AggregateStats(ctx context.Context) ([]models.CategoryStats, error)
	// Ping checks the store is reachable
	Ping(ctx context.Context) error
	// Close releases the store
	Close() error
}

// NewStore opens the store selected by cfg.DBType
func NewStore(cfg *config.Config, log logging.Logger) (DroneStore, error) {
	if cfg.DBType == "badger" {
		return NewBadgerStore(cfg.DBDatabase, log)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return NewGormStore(db), nil
}

// parseID normalizes a drone identifier
func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return parsed.String(), nil
}

// validateRecord checks a record against the persisted schema tags
func validateRecord(v *validator.Validate, d *models.Drone) error {
	err := v.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate record: %w", err)
	}

	fields := make(validation.FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.StructNamespace())
		fields = append(fields, validation.FieldError{
			Field:   path,
			Message: fmt.Sprintf("%s failed on the '%s' rule", path, fe.Tag()),
		})
	}
	return &RecordValidationError{Fields: fields}
}

// fieldPath turns "Drone.Dimensions.Length" into "dimensions.length"
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		r := []rune(p)
		if len(r) > 0 {
			r[0] = unicode.ToLower(r[0])
		}
		parts[i] = string(r)
	}
	return strings.Join(parts, ".")
}

// timestamp is the current time at the millisecond precision every backend keeps
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
