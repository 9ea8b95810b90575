// gorm_store.go
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

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/localnerve/dronedb/internal/database"
	"github.com/localnerve/dronedb/internal/models"
	"github.com/localnerve/dronedb/internal/query"
	"github.com/localnerve/dronedb/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// categoryIndex is the index GORM names for the drones.category column
const categoryIndex = "idx_drones_category"

// GormStore is the DroneStore backed by a relational database
type GormStore struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewGormStore wraps an open, migrated database connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:        db,
		validator: models.NewValidator(),
	}
}

// session starts a statement bound to ctx and labelled with op
func (s *GormStore) session(ctx context.Context, op string) *gorm.DB {
	return s.db.WithContext(ctx).Clauses(hints.CommentBefore("select", "dronedb:"+op))
}

// lockForUpdate adds a row lock on dialects that support SELECT ... FOR UPDATE
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	switch tx.Dialector.Name() {
	case "mysql", "postgres":
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (s *GormStore) Insert(ctx context.Context, payload *validation.Payload) (models.DroneRecord, error) {
	d := payload.ToModel()
	d.ID = uuid.NewString()
	now := timestamp()
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := validateRecord(s.validator, &d); err != nil {
		return models.DroneRecord{}, err
	}

	err := s.db.WithContext(ctx).
		Clauses(hints.CommentBefore("insert", "dronedb:insert")).
		Create(&d).Error
	if err != nil {
		return models.DroneRecord{}, translateWriteError(err)
	}

	return d.Record(), nil
}

func (s *GormStore) FindMany(ctx context.Context, filter query.Filter, page query.Page) ([]models.DroneRecord, error) {
	if s.searchInGo(filter) {
		matched, err := s.matchSearch(ctx, "find_many", filter)
		if err != nil {
			return nil, err
		}
		start, end := page.Window(len(matched))
		return matched[start:end], nil
	}

	tx := s.session(ctx, "find_many").Model(&models.Drone{})
	if filter.Category != nil && s.db.Dialector.Name() == "mysql" {
		tx = tx.Clauses(hints.UseIndex(categoryIndex))
	}

	var rows []models.Drone
	if err := tx.Scopes(filter.Scope, page.PageScope).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list drones: %w", err)
	}

	records := make([]models.DroneRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].Record()
	}
	return records, nil
}

func (s *GormStore) Count(ctx context.Context, filter query.Filter) (int64, error) {
	if s.searchInGo(filter) {
		matched, err := s.matchSearch(ctx, "count", filter)
		if err != nil {
			return 0, err
		}
		return int64(len(matched)), nil
	}

	var total int64
	err := s.session(ctx, "count").
		Model(&models.Drone{}).
		Scopes(filter.Scope).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count drones: %w", err)
	}
	return total, nil
}

func (s *GormStore) searchInGo(filter query.Filter) bool {
	return filter.Search != "" && !query.FoldsCase(s.db.Dialector.Name())
}

// matchSearch narrows by the indexed columns in SQL and applies the text
// search with Unicode case folding, newest first.
func (s *GormStore) matchSearch(ctx context.Context, op string, filter query.Filter) ([]models.DroneRecord, error) {
	var rows []models.Drone
	err := s.session(ctx, op).
		Model(&models.Drone{}).
		Scopes(filter.WithoutSearch().Scope).
		Order(query.SortCreatedDesc).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search drones: %w", err)
	}

	matched := make([]models.DroneRecord, 0, len(rows))
	for i := range rows {
		if record := rows[i].Record(); filter.Matches(record) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

func (s *GormStore) FindByID(ctx context.Context, id string) (models.DroneRecord, error) {
	key, err := parseID(id)
	if err != nil {
		return models.DroneRecord{}, err
	}

	d, err := first(s.session(ctx, "find_by_id"), key)
	if err != nil {
		return models.DroneRecord{}, err
	}
	return d.Record(), nil
}

func (s *GormStore) UpdateByID(ctx context.Context, id string, payload *validation.Payload) (models.DroneRecord, error) {
	key, err := parseID(id)
	if err != nil {
		return models.DroneRecord{}, err
	}

	var updated models.Drone
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := first(lockForUpdate(tx.Clauses(hints.CommentBefore("select", "dronedb:update_by_id"))), key)
		if err != nil {
			return err
		}

		payload.ApplyTo(&d)
		d.UpdatedAt = timestamp()

		if err := validateRecord(s.validator, &d); err != nil {
			return err
		}

		if err := tx.Save(&d).Error; err != nil {
			return translateWriteError(err)
		}
		updated = d
		return nil
	})
	if err != nil {
		return models.DroneRecord{}, err
	}

	return updated.Record(), nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id string) (models.DroneRecord, error) {
	key, err := parseID(id)
	if err != nil {
		return models.DroneRecord{}, err
	}

	var deleted models.Drone
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		d, err := first(lockForUpdate(tx.Clauses(hints.CommentBefore("select", "dronedb:delete_by_id"))), key)
		if err != nil {
			return err
		}

		if err := tx.Delete(&models.Drone{}, "id = ?", key).Error; err != nil {
			return fmt.Errorf("failed to delete drone %s: %w", key, err)
		}
		deleted = d
		return nil
	})
	if err != nil {
		return models.DroneRecord{}, err
	}

	return deleted.Record(), nil
}

func (s *GormStore) AggregateStats(ctx context.Context) ([]models.CategoryStats, error) {
	stats := make([]models.CategoryStats, 0, len(models.Categories))
	err := s.session(ctx, "aggregate_stats").
		Model(&models.Drone{}).
		Select("category, COUNT(*) AS count, AVG(max_speed) AS avg_max_speed, AVG(weight) AS avg_weight, AVG(payload_capacity) AS avg_payload").
		Group("category").
		Order("COUNT(*) DESC").
		Order("category ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate drone stats: %w", err)
	}
	return stats, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("database connection error: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	return database.Close(s.db)
}

// first loads one drone by primary key
func first(tx *gorm.DB, id string) (models.Drone, error) {
	var d models.Drone
	err := tx.Where("id = ?", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return d, fmt.Errorf("drone %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return d, fmt.Errorf("failed to load drone %s: %w", id, err)
	}
	return d, nil
}

// translateWriteError maps driver errors that GORM translated to store errors
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateError{Field: "id", Err: err}
	}
	return fmt.Errorf("failed to write drone: %w", err)
}
