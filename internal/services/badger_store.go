package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/models"
	"github.com/localnerve/dronedb/internal/query"
	"github.com/localnerve/dronedb/internal/validation"
)

// InMemory is the DB_DATABASE value that opens a Badger store without a directory
const InMemory = ":memory:"

var dronePrefix = []byte("drone:")

// BadgerStore is the DroneStore backed by an embedded Badger database
type BadgerStore struct {
	db        *badger.DB
	validator *validator.Validate
}

// NewBadgerStore opens (or creates) the Badger database in dir
func NewBadgerStore(dir string, log logging.Logger) (*BadgerStore, error) {
	var opts badger.Options
	if dir == InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(filepath.Clean(dir))
	}
	opts.Logger = badgerLogger{log}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store %s: %w", dir, err)
	}

	return &BadgerStore{
		db:        db,
		validator: models.NewValidator(),
	}, nil
}

func droneKey(id string) []byte {
	return append(append([]byte{}, dronePrefix...), id...)
}

func (s *BadgerStore) Insert(ctx context.Context, payload *validation.Payload) (models.DroneRecord, error) {
	d := payload.ToModel()
	d.ID = uuid.NewString()
	now := timestamp()
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := validateRecord(s.validator, &d); err != nil {
		return models.DroneRecord{}, err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(droneKey(d.ID)); err == nil {
			return &DuplicateError{Field: "id", Err: fmt.Errorf("key %s exists", d.ID)}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return put(txn, &d)
	})
	if err != nil {
		return models.DroneRecord{}, err
	}

	return d.Record(), nil
}

func (s *BadgerStore) FindMany(ctx context.Context, filter query.Filter, page query.Page) ([]models.DroneRecord, error) {
	matched, err := s.scan(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	start, end := page.Window(len(matched))
	return matched[start:end], nil
}

func (s *BadgerStore) Count(ctx context.Context, filter query.Filter) (int64, error) {
	matched, err := s.scan(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (s *BadgerStore) FindByID(ctx context.Context, id string) (models.DroneRecord, error) {
	key, err := parseID(id)
	if err != nil {
		return models.DroneRecord{}, err
	}

	var d models.Drone
	err = s.db.View(func(txn *badger.Txn) error {
		d, err = get(txn, key)
		return err
	})
	if err != nil {
		return models.DroneRecord{}, err
	}
	return d.Record(), nil
}

func (s *BadgerStore) UpdateByID(ctx context.Context, id string, payload *validation.Payload) (models.DroneRecord, error) {
	key, err := parseID(id)
	if err != nil {
		return models.DroneRecord{}, err
	}

	var d models.Drone
	err = s.db.Update(func(txn *badger.Txn) error {
		if d, err = get(txn, key); err != nil {
			return err
		}

		payload.ApplyTo(&d)
		d.UpdatedAt = timestamp()

		if err := validateRecord(s.validator, &d); err != nil {
			return err
		}
		return put(txn, &d)
	})
	if err != nil {
		return models.DroneRecord{}, err
	}
	return d.Record(), nil
}

func (s *BadgerStore) DeleteByID(ctx context.Context, id string) (models.DroneRecord, error) {
	key, err := parseID(id)
	if err != nil {
		return models.DroneRecord{}, err
	}

	var d models.Drone
	err = s.db.Update(func(txn *badger.Txn) error {
		if d, err = get(txn, key); err != nil {
			return err
		}
		return txn.Delete(droneKey(key))
	})
	if err != nil {
		return models.DroneRecord{}, err
	}
	return d.Record(), nil
}

func (s *BadgerStore) AggregateStats(ctx context.Context) ([]models.CategoryStats, error) {
	all, err := s.scan(ctx, query.Filter{})
	if err != nil {
		return nil, err
	}

	type sums struct {
		count                  int64
		speed, weight, payload float64
	}
	byCategory := make(map[string]*sums)
	for _, d := range all {
		acc, ok := byCategory[d.Category]
		if !ok {
			acc = &sums{}
			byCategory[d.Category] = acc
		}
		acc.count++
		acc.speed += d.MaxSpeed
		acc.weight += d.Weight
		acc.payload += d.PayloadCapacity
	}

	stats := make([]models.CategoryStats, 0, len(byCategory))
	for category, acc := range byCategory {
		n := float64(acc.count)
		stats = append(stats, models.CategoryStats{
			Category:    category,
			Count:       acc.count,
			AvgMaxSpeed: acc.speed / n,
			AvgWeight:   acc.weight / n,
			AvgPayload:  acc.payload / n,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
	return stats, nil
}

func (s *BadgerStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger store is closed")
	}
	return s.db.View(func(txn *badger.Txn) error {
		return nil
	})
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// scan reads every drone in one read transaction and keeps those matching filter
func (s *BadgerStore) scan(ctx context.Context, filter query.Filter) ([]models.DroneRecord, error) {
	var matched []models.DroneRecord
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(dronePrefix); it.ValidForPrefix(dronePrefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var d models.Drone
			err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &d)
			})
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", it.Item().Key(), err)
			}

			if record := d.Record(); filter.Matches(record) {
				matched = append(matched, record)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan drones: %w", err)
	}
	return matched, nil
}

func get(txn *badger.Txn, id string) (models.Drone, error) {
	var d models.Drone
	item, err := txn.Get(droneKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return d, fmt.Errorf("drone %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return d, fmt.Errorf("failed to load drone %s: %w", id, err)
	}
	err = item.Value(func(v []byte) error {
		return json.Unmarshal(v, &d)
	})
	return d, err
}

func put(txn *badger.Txn, d *models.Drone) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode drone %s: %w", d.ID, err)
	}
	return txn.Set(droneKey(d.ID), data)
}

// badgerLogger routes badger's internal logging through the service logger
type badgerLogger struct {
	log logging.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}
