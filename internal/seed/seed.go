// seed.go
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

// Package seed loads the sample drone catalog into a store.
package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/localnerve/dronedb/data"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/models"
	"github.com/localnerve/dronedb/internal/query"
	"github.com/localnerve/dronedb/internal/services"
	"github.com/localnerve/dronedb/internal/validation"
)

// Summary reports what a seed run changed
type Summary struct {
	Cleared  int                    `json:"cleared"`
	Inserted int                    `json:"inserted"`
	Total    int64                  `json:"total"`
	Stats    []models.CategoryStats `json:"byCategory"`
}

// Payloads decodes and validates the embedded sample catalog
func Payloads() ([]*validation.Payload, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data.SeedDrones, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}

	payloads := make([]*validation.Payload, 0, len(entries))
	for i, entry := range entries {
		p, err := validation.ValidateJSON(entry, validation.ModeCreate)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

// Run inserts the sample catalog, first removing every record when clearFirst is set
func Run(ctx context.Context, store services.DroneStore, clearFirst bool, log logging.Logger) (Summary, error) {
	var summary Summary

	payloads, err := Payloads()
	if err != nil {
		return summary, err
	}

	if clearFirst {
		if summary.Cleared, err = Clear(ctx, store); err != nil {
			return summary, err
		}
		log.Infof("Cleared %d existing drones", summary.Cleared)
	}

	for _, p := range payloads {
		record, err := store.Insert(ctx, p)
		if err != nil {
			return summary, fmt.Errorf("failed to insert %s: %w", *p.Name, err)
		}
		log.WithFields(logging.Fields{"id": record.ID, "category": record.Category}).Debugf("Inserted %s", record.Name)
		summary.Inserted++
	}
	log.Infof("Inserted %d sample drones", summary.Inserted)

	if summary.Total, err = store.Count(ctx, query.Filter{}); err != nil {
		return summary, err
	}
	if summary.Stats, err = store.AggregateStats(ctx); err != nil {
		return summary, err
	}
	return summary, nil
}

// Clear deletes every record and returns how many were removed
func Clear(ctx context.Context, store services.DroneStore) (int, error) {
	removed := 0
	page := query.Page{Number: 1, Limit: query.MaxLimit}
	for {
		records, err := store.FindMany(ctx, query.Filter{}, page)
		if err != nil {
			return removed, err
		}
		if len(records) == 0 {
			return removed, nil
		}
		for _, r := range records {
			if _, err := store.DeleteByID(ctx, r.ID); err != nil {
				return removed, fmt.Errorf("failed to delete %s: %w", r.ID, err)
			}
			removed++
		}
	}
}
