// common.go
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

package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/dronedb/internal/events"
	"github.com/localnerve/dronedb/internal/logging"
	"github.com/localnerve/dronedb/internal/query"
)

// listParams extracts the list query parameters. When a key is repeated the
// first non-empty value wins.
func listParams(c *fiber.Ctx) query.Params {
	params := make(query.Params)

	// Visit all query arguments, copying out of the request buffer
	args := c.Context().QueryArgs()
	for key, value := range args.All() {
		k := string(key)
		if existing, ok := params[k]; ok && existing != "" {
			continue
		}
		params[k] = string(value)
	}

	return params
}

// publish emits a change event. Delivery failures are logged and never fail the request.
func publish(ctx context.Context, pub events.Publisher, log logging.Logger, t events.Type, data interface{}) {
	if pub == nil {
		return
	}

	event := events.New(t, data)
	if err := pub.Publish(ctx, event); err != nil {
		log.WithError(err).WithFields(logging.Fields{
			"eventId": event.ID,
			"type":    event.Type,
		}).Warnf("Failed to publish change event")
	}
}
