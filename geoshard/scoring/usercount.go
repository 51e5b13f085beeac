// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

package scoring

import (
	"context"

	"github.com/geoshard/partitioning/geoshard/s2cell"
)

// UserLocation is the minimal user-location pair the UserCount strategy and
// router.RouteUsers both consume.
type UserLocation struct {
	UID string
	Lat float64
	Lng float64
}

// UserCount scores each cell by the number of Users that fall inside it at
// cells.StorageLevel. Users outside the enumerated domain (no matching
// cell id in cells) are ignored, per spec.
type UserCount struct {
	Users []UserLocation
}

func (u UserCount) Score(ctx context.Context, cells *s2cell.CellMap) error {
	for i := range cells.Cells {
		cells.Cells[i].Score = 0
	}

	index := make(map[s2cell.CellID]int, len(cells.Cells))
	for i, c := range cells.Cells {
		index[c.ID] = i
	}

	for _, user := range u.Users {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		cellID := s2cell.CellIDFor(user.Lat, user.Lng, cells.StorageLevel)
		if i, ok := index[cellID]; ok {
			cells.Cells[i].Score++
		}
	}
	return nil
}

