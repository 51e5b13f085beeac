// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

package s2cell

import (
	"context"
	"fmt"
	"sort"

	"github.com/geoshard/partitioning/geoshard/logging"
)

// ScoredCell pairs a CellID with its load score. CellMap.Cells is kept sorted
// ascending by CellID; callers must never re-sort or re-key it into a map,
// the planner's bin-size sweep depends on that ascending traversal.
type ScoredCell struct {
	ID    CellID
	Score int32
}

// CellMap is the ordered, scored cell domain at one storage level.
type CellMap struct {
	StorageLevel uint8
	Cells        []ScoredCell
}

// ErrInvalidLevel is returned when a level outside [MinLevel, MaxLevel] is
// requested.
type ErrInvalidLevel struct {
	Level uint8
}

func (e ErrInvalidLevel) Error() string {
	return fmt.Sprintf("s2cell: level %d outside [%d, %d]", e.Level, MinLevel, MaxLevel)
}

// Enumerate produces every S2 cell at level exactly once, in ascending
// order, via an explicit BFS over vertex neighbors seeded at (lat=0,
// lng=0). The recursive form the original source used blows the default
// goroutine stack well before level 8 (see design notes); this walks an
// explicit FIFO queue instead, so the only resource pressure is the
// visited set, which is pre-sized to the expected 6*4^level cell count to
// avoid rehashing.
func Enumerate(ctx context.Context, level uint8) (*CellMap, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, ErrInvalidLevel{Level: level}
	}

	expected := expectedCellCount(level)
	seen := make(map[CellID]struct{}, expected)

	start := CellIDFor(0, 0, level)
	seen[start] = struct{}{}

	queue := make([]CellID, 0, expected)
	queue = append(queue, start)

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		frontier := queue
		queue = make([]CellID, 0, len(frontier))

		for _, cell := range frontier {
			for _, neighbor := range cell.VertexNeighbors(int(level)) {
				if _, ok := seen[neighbor]; ok {
					continue
				}
				seen[neighbor] = struct{}{}
				queue = append(queue, neighbor)
			}
		}
	}

	cells := make([]ScoredCell, 0, len(seen))
	for id := range seen {
		cells = append(cells, ScoredCell{ID: id, Score: 0})
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].ID.Less(cells[j].ID) })

	logging.Infof("s2cell: enumerated %d cells at level %d", len(cells), level)

	return &CellMap{StorageLevel: level, Cells: cells}, nil
}

// expectedCellCount is the closed form 6*4^level, used only to pre-size the
// visited set; Enumerate's correctness never depends on this estimate.
func expectedCellCount(level uint8) int {
	n := 6
	for i := uint8(0); i < level; i++ {
		n *= 4
	}
	return n
}
