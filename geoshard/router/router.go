// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

// Package router maps a geographic point or radius to the shard(s) that
// cover it, in O(log n) time where n is the shard count. All externally
// visible functions take (lat, lng) in that fixed order, per spec.md §9.
package router

import (
	"fmt"
	"sort"

	metrics "github.com/rcrowley/go-metrics"

	"github.com/geoshard/partitioning/geoshard/planner"
	"github.com/geoshard/partitioning/geoshard/s2cell"
	"github.com/geoshard/partitioning/geoshard/scoring"
)

// ErrInvalidLocation is returned when a latitude or longitude is out of
// range.
type ErrInvalidLocation struct {
	Lat, Lng float64
}

func (e ErrInvalidLocation) Error() string {
	return fmt.Sprintf("router: invalid location (lat=%v, lng=%v)", e.Lat, e.Lng)
}

// ErrEmptyShardMap is returned by New when given a shard map with no
// entries.
var ErrEmptyShardMap = fmt.Errorf("router: empty shard map")

var routeLookups = metrics.NewRegisteredCounter("router.routeLookups", metrics.DefaultRegistry)

// Router holds a ShardMap sorted by Start and its common storage level. It
// is immutable after New returns and safe for concurrent use by any number
// of reader goroutines; a rebuild publishes a new *Router rather than
// mutating this one.
type Router struct {
	storageLevel uint8
	shards       planner.ShardMap // sorted ascending by Start
}

// New builds a Router over shards at storageLevel. shards need not already
// be sorted; New sorts a copy by Start.
func New(shards planner.ShardMap, storageLevel uint8) (*Router, error) {
	if len(shards) == 0 {
		return nil, ErrEmptyShardMap
	}

	sorted := make(planner.ShardMap, len(shards))
	copy(sorted, shards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	return &Router{storageLevel: storageLevel, shards: sorted}, nil
}

// StorageLevel is the S2 level this router's shard map partitions.
func (r *Router) StorageLevel() uint8 { return r.storageLevel }

func validateLocation(lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidLocation{Lat: lat, Lng: lng}
	}
	return nil
}

// ShardForCell returns the shard whose [Start, End] interval contains cell.
// Shards partition the cell domain by construction (planner.Plan), so
// binary search on Start alone is unambiguous: the owning shard is the last
// one whose Start is <= cell. Because a closed shard's End equals the next
// shard's Start at every boundary, searching by End would be ambiguous;
// searching by Start is not, since Start values are strictly increasing and
// each cell id is used as a Start exactly once. If cell falls past every
// shard's Start (degenerate upper-bound edge case), the last shard is
// returned, matching spec.md §4.5.
func (r *Router) ShardForCell(cell s2cell.CellID) (*planner.Shard, error) {
	routeLookups.Inc(1)

	idx := sort.Search(len(r.shards), func(i int) bool {
		return r.shards[i].Start > cell
	})
	if idx == 0 {
		// cell is before the first shard's start; still route it there
		// rather than fail, since Enumerate guarantees cell came from the
		// same domain the shard map was built over.
		idx = 1
	}
	return &r.shards[idx-1], nil
}

// ShardForPoint resolves (lat, lng) to its covering shard.
func (r *Router) ShardForPoint(lat, lng float64) (*planner.Shard, error) {
	if err := validateLocation(lat, lng); err != nil {
		return nil, err
	}
	cell := s2cell.CellIDFor(lat, lng, r.storageLevel)
	return r.ShardForCell(cell)
}

// ShardsForRadius returns every shard intersecting the spherical cap of
// angular radius radiusM/earthRadiusM centered at (lat, lng), covered by
// cells at exactly r.storageLevel, deduplicated preserving first-hit order.
func (r *Router) ShardsForRadius(lat, lng, radiusM, earthRadiusM float64) ([]*planner.Shard, error) {
	if err := validateLocation(lat, lng); err != nil {
		return nil, err
	}

	cells := s2cell.CoveringCap(lat, lng, radiusM, earthRadiusM, r.storageLevel)

	var out []*planner.Shard
	seen := make(map[string]struct{}, len(cells))
	for _, cell := range cells {
		shard, err := r.ShardForCell(cell)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[shard.Name]; ok {
			continue
		}
		seen[shard.Name] = struct{}{}
		out = append(out, shard)
	}
	return out, nil
}

// RouteUsers groups each user by the name of the shard covering its
// location, a bulk-write planning helper for seeding per-shard user
// indices.
func (r *Router) RouteUsers(users []scoring.UserLocation) (map[string][]scoring.UserLocation, error) {
	out := make(map[string][]scoring.UserLocation)
	for _, u := range users {
		shard, err := r.ShardForPoint(u.Lat, u.Lng)
		if err != nil {
			return nil, err
		}
		out[shard.Name] = append(out[shard.Name], u)
	}
	return out, nil
}
