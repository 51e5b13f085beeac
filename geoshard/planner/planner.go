// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

// Package planner turns a scored, ordered s2cell.CellMap into a balanced
// ShardMap: a contiguous-range partition of the cell domain that minimizes
// the population standard deviation of per-shard score, subject to
// [MinShard, MaxShard] shard count.
package planner

import (
	"fmt"
	"time"

	metrics "github.com/rcrowley/go-metrics"

	"github.com/geoshard/partitioning/geoshard/logging"
	"github.com/geoshard/partitioning/geoshard/s2cell"
)

// Shard is a named, contiguous range of S2 cells at one storage level.
type Shard struct {
	Name         string
	StorageLevel uint8
	Start        s2cell.CellID
	End          s2cell.CellID
	CellCount    uint32
	CellScore    int32
}

// ShardMap is a sequence of Shards sharing one storage level, sorted by
// Start. Plan returns it with count within [MinShard, MaxShard], except for
// a zero total score, where it returns a single shard.
type ShardMap []Shard

// ErrUnsatisfiableBalance is returned when no candidate container size in
// the sweep produces a shard count within [MinShard, MaxShard].
type ErrUnsatisfiableBalance struct {
	Level              uint8
	Total              int64
	MinShard, MaxShard int
}

func (e ErrUnsatisfiableBalance) Error() string {
	return fmt.Sprintf(
		"planner: no partition of level %d (total score %d) satisfies shard count in [%d, %d]",
		e.Level, e.Total, e.MinShard, e.MaxShard)
}

var sweepDuration = metrics.NewRegisteredTimer("planner.sweepDuration", metrics.DefaultRegistry)

// Options bounds the planner's candidate shard count.
type Options struct {
	MinShard int
	MaxShard int
}

// Plan runs the balanced 1-D range partition by bin-size sweep described in
// the spec: for each candidate container size in [total/MaxShard,
// total/MinShard], build a candidate shard map by greedily packing
// ascending cells, score it by population standard deviation of per-shard
// score, and keep the candidate with the lowest standard deviation (ties
// keep the first, i.e. lowest container size, seen).
func Plan(cells *s2cell.CellMap, opts Options) (ShardMap, error) {
	started := time.Now()
	defer func() { sweepDuration.Update(time.Since(started)) }()

	if len(cells.Cells) == 0 {
		return nil, fmt.Errorf("planner: empty cell map")
	}

	var total int64
	for _, c := range cells.Cells {
		total += int64(c.Score)
	}

	if total == 0 {
		logging.Infof("planner: total score is 0, returning single shard spanning the full domain")
		return ShardMap{{
			Name:         shardName(0),
			StorageLevel: cells.StorageLevel,
			Start:        cells.Cells[0].ID,
			End:          cells.Cells[len(cells.Cells)-1].ID,
			CellCount:    uint32(len(cells.Cells)),
			CellScore:    0,
		}}, nil
	}

	maxSize := total / int64(opts.MinShard)
	minSize := total / int64(opts.MaxShard)
	if maxSize < minSize {
		maxSize = minSize
	}

	var best ShardMap
	bestSigma := float64(-1)

	for containerSize := minSize; containerSize <= maxSize; containerSize++ {
		candidate := buildCandidate(cells, containerSize)
		sigma := StandardDeviation(candidate)
		logging.Tracef("planner: container_size=%d shards=%d sigma=%v", containerSize, len(candidate), sigma)

		if bestSigma < 0 || sigma < bestSigma {
			bestSigma = sigma
			best = candidate
		}
	}

	if len(best) < opts.MinShard || len(best) > opts.MaxShard {
		return nil, ErrUnsatisfiableBalance{
			Level:    cells.StorageLevel,
			Total:    total,
			MinShard: opts.MinShard,
			MaxShard: opts.MaxShard,
		}
	}

	logging.Infof("planner: chose plan with %d shards, sigma=%v", len(best), bestSigma)
	return best, nil
}

// buildCandidate packs cells ascending by CellID into shards of
// approximately containerSize score each, closing a shard (strict <
// predicate) the moment adding the next cell would reach containerSize. The
// first shard's Start is preset to the domain's first cell, per spec.md
// §9's fix to the source's lazily-initialized variant.
func buildCandidate(cells *s2cell.CellMap, containerSize int64) ShardMap {
	all := cells.Cells
	first := all[0]

	shard := Shard{
		Name:         shardName(0),
		StorageLevel: uint8(first.ID.Level()),
		Start:        first.ID,
	}

	var shards ShardMap
	count := 1

	for _, c := range all {
		if int64(shard.CellScore)+int64(c.Score) < containerSize {
			shard.CellScore += c.Score
			shard.CellCount++
			continue
		}

		shard.End = c.ID
		shards = append(shards, shard)

		shard = Shard{
			Name:         shardName(count),
			StorageLevel: uint8(c.ID.Level()),
			Start:        c.ID,
			CellScore:    c.Score,
		}
		count++
	}

	if shard.CellCount != 0 {
		last := all[len(all)-1]
		shard.End = last.ID
		shard.CellCount++
		shards = append(shards, shard)
	}

	return shards
}

func shardName(k int) string {
	return fmt.Sprintf("geoshard_user_index_%d", k)
}
