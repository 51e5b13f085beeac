// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/geoshard/partitioning/geoshard/logging"
	"github.com/geoshard/partitioning/geoshard/s2cell"
)

// PlanParallel is the worker-pool form of Plan: the bin-size sweep is
// trivially parallelizable across candidate container sizes (spec.md §5),
// so this fans candidates out over workers goroutines and reduces by
// minimum sigma, with a deterministic tie-break on the lowest container
// size regardless of completion order. Cancelling ctx stops any worker that
// has not yet started its candidate; in-flight candidates run to
// completion.
func PlanParallel(ctx context.Context, cells *s2cell.CellMap, opts Options, workers int) (ShardMap, error) {
	started := time.Now()
	defer func() { sweepDuration.Update(time.Since(started)) }()

	if len(cells.Cells) == 0 {
		return nil, fmt.Errorf("planner: empty cell map")
	}
	if workers < 1 {
		workers = 1
	}

	var total int64
	for _, c := range cells.Cells {
		total += int64(c.Score)
	}

	if total == 0 {
		return Plan(cells, opts)
	}

	maxSize := total / int64(opts.MinShard)
	minSize := total / int64(opts.MaxShard)
	if maxSize < minSize {
		maxSize = minSize
	}

	type result struct {
		containerSize int64
		shards        ShardMap
		sigma         float64
	}

	sizes := make([]int64, 0, maxSize-minSize+1)
	for cs := minSize; cs <= maxSize; cs++ {
		sizes = append(sizes, cs)
	}

	results := make([]result, len(sizes))

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)
	var mu sync.Mutex

	for i, cs := range sizes {
		i, cs := i, cs
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			candidate := buildCandidate(cells, cs)
			sigma := StandardDeviation(candidate)

			mu.Lock()
			results[i] = result{containerSize: cs, shards: candidate, sigma: sigma}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var best ShardMap
	bestSigma := float64(-1)
	for _, r := range results {
		if bestSigma < 0 || r.sigma < bestSigma {
			bestSigma = r.sigma
			best = r.shards
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

	logging.Infof("planner: PlanParallel chose plan with %d shards, sigma=%v", len(best), bestSigma)
	return best, nil
}
