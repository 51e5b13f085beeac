// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

package planner

import "math"

// StandardDeviation returns the population standard deviation of per-shard
// CellScore across shards. Returns 0 for an empty ShardMap.
func StandardDeviation(shards ShardMap) float64 {
	if len(shards) == 0 {
		return 0
	}

	var sum float64
	for _, s := range shards {
		sum += float64(s.CellScore)
	}
	mean := sum / float64(len(shards))

	var variance float64
	for _, s := range shards {
		d := float64(s.CellScore) - mean
		variance += d * d
	}
	variance /= float64(len(shards))

	return math.Sqrt(variance)
}
