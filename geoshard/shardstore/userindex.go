// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

package shardstore

import (
	"context"
	"fmt"

	"github.com/geoshard/partitioning/geoshard/logging"
	"github.com/geoshard/partitioning/geoshard/planner"
)

// userIndexFields is the per-shard user index document schema of spec.md
// §6: uid, first_name, last_name, age, gender, location (geo_point). This
// mirrors the original's Elasticsearch UserIndex mapping
// (recommendation_service/src/elastic/indices.rs), translated to a
// Couchbase N1QL secondary index over the same field set.
var userIndexFields = []string{"uid", "first_name", "last_name", "age", "gender", "location"}

// EnsureUserIndices idempotently provisions one N1QL secondary index per
// shard, named after the shard, over the fields queue queries filter on.
// The documents themselves (per-user) are written by the external
// collaborator described in spec.md §1; this only provisions the index.
func (s *Store) EnsureUserIndices(ctx context.Context, shards planner.ShardMap) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	for _, shard := range shards {
		indexName := "idx_" + shard.Name
		if err := s.bucket.CreateIndexIfNotExists(indexName, userIndexFields); err != nil {
			return fmt.Errorf("%w: creating user index for shard %s: %v", ErrStoreUnavailable, shard.Name, err)
		}
		logging.Debugf("shardstore: ensured user index %s for shard %s", indexName, shard.Name)
	}
	return nil
}
