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
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/snappy"

	"github.com/geoshard/partitioning/geoshard/logging"
	"github.com/geoshard/partitioning/geoshard/planner"
)

// WriteSnapshot persists a snappy-compressed JSON snapshot of shards to
// path, consulted by ReadSnapshot on geoshardd boot to avoid a Couchbase
// round trip on every restart. This is a local cache only; Couchbase
// remains the durable source of truth, and a boot that finds a missing or
// undecodable snapshot falls back to Store.Get. A snapshot that decodes is
// used as-is; it is not checked against the store for staleness.
func WriteSnapshot(path string, shards planner.ShardMap) error {
	raw, err := json.Marshal(shards)
	if err != nil {
		return fmt.Errorf("shardstore: encoding snapshot: %w", err)
	}
	compressed := snappy.Encode(nil, raw)
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("shardstore: writing snapshot %s: %w", path, err)
	}
	logging.Infof("shardstore: wrote snapshot of %d shards to %s (%d bytes)", len(shards), path, len(compressed))
	return nil
}

// ReadSnapshot loads and decompresses a snapshot written by WriteSnapshot.
// Any error (missing file, corrupt data) is non-fatal to the caller, which
// should fall back to Store.Get.
func ReadSnapshot(path string) (planner.ShardMap, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shardstore: reading snapshot %s: %w", path, err)
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing snapshot: %v", ErrDecodeError, err)
	}
	var shards planner.ShardMap
	if err := json.Unmarshal(raw, &shards); err != nil {
		return nil, fmt.Errorf("%w: decoding snapshot: %v", ErrDecodeError, err)
	}
	return shards, nil
}
