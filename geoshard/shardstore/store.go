// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

// Package shardstore persists and retrieves the ShardMap as durable
// metadata, backed by Couchbase via gocb.v1 — the teacher's own directly
// required document store client. The metadata lives under the fixed
// document-key namespace geoshard_mapping_index/<shard.name>; per-shard
// user data indices are provisioned (but not populated) by
// EnsureUserIndices, matching the external per-shard data-index boundary
// spec.md §1 places outside this core's scope.
package shardstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/geoshard/partitioning/geoshard/logging"
	"github.com/geoshard/partitioning/geoshard/planner"
)

// MetadataIndexName is the fixed index the shard map is persisted under.
const MetadataIndexName = "geoshard_mapping_index"

// Sentinel errors matching spec.md §7.
var (
	ErrStoreUnavailable = errors.New("shardstore: store unavailable")
	ErrShardMapAbsent   = errors.New("shardstore: metadata index empty, no shard map found")
	ErrDecodeError      = errors.New("shardstore: shard document does not match schema")
)

// rows is the cursor shape a query result must offer; gocbRows (adapter.go)
// wraps the real gocb.v1 QueryResults to satisfy it.
type rows interface {
	Next(valuePtr interface{}) bool
	Close() error
}

// bucketClient is the narrow slice of document-store behavior this package
// needs. NewStore wires a real Couchbase bucket through the gocbBucket
// adapter (adapter.go); tests wire an in-memory fake instead.
type bucketClient interface {
	Upsert(key string, value interface{}, expiry uint32) error
	Get(key string, valuePtr interface{}) error
	Query(statement string) (rows, error)
	CreatePrimaryIndexIfNotExists() error
	CreateIndexIfNotExists(name string, fields []string) error
}

// shardDoc is the on-the-wire document shape for one shard, matching the
// metadata index document schema of spec.md §6 exactly: cell ids are
// stored as their hex tokens, never raw integers.
type shardDoc struct {
	Name         string `json:"name"`
	StorageLevel int64  `json:"storage_level"`
	Start        string `json:"start"`
	End          string `json:"end"`
	CellCount    int32  `json:"cell_count"`
	CellScore    int32  `json:"cell_score"`
}

// Store is the Couchbase-backed ShardMapStore.
type Store struct {
	bucket bucketClient
}

func docKey(shardName string) string {
	return MetadataIndexName + "/" + shardName
}

// Put creates the metadata index if absent, then writes each shard as one
// document keyed by shard.name.
func (s *Store) Put(ctx context.Context, shards planner.ShardMap) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := s.bucket.CreatePrimaryIndexIfNotExists(); err != nil {
		return fmt.Errorf("%w: creating primary index: %v", ErrStoreUnavailable, err)
	}

	buildID := uuid.New().String()
	logging.Infof("shardstore: writing %d shards under build %s", len(shards), buildID)

	for _, shard := range shards {
		doc := shardDoc{
			Name:         shard.Name,
			StorageLevel: int64(shard.StorageLevel),
			Start:        shard.Start.Token(),
			End:          shard.End.Token(),
			CellCount:    int32(shard.CellCount),
			CellScore:    shard.CellScore,
		}
		if err := s.bucket.Upsert(docKey(shard.Name), doc, 0); err != nil {
			return fmt.Errorf("%w: upserting shard %s: %v", ErrStoreUnavailable, shard.Name, err)
		}
	}
	return nil
}

// Get reads up to maxShard documents from the metadata index and returns
// them in ascending-Start order.
func (s *Store) Get(ctx context.Context, maxShard int) (planner.ShardMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	stmt := fmt.Sprintf(
		"SELECT name, storage_level, start, `end`, cell_count, cell_score "+
			"FROM `%s` WHERE meta().id LIKE '%s/%%' LIMIT %d",
		MetadataIndexName, MetadataIndexName, maxShard)

	cursor, err := s.bucket.Query(stmt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var shards planner.ShardMap
	var row shardDoc
	for cursor.Next(&row) {
		shard, err := fromDoc(row)
		if err != nil {
			return nil, err
		}
		shards = append(shards, shard)
	}
	if err := cursor.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if len(shards) == 0 {
		return nil, ErrShardMapAbsent
	}

	sort.Slice(shards, func(i, j int) bool { return shards[i].Start < shards[j].Start })
	return shards, nil
}

func fromDoc(d shardDoc) (planner.Shard, error) {
	start, err := parseToken(d.Start)
	if err != nil {
		return planner.Shard{}, err
	}
	end, err := parseToken(d.End)
	if err != nil {
		return planner.Shard{}, err
	}
	if d.Name == "" || d.StorageLevel < 0 {
		return planner.Shard{}, fmt.Errorf("%w: shard %q missing required fields", ErrDecodeError, d.Name)
	}
	return planner.Shard{
		Name:         d.Name,
		StorageLevel: uint8(d.StorageLevel),
		Start:        start,
		End:          end,
		CellCount:    uint32(d.CellCount),
		CellScore:    d.CellScore,
	}, nil
}
