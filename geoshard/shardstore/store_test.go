package shardstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/geoshard/partitioning/geoshard/planner"
	"github.com/geoshard/partitioning/geoshard/s2cell"
)

// fakeBucket is an in-memory bucketClient used so shardstore's tests never
// need a live Couchbase cluster.
type fakeBucket struct {
	docs           map[string][]byte
	primaryIndexed bool
	indices        map[string][]string
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{docs: map[string][]byte{}, indices: map[string][]string{}}
}

func (f *fakeBucket) Upsert(key string, value interface{}, expiry uint32) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.docs[key] = raw
	return nil
}

func (f *fakeBucket) Get(key string, valuePtr interface{}) error {
	raw, ok := f.docs[key]
	if !ok {
		return errNotFound
	}
	return json.Unmarshal(raw, valuePtr)
}

func (f *fakeBucket) Query(statement string) (rows, error) {
	docs := make([][]byte, 0, len(f.docs))
	for key, raw := range f.docs {
		if len(key) >= len(MetadataIndexName) && key[:len(MetadataIndexName)] == MetadataIndexName {
			docs = append(docs, raw)
		}
	}
	return &fakeRows{docs: docs}, nil
}

func (f *fakeBucket) CreatePrimaryIndexIfNotExists() error {
	f.primaryIndexed = true
	return nil
}

func (f *fakeBucket) CreateIndexIfNotExists(name string, fields []string) error {
	f.indices[name] = fields
	return nil
}

type fakeRows struct {
	docs [][]byte
	pos  int
}

func (r *fakeRows) Next(valuePtr interface{}) bool {
	if r.pos >= len(r.docs) {
		return false
	}
	if err := json.Unmarshal(r.docs[r.pos], valuePtr); err != nil {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Close() error { return nil }

type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var errNotFound = notFoundError{}

func testShardMap(t *testing.T) planner.ShardMap {
	t.Helper()
	cm, err := s2cell.Enumerate(context.Background(), 2)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	return planner.ShardMap{
		{Name: "geoshard_user_index_0", StorageLevel: 2, Start: cm.Cells[0].ID, End: cm.Cells[len(cm.Cells)/2].ID, CellCount: 10, CellScore: 100},
		{Name: "geoshard_user_index_1", StorageLevel: 2, Start: cm.Cells[len(cm.Cells)/2].ID, End: cm.Cells[len(cm.Cells)-1].ID, CellCount: 10, CellScore: 200},
	}
}

func TestPutThenGetRoundTrip(t *testing.T) {
	fb := newFakeBucket()
	store := &Store{bucket: fb}

	shards := testShardMap(t)
	if err := store.Put(context.Background(), shards); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !fb.primaryIndexed {
		t.Error("expected CreatePrimaryIndexIfNotExists to be called")
	}

	got, err := store.Get(context.Background(), 100)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != len(shards) {
		t.Fatalf("got %d shards, want %d", len(got), len(shards))
	}

	byName := make(map[string]planner.Shard, len(got))
	for _, s := range got {
		byName[s.Name] = s
	}
	for _, want := range shards {
		got, ok := byName[want.Name]
		if !ok {
			t.Fatalf("missing shard %s after round trip", want.Name)
		}
		if got != want {
			t.Errorf("shard %s round-tripped differently: got %+v want %+v", want.Name, got, want)
		}
	}
}

func TestGetAbsentShardMap(t *testing.T) {
	fb := newFakeBucket()
	store := &Store{bucket: fb}

	_, err := store.Get(context.Background(), 100)
	if err != ErrShardMapAbsent {
		t.Errorf("expected ErrShardMapAbsent, got %v", err)
	}
}

func TestGetContextCancelled(t *testing.T) {
	fb := newFakeBucket()
	store := &Store{bucket: fb}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Get(ctx, 100); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestEnsureUserIndices(t *testing.T) {
	fb := newFakeBucket()
	store := &Store{bucket: fb}

	shards := testShardMap(t)
	if err := store.EnsureUserIndices(context.Background(), shards); err != nil {
		t.Fatalf("EnsureUserIndices: %v", err)
	}
	for _, s := range shards {
		if _, ok := fb.indices["idx_"+s.Name]; !ok {
			t.Errorf("expected index for shard %s", s.Name)
		}
	}
}
