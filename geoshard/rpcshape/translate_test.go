package rpcshape

import (
	"context"
	"testing"

	"github.com/geoshard/partitioning/geoshard/config"
	"github.com/geoshard/partitioning/geoshard/planner"
	"github.com/geoshard/partitioning/geoshard/router"
	"github.com/geoshard/partitioning/geoshard/s2cell"
	"github.com/geoshard/partitioning/geoshard/scoring"
)

func testRouter(t *testing.T) *router.Router {
	t.Helper()
	cells, err := s2cell.Enumerate(context.Background(), 2)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if err := (scoring.UniformRandom{Range: 100}).Score(context.Background(), cells); err != nil {
		t.Fatalf("Score: %v", err)
	}
	shards, err := planner.Plan(cells, planner.Options{MinShard: 4, MaxShard: 10})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	r, err := router.New(shards, 2)
	if err != nil {
		t.Fatalf("router.New: %v", err)
	}
	return r
}

func TestShardNamesForQueue(t *testing.T) {
	r := testRouter(t)
	uid := "user-1"
	lat, lng, radius := 10.0, 20.0, 500000.0
	req := &QueueRequest{Uid: &uid, Latitude: &lat, Longitude: &lng, RadiusMeters: &radius}

	names, err := ShardNamesForQueue(context.Background(), r, req, config.EarthRadiusM)
	if err != nil {
		t.Fatalf("ShardNamesForQueue: %v", err)
	}
	if len(names) == 0 {
		t.Error("expected at least one shard name")
	}
}

func TestShardNamesForQueueCancelledContext(t *testing.T) {
	r := testRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lat, lng, radius := 10.0, 20.0, 500000.0
	req := &QueueRequest{Latitude: &lat, Longitude: &lng, RadiusMeters: &radius}
	if _, err := ShardNamesForQueue(ctx, r, req, config.EarthRadiusM); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestShardNameForUser(t *testing.T) {
	r := testRouter(t)
	name, err := ShardNameForUser(r, 10.0, 20.0)
	if err != nil {
		t.Fatalf("ShardNameForUser: %v", err)
	}
	if name == "" {
		t.Error("expected non-empty shard name")
	}
}

func TestShardNameForUserInvalidLocation(t *testing.T) {
	r := testRouter(t)
	if _, err := ShardNameForUser(r, 999.0, 20.0); err == nil {
		t.Error("expected error for invalid latitude")
	}
}
