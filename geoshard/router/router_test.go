package router

import (
	"context"
	"testing"

	"github.com/geoshard/partitioning/geoshard/planner"
	"github.com/geoshard/partitioning/geoshard/s2cell"
	"github.com/geoshard/partitioning/geoshard/scoring"
)

func buildTestRouter(t *testing.T, level uint8) (*Router, *s2cell.CellMap) {
	t.Helper()
	cm, err := s2cell.Enumerate(context.Background(), level)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	u := scoring.UniformRandom{Range: 2000}
	if err := u.Score(context.Background(), cm); err != nil {
		t.Fatalf("Score: %v", err)
	}

	shards, err := planner.Plan(cm, planner.Options{MinShard: 40, MaxShard: 100})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	r, err := New(shards, level)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r, cm
}

func TestShardForCellExactlyOneMatch(t *testing.T) {
	r, cm := buildTestRouter(t, 4)

	for _, c := range cm.Cells {
		shard, err := r.ShardForCell(c.ID)
		if err != nil {
			t.Fatalf("ShardForCell(%v): %v", c.ID, err)
		}
		if c.ID < shard.Start || c.ID > shard.End {
			t.Errorf("cell %v not within returned shard [%v, %v]", c.ID, shard.Start, shard.End)
		}
	}
}

func TestShardForPointMatchesSpecS3(t *testing.T) {
	r, _ := buildTestRouter(t, 4)

	lat, lng := 34.181061, -103.345177
	shard, err := r.ShardForPoint(lat, lng)
	if err != nil {
		t.Fatalf("ShardForPoint: %v", err)
	}

	cell := s2cell.CellIDFor(lat, lng, 4)
	if cell < shard.Start || cell > shard.End {
		t.Errorf("cell %v not within [%v, %v]", cell, shard.Start, shard.End)
	}
}

func TestShardsForRadiusSmallReturnsOne(t *testing.T) {
	r, _ := buildTestRouter(t, 4)

	shards, err := r.ShardsForRadius(34.181061, -103.345177, 200, 6.37e6)
	if err != nil {
		t.Fatalf("ShardsForRadius: %v", err)
	}
	if len(shards) != 1 {
		t.Errorf("expected exactly 1 shard for a 200m radius at level 4, got %d", len(shards))
	}
}

func TestShardForPointInvalidLocation(t *testing.T) {
	r, _ := buildTestRouter(t, 4)

	cases := []struct{ lat, lng float64 }{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	}
	for _, c := range cases {
		if _, err := r.ShardForPoint(c.lat, c.lng); err == nil {
			t.Errorf("expected ErrInvalidLocation for (%v, %v)", c.lat, c.lng)
		}
	}
}

func TestNewEmptyShardMap(t *testing.T) {
	if _, err := New(nil, 4); err != ErrEmptyShardMap {
		t.Errorf("expected ErrEmptyShardMap, got %v", err)
	}
}

func TestRouteUsersGroupsByShard(t *testing.T) {
	r, _ := buildTestRouter(t, 4)

	users := []scoring.UserLocation{
		{UID: "a", Lat: 10, Lng: 10},
		{UID: "b", Lat: 10, Lng: 10},
		{UID: "c", Lat: -40, Lng: 150},
	}

	grouped, err := r.RouteUsers(users)
	if err != nil {
		t.Fatalf("RouteUsers: %v", err)
	}

	var total int
	for _, us := range grouped {
		total += len(us)
	}
	if total != len(users) {
		t.Errorf("expected %d total routed users, got %d", len(users), total)
	}
}

func TestTokenRoundTripAcrossShards(t *testing.T) {
	_, cm := buildTestRouter(t, 4)
	shards, err := planner.Plan(cm, planner.Options{MinShard: 40, MaxShard: 100})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	for _, s := range shards {
		startTok := s.Start.Token()
		gotStart, err := s2cell.FromToken(startTok)
		if err != nil || gotStart != s.Start {
			t.Errorf("start token round trip failed for shard %s", s.Name)
		}
		endTok := s.End.Token()
		gotEnd, err := s2cell.FromToken(endTok)
		if err != nil || gotEnd != s.End {
			t.Errorf("end token round trip failed for shard %s", s.Name)
		}
	}
}
