package scoring

import (
	"context"
	"math/rand"
	"testing"

	"github.com/geoshard/partitioning/geoshard/s2cell"
)

func buildCellMap(t *testing.T, level uint8) *s2cell.CellMap {
	t.Helper()
	cm, err := s2cell.Enumerate(context.Background(), level)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	return cm
}

func TestUniformRandomKeepsKeys(t *testing.T) {
	cm := buildCellMap(t, 2)
	before := make(map[s2cell.CellID]struct{}, len(cm.Cells))
	for _, c := range cm.Cells {
		before[c.ID] = struct{}{}
	}

	u := UniformRandom{Range: 100, Rand: rand.New(rand.NewSource(42))}
	if err := u.Score(context.Background(), cm); err != nil {
		t.Fatalf("Score: %v", err)
	}

	if len(cm.Cells) != len(before) {
		t.Fatalf("key count changed: got %d want %d", len(cm.Cells), len(before))
	}
	for _, c := range cm.Cells {
		if _, ok := before[c.ID]; !ok {
			t.Fatalf("unexpected new key %v", c.ID)
		}
		if c.Score < 0 || c.Score >= 100 {
			t.Fatalf("score %d out of range [0,100)", c.Score)
		}
	}
}

func TestUniformRandomInvalidRange(t *testing.T) {
	cm := buildCellMap(t, 1)
	u := UniformRandom{Range: 0}
	if err := u.Score(context.Background(), cm); err == nil {
		t.Error("expected error for non-positive Range")
	}
}

func TestUserCountBucketsUsersInDomain(t *testing.T) {
	cm := buildCellMap(t, 2)

	// (0,0) is the point Enumerate's BFS always seeds from, guaranteeing a
	// cell in the domain regardless of level.
	users := []UserLocation{
		{UID: "u1", Lat: 0, Lng: 0},
		{UID: "u2", Lat: 0, Lng: 0},
	}

	uc := UserCount{Users: users}
	if err := uc.Score(context.Background(), cm); err != nil {
		t.Fatalf("Score: %v", err)
	}

	var total int32
	for _, c := range cm.Cells {
		total += c.Score
	}
	if total != 2 {
		t.Errorf("expected total score 2 (2 users, both inside domain), got %d", total)
	}
}
