package planner

import (
	"math"
	"testing"
)

func TestStandardDeviationReferenceVector(t *testing.T) {
	scores := []int32{9, 2, 5, 4, 12, 7, 8, 11, 9, 3, 7, 4, 12, 5, 4, 10, 9, 6, 9, 4}
	shards := make(ShardMap, len(scores))
	for i, s := range scores {
		shards[i] = Shard{CellScore: s}
	}

	got := StandardDeviation(shards)
	want := 2.9832867780352594

	if math.Abs(got-want) > 1e-12 {
		t.Errorf("StandardDeviation() = %v, want %v", got, want)
	}
}

func TestStandardDeviationEmpty(t *testing.T) {
	if got := StandardDeviation(nil); got != 0 {
		t.Errorf("StandardDeviation(nil) = %v, want 0", got)
	}
}
