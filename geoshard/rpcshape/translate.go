package rpcshape

import (
	"context"
	"fmt"

	"github.com/geoshard/partitioning/geoshard/router"
)

// ShardNamesForQueue resolves the shards a GetQueue request must fan out to,
// the one piece of the original's service.rs get_queue handler
// (user_shards := searcher.get_shards_from_radius(...)) that belongs to this
// core; everything past the shard name list (N1QL/ES filtering by age_range
// and gender, streaming the response) is the external RPC layer's job per
// spec.md §1.
func ShardNamesForQueue(ctx context.Context, r *router.Router, req *QueueRequest, earthRadiusM float64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("rpcshape: %w", err)
	}

	shards, err := r.ShardsForRadius(req.GetLatitude(), req.GetLongitude(), req.GetRadiusMeters(), earthRadiusM)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(shards))
	for i, s := range shards {
		names[i] = s.Name
	}
	return names, nil
}

// ShardNameForUser resolves the single shard a user's own document lives in,
// mirroring the original's searcher.get_shard_from_lng_lat lookup used to
// fetch the requesting user's own profile alongside their queue.
func ShardNameForUser(r *router.Router, lat, lng float64) (string, error) {
	shard, err := r.ShardForPoint(lat, lng)
	if err != nil {
		return "", err
	}
	return shard.Name, nil
}
