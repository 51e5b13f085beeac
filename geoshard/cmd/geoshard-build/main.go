// Copyright (c) 2014 Couchbase, Inc.
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

// geoshard-build runs the offline build: enumerate cells at a storage level,
// score them, plan a balanced shard map, and persist it to the metadata
// store, matching the original's ahead-of-time GeoShard construction in
// recommendation_service/src/location/sharding.rs.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"os"
	"strconv"
	"strings"

	gocb "gopkg.in/couchbase/gocb.v1"

	"github.com/geoshard/partitioning/geoshard/config"
	"github.com/geoshard/partitioning/geoshard/logging"
	"github.com/geoshard/partitioning/geoshard/planner"
	"github.com/geoshard/partitioning/geoshard/s2cell"
	"github.com/geoshard/partitioning/geoshard/scoring"
	"github.com/geoshard/partitioning/geoshard/shardstore"
)

func main() {
	logging.Infof("geoshard-build started with command line: %v", os.Args)

	fset := flag.NewFlagSet("geoshard-build", flag.ContinueOnError)

	logLevel := fset.String("loglevel", "Info", "Log level - Silent, Fatal, Error, Warn, Info, Debug, Trace")
	storageLevel := fset.Int("level", int(config.DefaultStorageLevel), "S2 storage level, 1-15")
	minShard := fset.Int("minShard", config.DefaultMinShard, "Minimum acceptable shard count")
	maxShard := fset.Int("maxShard", config.DefaultMaxShard, "Maximum acceptable shard count")
	storeEndpoint := fset.String("storeEndpoint", "couchbase://127.0.0.1", "Couchbase connection string")
	bucketName := fset.String("bucket", "geoshard", "Couchbase bucket to store the shard map in")
	auth := fset.String("auth", "", "Couchbase admin user:password")
	usersCSV := fset.String("usersFile", "", "CSV file of uid,lat,lng to score by user count; empty uses uniform random scoring")
	uniformRange := fset.Int("uniformRange", 1000, "Upper bound (exclusive) for uniform random scoring, when usersFile is empty")
	snapshotPath := fset.String("snapshotOut", "", "Optional path to write a local snappy-compressed snapshot of the built shard map")
	ensureUserIndices := fset.Bool("ensureUserIndices", true, "Provision one per-shard N1QL user index after the build")

	if err := fset.Parse(os.Args[1:]); err != nil {
		config.CrashOnError(err)
	}

	logging.SetLogLevel(logging.LevelFromString(*logLevel))

	if *storageLevel < 1 || *storageLevel > 15 {
		config.CrashOnError(s2cell.ErrInvalidLevel{Level: uint8(*storageLevel)})
	}

	ctx := context.Background()

	cells, err := s2cell.Enumerate(ctx, uint8(*storageLevel))
	config.CrashOnError(err)
	logging.Infof("geoshard-build: enumerated %d cells at level %d", len(cells.Cells), *storageLevel)

	scorer, err := buildScorer(*usersCSV, int32(*uniformRange))
	config.CrashOnError(err)
	config.CrashOnError(scorer.Score(ctx, cells))

	shards, err := planner.Plan(cells, planner.Options{MinShard: *minShard, MaxShard: *maxShard})
	config.CrashOnError(err)
	logging.Infof("geoshard-build: planned %d shards", len(shards))

	username, password := splitAuth(*auth)
	cluster, err := gocb.Connect(*storeEndpoint)
	config.CrashOnError(err)
	if username != "" {
		config.CrashOnError(cluster.Authenticate(gocb.PasswordAuthenticator{Username: username, Password: password}))
	}
	bucket, err := cluster.OpenBucket(*bucketName, "")
	config.CrashOnError(err)
	defer bucket.Close()

	store := shardstore.NewStore(bucket, username, password)
	config.CrashOnError(store.Put(ctx, shards))

	if *ensureUserIndices {
		config.CrashOnError(store.EnsureUserIndices(ctx, shards))
	}

	if *snapshotPath != "" {
		config.CrashOnError(shardstore.WriteSnapshot(*snapshotPath, shards))
	}

	logging.Infof("geoshard-build: build complete, %d shards persisted", len(shards))
}

func splitAuth(auth string) (username, password string) {
	parts := strings.SplitN(auth, ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// buildScorer chooses UserCount scoring when a users CSV (uid,lat,lng) is
// given, falling back to UniformRandom otherwise — matching the original's
// test-fixture ("no real user data yet") build path.
func buildScorer(usersPath string, uniformRange int32) (scoring.Scorer, error) {
	if usersPath == "" {
		return scoring.UniformRandom{Range: uniformRange}, nil
	}

	f, err := os.Open(usersPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var users []scoring.UserLocation
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		lat, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, err
		}
		lng, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, err
		}
		users = append(users, scoring.UserLocation{UID: row[0], Lat: lat, Lng: lng})
	}
	return scoring.UserCount{Users: users}, nil
}
