// Copyright (c) 2014 Couchbase, Inc.
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

// geoshardd is the routing service entrypoint: it loads a built ShardMap
// (preferring a local snapshot over a Couchbase round trip), builds a
// Router over it, and serves an HTTP admin surface (health, metrics, a
// point-to-shard lookup and a radius-to-shard-names lookup) the way
// MainRecommendactionService::new in the
// original's service.rs loads shards once for the process lifetime.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gocb "gopkg.in/couchbase/gocb.v1"

	"github.com/geoshard/partitioning/geoshard/config"
	"github.com/geoshard/partitioning/geoshard/logging"
	"github.com/geoshard/partitioning/geoshard/planner"
	"github.com/geoshard/partitioning/geoshard/router"
	"github.com/geoshard/partitioning/geoshard/rpcshape"
	"github.com/geoshard/partitioning/geoshard/shardstore"
)

func main() {
	logging.Infof("geoshardd started with command line: %v", os.Args)

	fset := flag.NewFlagSet("geoshardd", flag.ContinueOnError)

	logLevel := fset.String("loglevel", "Info", "Log level - Silent, Fatal, Error, Warn, Info, Debug, Trace")
	storageLevel := fset.Int("level", int(config.DefaultStorageLevel), "S2 storage level the loaded shard map partitions")
	maxShard := fset.Int("maxShard", config.DefaultMaxShard, "Maximum rows fetched from the metadata store on a cold load")
	storeEndpoint := fset.String("storeEndpoint", "couchbase://127.0.0.1", "Couchbase connection string")
	bucketName := fset.String("bucket", "geoshard", "Couchbase bucket the shard map is stored in")
	auth := fset.String("auth", "", "Couchbase admin user:password")
	snapshotPath := fset.String("snapshot", "", "Optional path to a local snapshot consulted before the store round trip")
	listenAddr := fset.String("listenAddr", ":9200", "HTTP admin/routing listen address")

	if err := fset.Parse(os.Args[1:]); err != nil {
		config.CrashOnError(err)
	}

	logging.SetLogLevel(logging.LevelFromString(*logLevel))

	shards, err := loadShardMap(*snapshotPath, *storeEndpoint, *bucketName, *auth, *maxShard)
	config.CrashOnError(err)

	r, err := router.New(shards, uint8(*storageLevel))
	config.CrashOnError(err)

	logging.Infof("geoshardd: serving %d shards on %s", len(shards), *listenAddr)

	srv := newServer(r)
	config.CrashOnError(http.ListenAndServe(*listenAddr, srv))
}

// loadShardMap prefers a local snapshot (avoids a Couchbase round trip on
// every restart) and falls back to the durable store on miss or decode
// error, per SPEC_FULL.md §7's snapshot-caching elaboration.
func loadShardMap(snapshotPath, storeEndpoint, bucketName, auth string, maxShard int) (planner.ShardMap, error) {
	if snapshotPath != "" {
		if shards, err := shardstore.ReadSnapshot(snapshotPath); err == nil {
			logging.Infof("geoshardd: loaded %d shards from snapshot %s", len(shards), snapshotPath)
			return shards, nil
		} else {
			logging.Warnf("geoshardd: snapshot %s unusable (%v), falling back to store", snapshotPath, err)
		}
	}

	username, password := splitAuth(auth)
	cluster, err := gocb.Connect(storeEndpoint)
	if err != nil {
		return nil, err
	}
	if username != "" {
		if err := cluster.Authenticate(gocb.PasswordAuthenticator{Username: username, Password: password}); err != nil {
			return nil, err
		}
	}
	bucket, err := cluster.OpenBucket(bucketName, "")
	if err != nil {
		return nil, err
	}
	defer bucket.Close()

	store := shardstore.NewStore(bucket, username, password)
	shards, err := store.Get(context.Background(), maxShard)
	if err != nil {
		return nil, err
	}

	if snapshotPath != "" {
		if err := shardstore.WriteSnapshot(snapshotPath, shards); err != nil {
			logging.Warnf("geoshardd: failed to refresh snapshot %s: %v", snapshotPath, err)
		}
	}
	return shards, nil
}

func splitAuth(auth string) (username, password string) {
	parts := strings.SplitN(auth, ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

func newServer(r *router.Router) *mux.Router {
	m := mux.NewRouter()
	m.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	m.Handle("/metrics", promhttp.Handler())
	m.HandleFunc("/shards", func(w http.ResponseWriter, req *http.Request) {
		lat, lng := parseFloatQuery(req, "lat"), parseFloatQuery(req, "lng")
		shard, err := r.ShardForPoint(lat, lng)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(shard)
	})
	m.HandleFunc("/queue", func(w http.ResponseWriter, req *http.Request) {
		lat, lng := parseFloatQuery(req, "lat"), parseFloatQuery(req, "lng")
		radius := parseFloatQuery(req, "radiusMeters")
		shardReq := &rpcshape.QueueRequest{Latitude: &lat, Longitude: &lng, RadiusMeters: &radius}
		names, err := rpcshape.ShardNamesForQueue(req.Context(), r, shardReq, config.EarthRadiusM)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(names)
	})
	return m
}

func parseFloatQuery(req *http.Request, key string) float64 {
	v, _ := strconv.ParseFloat(req.URL.Query().Get(key), 64)
	return v
}
