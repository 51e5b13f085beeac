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
	gocb "gopkg.in/couchbase/gocb.v1"
)

// gocbBucket adapts a live *gocb.Bucket to the bucketClient interface, the
// only place this package touches the gocb.v1 API directly.
type gocbBucket struct {
	bucket   *gocb.Bucket
	username string
	password string
}

// NewStore wires a Store over an already-opened Couchbase bucket. username
// and password are the bucket-manager credentials used to create the N1QL
// indices Put and EnsureUserIndices need.
func NewStore(bucket *gocb.Bucket, username, password string) *Store {
	return &Store{bucket: &gocbBucket{bucket: bucket, username: username, password: password}}
}

func (g *gocbBucket) Upsert(key string, value interface{}, expiry uint32) error {
	_, err := g.bucket.Upsert(key, value, expiry)
	return err
}

func (g *gocbBucket) Get(key string, valuePtr interface{}) error {
	_, err := g.bucket.Get(key, valuePtr)
	return err
}

func (g *gocbBucket) Query(statement string) (rows, error) {
	results, err := g.bucket.ExecuteN1qlQuery(gocb.NewN1qlQuery(statement), nil)
	if err != nil {
		return nil, err
	}
	return gocbRows{results}, nil
}

func (g *gocbBucket) CreatePrimaryIndexIfNotExists() error {
	return g.bucket.Manager(g.username, g.password).CreatePrimaryIndex("", true, false)
}

func (g *gocbBucket) CreateIndexIfNotExists(name string, fields []string) error {
	return g.bucket.Manager(g.username, g.password).CreateIndex(name, fields, true, false)
}

// gocbRows embeds gocb.QueryResults so its Next/Close methods satisfy rows
// regardless of whatever additional methods the real interface carries.
type gocbRows struct {
	gocb.QueryResults
}
