// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

// Package scoring assigns an integer load score to every cell of a
// s2cell.CellMap. The planner treats a Scorer polymorphically through this
// one-method interface; only one strategy is usually linked into a given
// build binary, so dispatch is effectively static.
package scoring

import (
	"context"

	"github.com/geoshard/partitioning/geoshard/s2cell"
)

// Scorer scores every cell of cells in place. It must not insert or remove
// keys; only Score fields may change.
type Scorer interface {
	Score(ctx context.Context, cells *s2cell.CellMap) error
}
