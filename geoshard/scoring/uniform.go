// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

package scoring

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/geoshard/partitioning/geoshard/s2cell"
)

// UniformRandom scores every cell with a uniform integer in [0, Range), the
// test-fixture / ops-free index build strategy.
type UniformRandom struct {
	Range int32
	Rand  *rand.Rand // nil means a fresh source seeded with 1 on every Score call
}

func (u UniformRandom) Score(ctx context.Context, cells *s2cell.CellMap) error {
	if u.Range <= 0 {
		return fmt.Errorf("scoring: UniformRandom.Range must be positive, got %d", u.Range)
	}
	r := u.Rand
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	for i := range cells.Cells {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		cells.Cells[i].Score = r.Int31n(u.Range)
	}
	return nil
}
