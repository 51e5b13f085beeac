// Copyright (c) 2014 Couchbase, Inc.

// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
// except in compliance with the License. You may obtain a copy of the License at
//   http://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software distributed under the
// License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing permissions
// and limitations under the License.

// Package s2cell enumerates and addresses S2 cells at a fixed storage level.
// All externally visible functions take (lat, lng) in that order, never the
// reverse, to avoid the coordinate-order bugs the original source carried.
package s2cell

import (
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// CellID is the 64-bit S2 cell identifier at some fixed level.
type CellID uint64

// MinLevel and MaxLevel bound the practical storage levels this package
// accepts; S2 itself supports 0..30, spec.md narrows it to 1..15.
const (
	MinLevel = 1
	MaxLevel = 15
)

// CellIDFor returns the CellID of the cell at level covering (lat, lng).
func CellIDFor(lat, lng float64, level uint8) CellID {
	ll := s2.LatLngFromDegrees(lat, lng)
	id := s2.CellIDFromLatLng(ll).Parent(int(level))
	return CellID(id)
}

// Level returns the S2 level this cell id was truncated to.
func (c CellID) Level() int {
	return s2.CellID(c).Level()
}

// Parent returns the ancestor of c at level. Idempotent above the same level.
func (c CellID) Parent(level int) CellID {
	return CellID(s2.CellID(c).Parent(level))
}

// VertexNeighbors returns the up to four cells sharing a vertex with c at
// level, used by Enumerate to flood-fill the sphere.
func (c CellID) VertexNeighbors(level int) []CellID {
	raw := s2.CellID(c).VertexNeighbors(level)
	out := make([]CellID, len(raw))
	for i, n := range raw {
		out[i] = CellID(n)
	}
	return out
}

// Less gives CellID its total order.
func (c CellID) Less(o CellID) bool { return c < o }

// Token returns the canonical 1-16 hex character token form of the cell id.
func (c CellID) Token() string {
	return s2.CellID(c).ToToken()
}

// FromToken parses a cell token back into a CellID. The round trip with
// Token is exact and reversible.
func FromToken(token string) (CellID, error) {
	id := s2.CellIDFromToken(token)
	if !id.IsValid() {
		return 0, fmt.Errorf("s2cell: invalid token %q", token)
	}
	return CellID(id), nil
}

// capCoveringAtLevel returns the cell ids at level covering the spherical
// cap of angular radius radiusM/EarthRadiusM centered at (lat, lng).
func capCoveringAtLevel(lat, lng, radiusM, earthRadiusM float64, level uint8) []CellID {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	angle := s1.Angle(radiusM / earthRadiusM)
	cap := s2.CapFromCenterAngle(center, angle)

	coverer := &s2.RegionCoverer{
		MinLevel: int(level),
		MaxLevel: int(level),
		LevelMod: 0,
		MaxCells: 0,
	}
	union := coverer.Covering(cap)

	out := make([]CellID, len(union))
	for i, id := range union {
		out[i] = CellID(id)
	}
	return out
}

// CoveringCap is the exported entry point capCoveringAtLevel backs; kept as
// a free function (rather than a Router method) so router and any future
// caller share one cap-covering implementation.
func CoveringCap(lat, lng, radiusM, earthRadiusM float64, level uint8) []CellID {
	return capCoveringAtLevel(lat, lng, radiusM, earthRadiusM, level)
}
