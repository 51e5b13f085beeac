package s2cell

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	tests := []struct {
		lat, lng float64
		level    uint8
	}{
		{0, 0, 7},
		{34.181061, -103.345177, 4},
		{-90, 180, 10},
		{89.999, -179.999, 1},
	}

	for _, tt := range tests {
		id := CellIDFor(tt.lat, tt.lng, tt.level)
		token := id.Token()
		got, err := FromToken(token)
		if err != nil {
			t.Fatalf("FromToken(%q): %v", token, err)
		}
		if got != id {
			t.Errorf("round trip mismatch: lat=%v lng=%v level=%v: got %v want %v", tt.lat, tt.lng, tt.level, got, id)
		}
	}
}

func TestFromTokenInvalid(t *testing.T) {
	if _, err := FromToken("not-a-token-!!"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestParentIdempotent(t *testing.T) {
	id := CellIDFor(10, 10, 10)
	p1 := id.Parent(4)
	p2 := p1.Parent(4)
	if p1 != p2 {
		t.Errorf("Parent not idempotent: %v != %v", p1, p2)
	}
}

func TestVertexNeighborsCount(t *testing.T) {
	id := CellIDFor(0, 0, 6)
	neighbors := id.VertexNeighbors(6)
	if len(neighbors) == 0 || len(neighbors) > 4 {
		t.Errorf("expected 1-4 vertex neighbors, got %d", len(neighbors))
	}
}

func TestCoveringCapNonEmpty(t *testing.T) {
	cells := CoveringCap(34.181061, -103.345177, 200, 6.37e6, 4)
	if len(cells) == 0 {
		t.Error("expected at least one covering cell")
	}
}
