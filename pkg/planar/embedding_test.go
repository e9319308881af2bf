package planar

import (
	"errors"
	"slices"
	"testing"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
)

func TestNewEmbeddingErrors(t *testing.T) {
	tests := []struct {
		name string
		rot  map[int][]int
		want error
	}{
		{"asymmetric", map[int][]int{1: {2}, 2: {}}, ErrAsymmetricRotation},
		{"duplicate", map[int][]int{1: {2, 2}, 2: {1}}, ErrDuplicateNeighbor},
		{"self loop", map[int][]int{1: {1}}, ErrSelfLoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEmbedding(tt.rot)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewEmbedding() error = %v, want %v", err, tt.want)
			}
			if !gerr.Is(err, gerr.ErrCodeInvalidEmbedding) {
				t.Errorf("code = %q, want %q", gerr.GetCode(err), gerr.ErrCodeInvalidEmbedding)
			}
		})
	}
}

func TestEmbeddingRotationQueries(t *testing.T) {
	e := ReferenceEmbedding()
	if e.CW(1, 2) != 17 {
		t.Errorf("CW(1, 2) = %d, want 17", e.CW(1, 2))
	}
	if e.CCW(1, 17) != 2 {
		t.Errorf("CCW(1, 17) = %d, want 2", e.CCW(1, 17))
	}
	if e.CW(1, 9) != 0 {
		t.Errorf("CW(1, 9) = %d, want 0 for a non-neighbor", e.CW(1, 9))
	}

	m := e.Mirror()
	if m.CCW(1, 2) != 17 {
		t.Errorf("Mirror().CCW(1, 2) = %d, want 17", m.CCW(1, 2))
	}
	r := e.Rotation(16)
	r[0] = 99
	if e.Rotation(16)[0] == 99 {
		t.Error("Rotation() must return a copy")
	}
}

func TestReferenceEmbedding(t *testing.T) {
	e := ReferenceEmbedding()
	if e.Len() != 17 {
		t.Errorf("Len() = %d, want 17", e.Len())
	}
	if e.Graph().EdgeCount() != 45 {
		t.Errorf("EdgeCount() = %d, want 45", e.Graph().EdgeCount())
	}
	if err := e.CheckTriangulated(); err != nil {
		t.Errorf("CheckTriangulated() = %v", err)
	}
	if got := len(e.Faces()); got != 2*17-4 {
		t.Errorf("len(Faces()) = %d, want %d", got, 2*17-4)
	}
}

func TestCheckTriangulatedRejects(t *testing.T) {
	// A square with one diagonal missing has a 4-face on each side.
	square, err := NewEmbedding(map[int][]int{
		1: {4, 2},
		2: {1, 3},
		3: {2, 4},
		4: {3, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := square.CheckTriangulated(); !gerr.Is(err, gerr.ErrCodeNotTriangulated) {
		t.Errorf("square: CheckTriangulated() = %v, want NOT_TRIANGULATED", err)
	}

	// K4 with a scrambled rotation at one vertex is not a plane embedding.
	bad, err := NewEmbedding(map[int][]int{
		1: {3, 2, 4},
		2: {1, 3, 4},
		3: {2, 1, 4},
		4: {1, 3, 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := bad.CheckTriangulated(); !gerr.Is(err, gerr.ErrCodeNotPlanar) {
		t.Errorf("scrambled K4: CheckTriangulated() = %v, want NOT_PLANAR", err)
	}

	edge, _ := NewEmbedding(map[int][]int{1: {2}, 2: {1}})
	if err := edge.CheckTriangulated(); !gerr.Is(err, gerr.ErrCodeInvalidInputSize) {
		t.Errorf("edge: CheckTriangulated() = %v, want INVALID_INPUT_SIZE", err)
	}
}

func TestGenerateStacked(t *testing.T) {
	if _, err := GenerateStacked(2, 1); !gerr.Is(err, gerr.ErrCodeInvalidInputSize) {
		t.Errorf("GenerateStacked(2) error = %v, want INVALID_INPUT_SIZE", err)
	}

	k4, err := GenerateStacked(4, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := map[int][]int{1: {3, 2, 4}, 2: {1, 3, 4}, 3: {2, 1, 4}, 4: {1, 2, 3}}
	for v, r := range want {
		if got := k4.Rotation(v); !slices.Equal(got, r) {
			t.Errorf("K4 rotation(%d) = %v, want %v", v, got, r)
		}
	}

	for n := 3; n <= 40; n++ {
		for seed := uint64(0); seed < 5; seed++ {
			e, err := GenerateStacked(n, seed)
			if err != nil {
				t.Fatalf("GenerateStacked(%d, %d) error = %v", n, seed, err)
			}
			if e.Graph().EdgeCount() != 3*n-6 {
				t.Errorf("n=%d seed=%d: EdgeCount() = %d, want %d", n, seed, e.Graph().EdgeCount(), 3*n-6)
			}
			if err := e.CheckTriangulated(); err != nil {
				t.Errorf("n=%d seed=%d: CheckTriangulated() = %v", n, seed, err)
			}
			if n > 3 && e.CW(1, 2) != n {
				t.Errorf("n=%d seed=%d: CW(1, 2) = %d, want %d", n, seed, e.CW(1, 2), n)
			}
		}
	}
}

func TestGenerateStackedDeterministic(t *testing.T) {
	a, _ := GenerateStacked(25, 7)
	b, _ := GenerateStacked(25, 7)
	if a.String() != b.String() {
		t.Error("same seed produced different embeddings")
	}
}
