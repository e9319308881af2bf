package planar

import (
	"math/rand/v2"
	"slices"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
)

// face is an inner face listed counterclockwise.
type face struct{ a, b, c int }

// GenerateStacked returns a random stacked triangulation on vertices 1..n
// together with its rotation system.
//
// The construction starts from the triangle (1, 2, 3), inserts each of the
// vertices 4..n-1 into a uniformly chosen inner face and finally connects n
// to 1, 2 and 3 from outside. The outer face of the result is (1, 2, n), and
// the rotations follow the package orientation so that CW(1, 2) == n.
//
// The same seed always yields the same embedding.
func GenerateStacked(n int, seed uint64) (*Embedding, error) {
	if n < 3 {
		return nil, gerr.New(gerr.ErrCodeInvalidInputSize, "need at least 3 vertices, got %d", n)
	}
	rot := map[int][]int{
		1: {3, 2},
		2: {1, 3},
		3: {2, 1},
	}
	if n == 3 {
		return NewEmbedding(rot)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	faces := []face{{1, 2, 3}}
	for x := 4; x < n; x++ {
		i := rng.IntN(len(faces))
		f := faces[i]
		stack(rot, f, x)
		faces = slices.Replace(faces, i, i+1,
			face{f.a, f.b, x}, face{f.b, f.c, x}, face{f.c, f.a, x})
	}
	// The outer face seen from inside is (1, 3, 2).
	stack(rot, face{1, 3, 2}, n)
	return NewEmbedding(rot)
}

// stack inserts x into face f and wires it to the three corners.
func stack(rot map[int][]int, f face, x int) {
	rot[f.a] = insertAfter(rot[f.a], f.c, x)
	rot[f.b] = insertAfter(rot[f.b], f.a, x)
	rot[f.c] = insertAfter(rot[f.c], f.b, x)
	rot[x] = []int{f.a, f.c, f.b}
}

func insertAfter(r []int, after, x int) []int {
	i := slices.Index(r, after)
	return slices.Insert(r, i+1, x)
}
