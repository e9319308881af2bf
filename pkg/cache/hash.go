package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/gridraw/pkg/planar"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GraphHash hashes the vertex and edge sets of g. Graphs that are equal
// in the sense of planar.Graph.Equal share a hash.
func GraphHash(g *planar.Graph) string {
	var b strings.Builder
	for _, v := range g.Vertices() {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "%d-%d,", e.U, e.V)
	}
	return Hash([]byte(b.String()))
}
