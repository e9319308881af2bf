package planar

// referenceRotation is the clockwise rotation system of the 17-vertex
// reference triangulation, outer face (1, 2, 17).
var referenceRotation = map[int][]int{
	1:  {17, 6, 5, 4, 3, 2},
	2:  {1, 3, 7, 8, 9, 17},
	3:  {7, 2, 1, 4, 10},
	4:  {10, 3, 1, 5, 11, 12, 13},
	5:  {4, 1, 6, 11},
	6:  {14, 11, 5, 1, 17},
	7:  {8, 2, 3, 10},
	8:  {9, 2, 7, 10},
	9:  {2, 8, 10, 15, 17},
	10: {16, 15, 9, 8, 7, 3, 4, 13, 17},
	11: {12, 4, 5, 6, 14},
	12: {13, 4, 11, 14},
	13: {10, 4, 12, 14, 17},
	14: {13, 12, 11, 6, 17},
	15: {9, 10, 16, 17},
	16: {15, 10, 17},
	17: {2, 9, 15, 16, 10, 13, 14, 6, 1},
}

// ReferenceEmbedding returns the 17-vertex, 45-edge triangulation used as
// the canonical debugging instance. Its outer face is (1, 2, 17).
func ReferenceEmbedding() *Embedding {
	e, err := NewEmbedding(referenceRotation)
	if err != nil {
		panic("planar: invalid reference rotation: " + err.Error())
	}
	return e
}

// ReferenceGraph returns the graph of [ReferenceEmbedding].
func ReferenceGraph() *Graph {
	return ReferenceEmbedding().Graph()
}
