package canonical

// Reference returns the hand-made canonical ordering of the 17-vertex
// reference triangulation (see planar.ReferenceEmbedding). It differs from
// the ordering [Order] computes for the same graph.
func Reference() Ordering {
	return Ordering{
		{Vertex: 1},
		{Vertex: 2},
		{Vertex: 3, Neighbors: []int{1, 2}},
		{Vertex: 4, Neighbors: []int{1, 3}},
		{Vertex: 5, Neighbors: []int{1, 4}},
		{Vertex: 6, Neighbors: []int{1, 5}},
		{Vertex: 7, Neighbors: []int{3, 2}},
		{Vertex: 8, Neighbors: []int{7, 2}},
		{Vertex: 9, Neighbors: []int{8, 2}},
		{Vertex: 10, Neighbors: []int{4, 3, 7, 8, 9}},
		{Vertex: 11, Neighbors: []int{6, 5, 4}},
		{Vertex: 12, Neighbors: []int{11, 4}},
		{Vertex: 13, Neighbors: []int{12, 4, 10}},
		{Vertex: 14, Neighbors: []int{6, 11, 12, 13}},
		{Vertex: 15, Neighbors: []int{10, 9}},
		{Vertex: 16, Neighbors: []int{10, 15}},
		{Vertex: 17, Neighbors: []int{1, 6, 14, 13, 10, 16, 15, 9, 2}},
	}
}
