package reducer

import (
	"strings"

	"github.com/identifying-codes/mics/pkg/graph"
	"gonum.org/v1/gonum/mat"
)

func newGraph(edges string) *graph.Graph {
	g, err := graph.ReadEdgeList("test.txt", strings.NewReader(edges))
	if err != nil {
		panic(err)
	}
	return g
}

// newRandomGraph builds a graph over n nodes, pairs[k] decides about the k-th
// pair (i, j), i < j, in row order.
func newRandomGraph(n int, pairs []bool) *graph.Graph {
	adj := mat.NewSymDense(n, nil)
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if k < len(pairs) && pairs[k] {
				adj.SetSym(i, j, 1)
			}
			k++
		}
	}
	g, err := graph.New(graph.ConsecutiveLabels(n), adj)
	if err != nil {
		panic(err)
	}
	return g
}
