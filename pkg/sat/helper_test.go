package sat

import (
	"math/bits"
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

// minimumCodeSize enumerates all monitor sets of a small graph and returns the
// size of the smallest identifying code, -1 if there is none.
func minimumCodeSize(g *graph.Graph) int {
	best := -1
	for mask := uint(1); mask < 1<<g.Len(); mask++ {
		size := bits.OnesCount(mask)
		if best != -1 && size >= best {
			continue
		}
		var monitors []int
		for i := 0; i < g.Len(); i++ {
			if mask&(1<<i) != 0 {
				monitors = append(monitors, i)
			}
		}
		if graph.Verify(g, monitors) == nil {
			best = size
		}
	}
	return best
}
