package graph

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Graph is an undirected graph stored as a dense symmetric 0/1 adjacency matrix.
// Node i carries the label labels[i]; labels are unique.
type Graph struct {
	labels []string
	index  map[string]int
	adj    *mat.SymDense
}

// New creates a graph from node labels and a symmetric adjacency matrix. Every
// non-zero entry is treated as an edge. The matrix is copied.
func New(labels []string, adj mat.Symmetric) (*Graph, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("graph must contain at least one node")
	}
	if n := adj.SymmetricDim(); n != len(labels) {
		return nil, fmt.Errorf("got %d labels for a %dx%d adjacency matrix", len(labels), n, n)
	}
	g := &Graph{
		labels: make([]string, len(labels)),
		index:  make(map[string]int, len(labels)),
		adj:    mat.NewSymDense(len(labels), nil),
	}
	copy(g.labels, labels)
	for i, l := range g.labels {
		if _, exists := g.index[l]; exists {
			return nil, fmt.Errorf("duplicate node label %q", l)
		}
		g.index[l] = i
	}
	for i := range g.labels {
		for j := i; j < len(g.labels); j++ {
			if adj.At(i, j) != 0 {
				g.adj.SetSym(i, j, 1)
			}
		}
	}
	return g, nil
}

// ConsecutiveLabels returns the labels "1".."n".
func ConsecutiveLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return labels
}

func (g *Graph) Len() int {
	return len(g.labels)
}

func (g *Graph) Label(i int) string {
	return g.labels[i]
}

func (g *Graph) Labels() []string {
	labels := make([]string, len(g.labels))
	copy(labels, g.labels)
	return labels
}

// IndexOf returns the matrix index of the node with the given label.
func (g *Graph) IndexOf(label string) (int, bool) {
	i, ok := g.index[label]
	return i, ok
}

// Adjacent reports whether i and j share an edge. The diagonal is whatever the
// source matrix contained.
func (g *Graph) Adjacent(i, j int) bool {
	return g.adj.At(i, j) != 0
}

// Matrix returns a copy of the adjacency matrix.
func (g *Graph) Matrix() *mat.SymDense {
	m := mat.NewSymDense(g.Len(), nil)
	m.CopySym(g.adj)
	return m
}

// EdgeCount returns the number of undirected edges, self loops excluded.
func (g *Graph) EdgeCount() int {
	count := 0
	for i := range g.labels {
		for j := i + 1; j < len(g.labels); j++ {
			if g.Adjacent(i, j) {
				count++
			}
		}
	}
	return count
}

// ClosedNeighborhood returns N[i], the sorted indices of i and all of its neighbors.
func (g *Graph) ClosedNeighborhood(i int) []int {
	var nb []int
	for j := range g.labels {
		if j == i || g.Adjacent(i, j) {
			nb = append(nb, j)
		}
	}
	return nb
}

// ClosedNeighborhoods returns N[v] for every node, indexed like the matrix.
func (g *Graph) ClosedNeighborhoods() [][]int {
	nbs := make([][]int, g.Len())
	for i := range nbs {
		nbs[i] = g.ClosedNeighborhood(i)
	}
	return nbs
}

func (g *Graph) String() string {
	return fmt.Sprintf("graph(%d nodes, %d edges)", g.Len(), g.EdgeCount())
}
