package reducer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/identifying-codes/mics/pkg/graph"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

var ErrInconsistentReduction = errors.New("row and column reduction kept different nodes")

// Reduction is the result of collapsing the twins of Original.
type Reduction struct {
	// Graph is the reduced graph, its nodes are labeled "1".."m" in the order of
	// their representatives in Original.
	Graph    *graph.Graph
	Original *graph.Graph
	// Classes contains one twin class per reduced node, as indices into Original.
	// The first index of every class is its representative.
	Classes [][]int
}

// Representative returns the index in Original which reduced node i stands for.
func (r *Reduction) Representative(i int) int {
	return r.Classes[i][0]
}

// OriginalLabels returns the labels of all original nodes merged into reduced node i.
func (r *Reduction) OriginalLabels(i int) []string {
	labels := make([]string, 0, len(r.Classes[i]))
	for _, j := range r.Classes[i] {
		labels = append(labels, r.Original.Label(j))
	}
	return labels
}

// Collapsed returns how many nodes were removed.
func (r *Reduction) Collapsed() int {
	return r.Original.Len() - r.Graph.Len()
}

// Collapse merges every class of nodes with identical closed neighborhoods into
// its first member and relabels the remaining nodes consecutively from 1.
//
// Rows are deduplicated first, keeping the first occurrence. Columns of the
// row-reduced matrix are deduplicated independently and must keep exactly the
// same indices, otherwise ErrInconsistentReduction is returned. The reduced
// matrix is always the principal submatrix over the kept rows, so it stays
// symmetric.
func Collapse(g *graph.Graph) (*Reduction, error) {
	n := g.Len()
	m := g.Matrix()
	for i := 0; i < n; i++ {
		m.SetSym(i, i, 1)
	}
	logrus.Infof("Original shape: %dx%d.", n, n)

	rows, classes := dedupRows(m)
	cols := dedupColumns(m, rows)
	slices.Sort(cols)
	if !slices.Equal(rows, cols) {
		return nil, fmt.Errorf("%w: rows %v, columns %v", ErrInconsistentReduction, rows, cols)
	}

	reduced := mat.NewSymDense(len(rows), nil)
	for a, i := range rows {
		for b := a; b < len(rows); b++ {
			reduced.SetSym(a, b, m.At(i, rows[b]))
		}
	}
	logrus.Infof("New shape: %dx%d.", len(rows), len(rows))

	rg, err := graph.New(graph.ConsecutiveLabels(len(rows)), reduced)
	if err != nil {
		return nil, fmt.Errorf("failed to construct reduced graph: %v", err)
	}
	for _, class := range classes {
		if len(class) > 1 {
			logrus.Debugf("Collapsed twins %v into %s.", labelsOf(g, class), g.Label(class[0]))
		}
	}
	return &Reduction{
		Graph:    rg,
		Original: g,
		Classes:  classes,
	}, nil
}

// TwinClasses returns the classes of nodes of g sharing a closed neighborhood,
// ordered by their first member. Nodes without a twin form a class of one.
func TwinClasses(g *graph.Graph) [][]int {
	m := g.Matrix()
	for i := 0; i < g.Len(); i++ {
		m.SetSym(i, i, 1)
	}
	_, classes := dedupRows(m)
	return classes
}

func dedupRows(m *mat.SymDense) (kept []int, classes [][]int) {
	n := m.SymmetricDim()
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}
	seen := map[string]int{}
	for i := 0; i < n; i++ {
		key := vectorKey(m, i, all, true)
		if c, exists := seen[key]; exists {
			classes[c] = append(classes[c], i)
			continue
		}
		seen[key] = len(kept)
		kept = append(kept, i)
		classes = append(classes, []int{i})
	}
	return kept, classes
}

func dedupColumns(m *mat.SymDense, rows []int) (kept []int) {
	seen := map[string]bool{}
	for j := 0; j < m.SymmetricDim(); j++ {
		key := vectorKey(m, j, rows, false)
		if !seen[key] {
			seen[key] = true
			kept = append(kept, j)
		}
	}
	return kept
}

// vectorKey encodes row (or column) i restricted to the given indices.
func vectorKey(m *mat.SymDense, i int, over []int, row bool) string {
	var sb strings.Builder
	sb.Grow(len(over))
	for _, k := range over {
		v := m.At(k, i)
		if row {
			v = m.At(i, k)
		}
		if v != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func labelsOf(g *graph.Graph, indices []int) []string {
	labels := make([]string, 0, len(indices))
	for _, i := range indices {
		labels = append(labels, g.Label(i))
	}
	return labels
}
