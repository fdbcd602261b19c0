package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// VerificationError reports why a monitor set is not an identifying code.
// Other is empty when Node is simply not covered.
type VerificationError struct {
	Node  string
	Other string
}

func (e *VerificationError) Error() string {
	if e.Other == "" {
		return fmt.Sprintf("node %s is not covered by any monitor", e.Node)
	}
	return fmt.Sprintf("nodes %s and %s have the same monitor signature", e.Node, e.Other)
}

// Signature returns the monitors in N[i], in index order.
func Signature(g *Graph, i int, monitors []bool) []int {
	var sig []int
	for _, j := range g.ClosedNeighborhood(i) {
		if monitors[j] {
			sig = append(sig, j)
		}
	}
	return sig
}

// Verify checks that monitors (node indices) form an identifying code of g:
// every signature is non-empty and no two signatures are equal.
func Verify(g *Graph, monitors []int) error {
	selected := make([]bool, g.Len())
	for _, m := range monitors {
		if m < 0 || m >= g.Len() {
			return fmt.Errorf("monitor index %d out of range [0,%d)", m, g.Len())
		}
		selected[m] = true
	}

	seen := make(map[string]int, g.Len())
	for i := 0; i < g.Len(); i++ {
		sig := Signature(g, i, selected)
		if len(sig) == 0 {
			return &VerificationError{Node: g.Label(i)}
		}
		key := signatureKey(sig)
		if j, exists := seen[key]; exists {
			return &VerificationError{Node: g.Label(j), Other: g.Label(i)}
		}
		seen[key] = i
	}
	return nil
}

// ResolveLabels maps node labels to matrix indices.
func ResolveLabels(g *Graph, labels []string) ([]int, error) {
	indices := make([]int, 0, len(labels))
	for _, l := range labels {
		i, ok := g.IndexOf(strings.TrimSpace(l))
		if !ok {
			return nil, fmt.Errorf("node %q does not exist", l)
		}
		indices = append(indices, i)
	}
	return indices, nil
}

func signatureKey(sig []int) string {
	var sb strings.Builder
	for k, i := range sig {
		if k > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(i))
	}
	return sb.String()
}
