package graph

import (
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	g := NewGomegaWithT(t)
	adj := mat.NewSymDense(3, []float64{
		0, 1, 0,
		1, 0, 1,
		0, 1, 0,
	})
	graph, err := New(ConsecutiveLabels(3), adj)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(graph.Len()).To(Equal(3))
	g.Expect(graph.Labels()).To(Equal([]string{"1", "2", "3"}))
	g.Expect(graph.EdgeCount()).To(Equal(2))
	g.Expect(graph.String()).To(Equal("graph(3 nodes, 2 edges)"))

	i, ok := graph.IndexOf("3")
	g.Expect(ok).To(BeTrue())
	g.Expect(i).To(Equal(2))

	adj.SetSym(0, 2, 1)
	g.Expect(graph.Adjacent(0, 2)).To(BeFalse(), "the matrix must be copied")

	m := graph.Matrix()
	m.SetSym(0, 2, 1)
	g.Expect(graph.Adjacent(0, 2)).To(BeFalse(), "Matrix must return a copy")
}

func TestNewErrors(t *testing.T) {
	g := NewGomegaWithT(t)
	_, err := New([]string{"1", "2"}, mat.NewSymDense(3, nil))
	g.Expect(err).To(HaveOccurred())
	_, err = New([]string{"1", "1"}, mat.NewSymDense(2, nil))
	g.Expect(err).To(HaveOccurred())
	_, err = New(nil, mat.NewSymDense(1, nil))
	g.Expect(err).To(HaveOccurred())
}
