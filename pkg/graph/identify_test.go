package graph

import (
	"errors"
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name      string
		edges     string
		monitors  []string
		wantNode  string
		wantOther string
		wantOK    bool
	}{
		{name: "should accept the ends of a path",
			edges:    "1 2\n2 3\n",
			monitors: []string{"1", "3"},
			wantOK:   true,
		},
		{name: "should accept all nodes of a path",
			edges:    "1 2\n2 3\n",
			monitors: []string{"1", "2", "3"},
			wantOK:   true,
		},
		{name: "should detect equal signatures",
			edges:     "1 2\n2 3\n",
			monitors:  []string{"2"},
			wantNode:  "1",
			wantOther: "2",
		},
		{name: "should detect uncovered nodes",
			edges:    "1 2\n2 3\n4 4\n",
			monitors: []string{"1", "3"},
			wantNode: "4",
		},
		{name: "should detect twins",
			edges:     "1 2\n1 3\n2 3\n",
			monitors:  []string{"1", "2", "3"},
			wantNode:  "1",
			wantOther: "2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			graph, err := ReadEdgeList("test.txt", strings.NewReader(tt.edges))
			g.Expect(err).ToNot(HaveOccurred())
			monitors, err := ResolveLabels(graph, tt.monitors)
			g.Expect(err).ToNot(HaveOccurred())

			err = Verify(graph, monitors)
			if tt.wantOK {
				g.Expect(err).ToNot(HaveOccurred())
				return
			}
			var verr *VerificationError
			g.Expect(errors.As(err, &verr)).To(BeTrue())
			g.Expect(verr.Node).To(Equal(tt.wantNode))
			g.Expect(verr.Other).To(Equal(tt.wantOther))
		})
	}
}

func TestSignature(t *testing.T) {
	g := NewGomegaWithT(t)
	graph, err := ReadEdgeList("test.txt", strings.NewReader("1 2\n2 3\n"))
	g.Expect(err).ToNot(HaveOccurred())
	monitors := []bool{true, false, true}
	g.Expect(Signature(graph, 0, monitors)).To(Equal([]int{0}))
	g.Expect(Signature(graph, 1, monitors)).To(Equal([]int{0, 2}))
	g.Expect(Signature(graph, 2, monitors)).To(Equal([]int{2}))
}

func TestResolveLabels(t *testing.T) {
	g := NewGomegaWithT(t)
	graph, err := ReadEdgeList("test.txt", strings.NewReader("5 7\n"))
	g.Expect(err).ToNot(HaveOccurred())
	indices, err := ResolveLabels(graph, []string{"7", " 5"})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(indices).To(Equal([]int{1, 0}))
	_, err = ResolveLabels(graph, []string{"6"})
	g.Expect(err).To(HaveOccurred())
}

func TestVerifyRejectsOutOfRangeMonitors(t *testing.T) {
	g := NewGomegaWithT(t)
	graph, err := ReadEdgeList("test.txt", strings.NewReader("1 2\n"))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(Verify(graph, []int{2})).ToNot(Succeed())
}
