package sat

import (
	"context"
	"testing"
	"time"

	"github.com/identifying-codes/mics/pkg/graph"
	"github.com/identifying-codes/mics/pkg/reducer"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	. "github.com/onsi/gomega"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		edges         string
		wantObjective int
		wantSelected  []int
	}{
		{name: "should monitor both ends of a path",
			edges:         "1 2\n2 3\n",
			wantObjective: 2,
			wantSelected:  []int{0, 2},
		},
		{name: "should monitor a single node",
			edges:         "1 1\n",
			wantObjective: 1,
			wantSelected:  []int{0},
		},
		{name: "should monitor every isolated node",
			edges:         "1 1\n2 2\n3 3\n",
			wantObjective: 3,
			wantSelected:  []int{0, 1, 2},
		},
		{name: "should need three monitors for a star with three leaves",
			edges:         "1 2\n1 3\n1 4\n",
			wantObjective: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			model, err := NewLoader(1).Load(context.Background(), newGraph(tt.edges))
			g.Expect(err).ToNot(HaveOccurred())

			solution, err := Resolve(context.Background(), model)
			g.Expect(err).ToNot(HaveOccurred())
			g.Expect(solution.Status).To(Equal(StatusOptimal))
			g.Expect(solution.Objective).To(Equal(tt.wantObjective))
			g.Expect(solution.Selected).To(HaveLen(tt.wantObjective))
			if tt.wantSelected == nil {
				return
			}
			g.Expect(solution.Selected).To(Equal(tt.wantSelected))
			for _, v := range model.Vars() {
				want := 0
				for _, s := range tt.wantSelected {
					if s == v.Node {
						want = 1
					}
				}
				g.Expect(solution.Value(v)).To(Equal(want), "variable %s", v)
			}
		})
	}
}

func TestToSolution(t *testing.T) {
	tests := []struct {
		name          string
		result        minimizeResult
		wantStatus    Status
		wantSelected  []int
		wantObjective int
	}{
		{name: "should report a negative cost as infeasible",
			result:     minimizeResult{cost: -1},
			wantStatus: StatusInfeasible,
		},
		{name: "should reject a model shorter than the variables",
			result:     minimizeResult{cost: 1, model: []bool{true}},
			wantStatus: StatusError,
		},
		{name: "should select the nodes of all set variables",
			result:        minimizeResult{cost: 2, model: []bool{true, false, true}},
			wantStatus:    StatusOptimal,
			wantSelected:  []int{0, 2},
			wantObjective: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGomegaWithT(t)
			model, err := NewLoader(1).Load(context.Background(), newGraph("1 2\n2 3\n"))
			g.Expect(err).ToNot(HaveOccurred())

			solution := toSolution(model, tt.result)
			g.Expect(solution.Status).To(Equal(tt.wantStatus))
			g.Expect(solution.Selected).To(Equal(tt.wantSelected))
			g.Expect(solution.Objective).To(Equal(tt.wantObjective))
		})
	}
}

func TestResolveTimeLimit(t *testing.T) {
	g := NewGomegaWithT(t)
	model, err := NewLoader(1).Load(context.Background(), newGraph("1 2\n2 3\n"))
	g.Expect(err).ToNot(HaveOccurred())

	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()
	solution, err := NewPBSolver().Solve(ctx, model)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(solution.Status).To(Equal(StatusTimeLimit))
	g.Expect(solution.Selected).To(BeEmpty())
	g.Expect(solution.Assignment).To(BeEmpty())
}

func TestResolveCanceled(t *testing.T) {
	g := NewGomegaWithT(t)
	model, err := NewLoader(1).Load(context.Background(), newGraph("1 2\n2 3\n"))
	g.Expect(err).ToNot(HaveOccurred())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	solution, err := NewPBSolver().Solve(ctx, model)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(solution.Status).To(Equal(StatusError))
}

func TestResolveRejectsEmptyModels(t *testing.T) {
	g := NewGomegaWithT(t)
	_, err := NewPBSolver().Solve(context.Background(), &Model{})
	g.Expect(err).To(HaveOccurred())
}

func TestResolveProperties(t *testing.T) {
	const maxNodes = 7
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	pairs := gen.SliceOfN(maxNodes*(maxNodes-1)/2, gen.Bool())

	solve := func(n int, p []bool) (*graph.Graph, *Solution, bool) {
		reduction, err := reducer.Collapse(newRandomGraph(n, p))
		if err != nil {
			return nil, nil, false
		}
		model, err := NewLoader(2).Load(context.Background(), reduction.Graph)
		if err != nil {
			return nil, nil, false
		}
		solution, err := Resolve(context.Background(), model)
		if err != nil || solution.Status != StatusOptimal {
			return nil, nil, false
		}
		return reduction.Graph, solution, true
	}

	properties.Property("optimal solutions cover and identify every node", prop.ForAll(
		func(n int, p []bool) bool {
			g, solution, ok := solve(n, p)
			return ok && graph.Verify(g, solution.Selected) == nil
		},
		gen.IntRange(1, maxNodes), pairs,
	))

	properties.Property("optimal solutions are minimum", prop.ForAll(
		func(n int, p []bool) bool {
			g, solution, ok := solve(n, p)
			return ok && solution.Objective == minimumCodeSize(g) && len(solution.Selected) == solution.Objective
		},
		gen.IntRange(1, maxNodes), pairs,
	))

	properties.TestingRun(t)
}
