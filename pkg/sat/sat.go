package sat

import (
	"context"
	"errors"
	"fmt"

	"github.com/crillab/gophersat/solver"
	"github.com/sirupsen/logrus"
)

type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusInfeasible Status = "Infeasible"
	StatusTimeLimit  Status = "TimeLimit"
	StatusError      Status = "Error"
)

// Solution is the outcome of a solver run. Assignment, Objective and Selected
// are only set when Status is StatusOptimal.
type Solution struct {
	Status Status
	// Assignment holds the value of the variable with id i at index i-1.
	Assignment []bool
	Objective  int
	// Selected contains the node indices of all monitors, ascending.
	Selected []int
	Message  string
}

// Value returns the 0/1 value of v.
func (s *Solution) Value(v *Var) int {
	if v.satVarName > len(s.Assignment) || !s.Assignment[v.satVarName-1] {
		return 0
	}
	return 1
}

// Solver finds an assignment minimizing the objective of a Model subject to all
// of its constraints. Implementations must be exact.
type Solver interface {
	Solve(ctx context.Context, model *Model) (*Solution, error)
}

// PBSolver solves models with the pseudo-boolean optimizer of gophersat.
type PBSolver struct{}

func NewPBSolver() *PBSolver {
	return &PBSolver{}
}

// Resolve solves model with the default solver.
func Resolve(ctx context.Context, model *Model) (*Solution, error) {
	return NewPBSolver().Solve(ctx, model)
}

type minimizeResult struct {
	cost  int
	model []bool
}

// Solve blocks until the optimum is found or ctx is done. An expired deadline
// yields StatusTimeLimit. The search itself can't be interrupted: when ctx is
// done first, Solve returns immediately but the goroutine running the search
// stays alive, holding its CPU and memory, until the search finishes. Long
// running callers should bound their models or run Solve in a short-lived
// process.
func (p *PBSolver) Solve(ctx context.Context, model *Model) (*Solution, error) {
	if len(model.vars) == 0 {
		return nil, fmt.Errorf("model has no variables")
	}
	if err := ctx.Err(); err != nil {
		return interrupted(err), nil
	}

	constrs := make([]solver.CardConstr, 0, len(model.constraints))
	for _, c := range model.constraints {
		lits := make([]int, len(c.Vars))
		copy(lits, c.Vars)
		constrs = append(constrs, solver.CardConstr{Lits: lits, AtLeast: c.AtLeast})
	}
	pb := solver.ParseCardConstrs(constrs)

	lits := make([]solver.Lit, 0, len(model.objective))
	weights := make([]int, 0, len(model.objective))
	for _, v := range model.objective {
		lits = append(lits, solver.IntToLit(int32(v)))
		weights = append(weights, 1)
	}
	pb.SetCostFunc(lits, weights)
	s := solver.New(pb)

	logrus.Infof("Solving %v constraints over %v variables.", len(constrs), len(model.vars))
	done := make(chan minimizeResult, 1)
	go func() {
		cost := s.Minimize()
		if cost < 0 {
			done <- minimizeResult{cost: cost}
			return
		}
		done <- minimizeResult{cost: cost, model: s.Model()}
	}()

	select {
	case <-ctx.Done():
		logrus.Warnf("Solver interrupted: %v.", ctx.Err())
		return interrupted(ctx.Err()), nil
	case res := <-done:
		return toSolution(model, res), nil
	}
}

func interrupted(err error) *Solution {
	status := StatusError
	if errors.Is(err, context.DeadlineExceeded) {
		status = StatusTimeLimit
	}
	return &Solution{Status: status, Message: err.Error()}
}

func toSolution(model *Model, res minimizeResult) *Solution {
	if res.cost < 0 {
		return &Solution{Status: StatusInfeasible, Message: "no assignment satisfies all constraints"}
	}
	if len(res.model) < len(model.vars) {
		return &Solution{Status: StatusError, Message: fmt.Sprintf("solver returned %d values for %d variables", len(res.model), len(model.vars))}
	}

	solution := &Solution{
		Status:     StatusOptimal,
		Assignment: res.model[:len(model.vars)],
	}
	for _, v := range model.vars {
		if solution.Assignment[v.satVarName-1] {
			solution.Selected = append(solution.Selected, v.Node)
			solution.Objective++
		}
	}
	if solution.Objective != res.cost {
		logrus.Warnf("Solver reported cost %d but %d monitors are selected.", res.cost, solution.Objective)
	}
	return solution
}
