package sat

import (
	"context"
	"errors"
	"fmt"

	"github.com/identifying-codes/mics/pkg/graph"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type ConstraintFamily string

const (
	FamilyCoverage   ConstraintFamily = "coverage"
	FamilyUniqueness ConstraintFamily = "uniqueness"
)

var ErrIndistinguishable = errors.New("nodes have identical closed neighborhoods")

// IndistinguishableError is returned when two nodes of the graph handed to the
// Loader are twins. Twins have to be collapsed before formulating the model.
type IndistinguishableError struct {
	A string
	B string
}

func (e *IndistinguishableError) Error() string {
	return fmt.Sprintf("can't formulate a uniqueness constraint for %s and %s: %v", e.A, e.B, ErrIndistinguishable)
}

func (e *IndistinguishableError) Unwrap() error {
	return ErrIndistinguishable
}

// Var is the binary decision variable "node is a monitor".
type Var struct {
	satVarName int
	Node       int
	Label      string
}

func (v *Var) ID() int {
	return v.satVarName
}

func (v *Var) String() string {
	return "x_" + v.Label
}

// Constraint requires at least AtLeast of Vars to be set.
type Constraint struct {
	Name    string
	Family  ConstraintFamily
	Vars    []int
	AtLeast int
}

// Model is a 0/1 minimization problem over one variable per graph node.
type Model struct {
	graph       *graph.Graph
	vars        []*Var
	objective   []int
	constraints []Constraint
}

func (m *Model) Graph() *graph.Graph {
	return m.graph
}

// Vars returns the variables ordered by node index, Vars()[i].ID() == i+1.
func (m *Model) Vars() []*Var {
	return m.vars
}

// Objective returns the variable ids whose sum is minimized.
func (m *Model) Objective() []int {
	return m.objective
}

func (m *Model) Constraints() []Constraint {
	return m.constraints
}

// Count returns the number of constraints of the given family.
func (m *Model) Count(family ConstraintFamily) int {
	count := 0
	for _, c := range m.constraints {
		if c.Family == family {
			count++
		}
	}
	return count
}

type Loader struct {
	m         *Model
	workers   int
	varsCount int
}

// NewLoader creates a Loader generating uniqueness constraints on up to
// workers goroutines. Values below 1 mean a single worker.
func NewLoader(workers int) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		m:         &Model{},
		workers:   workers,
		varsCount: 0,
	}
}

// Load formulates the identifying code problem of g: minimize the number of
// monitors such that every closed neighborhood contains a monitor and every
// pair of nodes is told apart by a monitor in the symmetric difference of
// their closed neighborhoods.
func (loader *Loader) Load(ctx context.Context, g *graph.Graph) (*Model, error) {
	loader.m.graph = g
	for i := 0; i < g.Len(); i++ {
		v := &Var{
			satVarName: loader.ticket(),
			Node:       i,
			Label:      g.Label(i),
		}
		loader.m.vars = append(loader.m.vars, v)
		loader.m.objective = append(loader.m.objective, v.satVarName)
	}
	logrus.Infof("Generated %v variables.", len(loader.m.vars))

	neighborhoods := g.ClosedNeighborhoods()

	logrus.Info("Adding coverage constraints.")
	for i, nb := range neighborhoods {
		loader.m.constraints = append(loader.m.constraints, Constraint{
			Name:    fmt.Sprintf("coverage_%s", g.Label(i)),
			Family:  FamilyCoverage,
			Vars:    loader.toVars(nb),
			AtLeast: 1,
		})
	}

	logrus.Info("Adding uniqueness constraints.")
	shards := make([][]Constraint, g.Len())
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(loader.workers)
	for i := range neighborhoods {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			shard, err := loader.uniquenessConstraints(g, neighborhoods, i)
			if err != nil {
				return err
			}
			shards[i] = shard
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	for _, shard := range shards {
		loader.m.constraints = append(loader.m.constraints, shard...)
	}
	logrus.Infof("Generated %v coverage and %v uniqueness constraints.", g.Len(), len(loader.m.constraints)-g.Len())

	return loader.m, nil
}

// uniquenessConstraints creates the constraints for all pairs (i, j) with j > i.
// It only reads shared state.
func (loader *Loader) uniquenessConstraints(g *graph.Graph, neighborhoods [][]int, i int) ([]Constraint, error) {
	shard := make([]Constraint, 0, len(neighborhoods)-i-1)
	for j := i + 1; j < len(neighborhoods); j++ {
		diff := symmetricDifference(neighborhoods[i], neighborhoods[j])
		if len(diff) == 0 {
			return nil, &IndistinguishableError{A: g.Label(i), B: g.Label(j)}
		}
		shard = append(shard, Constraint{
			Name:    fmt.Sprintf("uniqueness_%s_%s", g.Label(i), g.Label(j)),
			Family:  FamilyUniqueness,
			Vars:    loader.toVars(diff),
			AtLeast: 1,
		})
	}
	return shard, nil
}

func (loader *Loader) ticket() int {
	loader.varsCount++
	return loader.varsCount
}

func (loader *Loader) toVars(nodes []int) []int {
	ids := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, loader.m.vars[n].satVarName)
	}
	return ids
}

// symmetricDifference merges two ascending index lists.
func symmetricDifference(a, b []int) []int {
	var diff []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			diff = append(diff, a[i])
			i++
		case a[i] > b[j]:
			diff = append(diff, b[j])
			j++
		default:
			i++
			j++
		}
	}
	diff = append(diff, a[i:]...)
	return append(diff, b[j:]...)
}
