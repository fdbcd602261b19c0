package main

import (
	"context"
	"fmt"
	"time"

	"github.com/identifying-codes/mics/pkg/api/mics"
	"github.com/identifying-codes/mics/pkg/graph"
	"github.com/identifying-codes/mics/pkg/reducer"
	"github.com/identifying-codes/mics/pkg/report"
	"github.com/identifying-codes/mics/pkg/sat"
	"github.com/sirupsen/logrus"
)

func loadAndCollapse(ctx context.Context, cfg *mics.Config) (*graph.Source, *reducer.Reduction, error) {
	fileType, err := graph.ParseFileType(cfg.FileType)
	if err != nil {
		return nil, nil, err
	}
	logrus.Info("Loading graph.")
	g, source, err := graph.Load(ctx, fileType, cfg.Input)
	if err != nil {
		return nil, nil, err
	}
	logrus.Info("Collapsing twins.")
	reduction, err := reducer.Collapse(g)
	if err != nil {
		return nil, nil, err
	}
	return source, reduction, nil
}

// solve runs the whole pipeline: load, collapse, formulate, solve and report.
// Solver outcomes other than optimal end up in the report, not in the error.
func solve(ctx context.Context, cfg *mics.Config, solver sat.Solver) (*mics.Report, error) {
	start := time.Now()
	source, reduction, err := loadAndCollapse(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logrus.Info("Initializing integer linear program.")
	model, err := sat.NewLoader(cfg.Workers).Load(ctx, reduction.Graph)
	if err != nil {
		return nil, err
	}

	solveCtx := ctx
	if cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, cfg.Timeout.Duration)
		defer cancel()
	}
	logrus.Info("Solving.")
	solution, err := solver.Solve(solveCtx, model)
	if err != nil {
		return nil, err
	}
	if solution.Status == sat.StatusOptimal {
		if err := graph.Verify(reduction.Graph, solution.Selected); err != nil {
			return nil, fmt.Errorf("solver returned an invalid identifying code: %w", err)
		}
	}
	logrus.Infof("Solver finished with status %s.", solution.Status)
	return report.New(source, reduction, model, solution, time.Since(start)), nil
}
