package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/identifying-codes/mics/pkg/api/mics"
	"github.com/identifying-codes/mics/pkg/graph"
	"github.com/identifying-codes/mics/pkg/reducer"
	"github.com/identifying-codes/mics/pkg/sat"
	"sigs.k8s.io/yaml"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

const separator = "-------------------------------------------------------"

// Savings returns the percentage of nodes which need no monitor.
func Savings(nodeCount, objective int) float64 {
	if nodeCount == 0 {
		return 0
	}
	return float64(100*(nodeCount-objective)) / float64(nodeCount)
}

// New summarizes a pipeline run. Solution details are only included when the
// solution is optimal.
func New(source *graph.Source, reduction *reducer.Reduction, model *sat.Model, solution *sat.Solution, elapsed time.Duration) *mics.Report {
	original, reduced := reduction.Original.Len(), reduction.Graph.Len()
	r := &mics.Report{
		RunID:         uuid.NewString(),
		Input:         source.Path,
		FileType:      string(source.FileType),
		Fingerprint:   source.Fingerprint,
		OriginalShape: mics.Shape{Rows: original, Columns: original},
		ReducedShape:  mics.Shape{Rows: reduced, Columns: reduced},
		Status:        string(solution.Status),
		Message:       solution.Message,
		NodeCount:     reduced,
		Elapsed:       mics.Duration{Duration: elapsed},
	}
	for i, class := range reduction.Classes {
		if len(class) > 1 {
			r.TwinGroups = append(r.TwinGroups, mics.TwinGroup{
				Node:    reduction.Graph.Label(i),
				Members: reduction.OriginalLabels(i),
			})
		}
	}
	if solution.Status != sat.StatusOptimal {
		return r
	}

	for _, v := range model.Vars() {
		r.Variables = append(r.Variables, mics.Variable{Name: v.String(), Value: solution.Value(v)})
	}
	for _, i := range solution.Selected {
		r.Monitors = append(r.Monitors, reduction.Graph.Label(i))
		r.OriginalMonitors = append(r.OriginalMonitors, reduction.Original.Label(reduction.Representative(i)))
	}
	objective := solution.Objective
	savings := Savings(reduced, objective)
	r.Objective = &objective
	r.Savings = &savings
	return r
}

// Write renders r in the given format.
func Write(w io.Writer, r *mics.Report, format string) error {
	switch format {
	case FormatText, "":
		return writeText(w, r)
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %v", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "\t")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %v", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeText(w io.Writer, r *mics.Report) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Original Shape: (%d, %d)\n", r.OriginalShape.Rows, r.OriginalShape.Columns)
	fmt.Fprintf(&sb, "New Shape: (%d, %d)\n", r.ReducedShape.Rows, r.ReducedShape.Columns)
	for _, t := range r.TwinGroups {
		fmt.Fprintf(&sb, "Twins %s collapsed into node %s\n", strings.Join(t.Members, ", "), t.Node)
	}
	fmt.Fprintln(&sb, separator)
	fmt.Fprintf(&sb, "Status: %s\n", r.Status)
	if r.Message != "" {
		fmt.Fprintf(&sb, "Message: %s\n", r.Message)
	}
	for _, v := range r.Variables {
		fmt.Fprintf(&sb, "%s = %d\n", v.Name, v.Value)
	}
	fmt.Fprintln(&sb, separator)
	if r.Objective != nil {
		fmt.Fprintf(&sb, "Monitors: %s\n", strings.Join(r.Monitors, " "))
		fmt.Fprintf(&sb, "Monitors in the input graph: %s\n", strings.Join(r.OriginalMonitors, " "))
		fmt.Fprintf(&sb, "Amount of Resources Required for Unique Monitoring: %d\n", *r.Objective)
	}
	fmt.Fprintf(&sb, "Total number of nodes: %d\n", r.NodeCount)
	if r.Savings != nil {
		fmt.Fprintf(&sb, "%% Savings: %g\n", *r.Savings)
	}
	fmt.Fprintln(&sb, separator)
	fmt.Fprintf(&sb, "Time taken = %g seconds\n", r.Elapsed.Seconds())
	fmt.Fprintln(&sb, separator)
	_, err := io.WriteString(w, sb.String())
	return err
}
