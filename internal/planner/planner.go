package planner

import (
	"fmt"
	"log/slog"

	"github.com/leengari/timeframe/internal/config"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/period"
	"github.com/leengari/timeframe/internal/plan"
	"github.com/leengari/timeframe/internal/query/aggregate"
	"github.com/leengari/timeframe/internal/query/operations/concat"
	"github.com/leengari/timeframe/internal/query/operations/join"
	"github.com/leengari/timeframe/internal/query/operations/resample"
	"github.com/leengari/timeframe/internal/query/operations/subset"
)

// DefaultReducer is used by resample and rolling steps that name no reducer.
const DefaultReducer = "mean"

// Plan converts a pipeline into an execution plan rooted at its output.
// A source or step referenced by several steps becomes one shared node.
func Plan(p *config.Pipeline) (plan.Node, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	nodes := make(map[string]plan.Node, len(p.Sources)+len(p.Steps))
	for name, src := range p.Sources {
		scan := &plan.ScanNode{Source: name, Path: src.Path, IndexName: src.Index}
		scan.Metadata()[plan.StepKey] = name
		nodes[name] = scan
	}

	for _, step := range p.Steps {
		inputs := make([]plan.Node, 0, len(step.InputNames()))
		for _, in := range step.InputNames() {
			inputs = append(inputs, nodes[in])
		}
		node, err := planStep(step, inputs)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		node.Metadata()[plan.StepKey] = step.Name
		node.Metadata()["op"] = step.Op
		nodes[step.Name] = node
	}

	root := nodes[p.Output]
	slog.Debug("Plan built",
		slog.String("output", p.Output),
		slog.Int("nodes", plan.CountNodes(root)),
	)
	return root, nil
}

func planStep(s config.Step, inputs []plan.Node) (plan.Node, error) {
	switch s.Op {
	case "join":
		if len(inputs) < 2 {
			return nil, tferrors.NewParameterError("join", len(inputs), "join needs at least two inputs")
		}
		how := join.JoinTypeOuter
		if s.How != "" {
			var err error
			if how, err = join.ParseJoinType(s.How); err != nil {
				return nil, err
			}
		}
		return plan.NewJoinNode(how, inputs...), nil

	case "vcat":
		if len(inputs) != 2 {
			return nil, tferrors.NewParameterError("vcat", len(inputs), "vcat needs exactly two inputs")
		}
		merge, err := concat.ParseMerge(s.Merge)
		if err != nil {
			return nil, err
		}
		return plan.NewConcatNode(inputs[0], inputs[1], merge), nil
	}

	if len(inputs) != 1 {
		return nil, tferrors.NewParameterError(s.Op, len(inputs), "step needs exactly one input")
	}
	input := inputs[0]

	switch s.Op {
	case "lag", "lead", "diff", "pct_change":
		k := s.K
		if k == 0 {
			k = 1
		}
		return plan.NewTransformNode(input, plan.TransformOp(s.Op), k), nil

	case "resample":
		p, err := period.Parse(s.Period)
		if err != nil {
			return nil, err
		}
		r, err := reducer(s.Reducer)
		if err != nil {
			return nil, err
		}
		at, err := resample.ParseIndexAt(s.At)
		if err != nil {
			return nil, err
		}
		return plan.NewResampleNode(input, p, r, at), nil

	case "rolling":
		if s.Column == "" {
			return nil, tferrors.NewParameterError("rolling", nil, "column is required")
		}
		r, err := reducer(s.Reducer)
		if err != nil {
			return nil, err
		}
		return plan.NewRollingNode(input, s.Column, s.Window, r), nil

	case "select":
		rows, err := rowSelector(s.Rows)
		if err != nil {
			return nil, err
		}
		var cols subset.ColumnSelector = subset.AllColumns{}
		if len(s.Columns) > 0 {
			cols = subset.Names(s.Columns)
		}
		return plan.NewSelectNode(input, rows, cols), nil

	case "between":
		if s.From == "" || s.To == "" {
			return nil, tferrors.NewParameterError("between", nil, "from and to are required")
		}
		return plan.NewBetweenNode(input, s.From, s.To), nil

	case "head", "tail":
		if s.N < 1 {
			return nil, tferrors.NewParameterError(s.Op, s.N, "n must be >= 1")
		}
		return plan.NewLimitNode(input, s.N, s.Op == "tail"), nil

	case "rename":
		if s.From == "" || s.To == "" {
			return nil, tferrors.NewParameterError("rename", nil, "from and to are required")
		}
		return plan.NewRenameNode(input, s.From, s.To), nil
	}

	return nil, tferrors.NewParameterError("plan", s.Op, "unsupported op")
}

func reducer(name string) (aggregate.Reducer, error) {
	if name == "" {
		name = DefaultReducer
	}
	return aggregate.Lookup(name)
}

// rowSelector maps a row spec to a selector. A nil spec selects all rows.
func rowSelector(r *config.RowSpec) (subset.RowSelector, error) {
	switch {
	case r == nil:
		return subset.AllRows{}, nil
	case len(r.Positions) > 0:
		return subset.List(r.Positions), nil
	case r.Date != "":
		return subset.Date(r.Date), nil
	case r.Year != 0:
		return subset.InPeriod{Year: r.Year, Quarter: r.Quarter, Month: r.Month}, nil
	case r.End != nil:
		start := 0
		if r.Start != nil {
			start = *r.Start
		}
		return subset.Span{From: start, To: *r.End}, nil
	}
	return nil, tferrors.NewParameterError("select", nil, "rows needs positions, date, year or end")
}
