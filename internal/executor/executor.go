package executor

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/table"
	"github.com/leengari/timeframe/internal/plan"
	"github.com/leengari/timeframe/internal/query/operations/concat"
	"github.com/leengari/timeframe/internal/query/operations/join"
	"github.com/leengari/timeframe/internal/query/operations/resample"
	"github.com/leengari/timeframe/internal/query/operations/rolling"
	"github.com/leengari/timeframe/internal/query/operations/subset"
	"github.com/leengari/timeframe/internal/query/operations/transform"
)

// Loader loads the table read by a scan node
type Loader interface {
	Load(path, indexName string) (*table.Table, error)
}

// ExecutionContext provides resources for execution
type ExecutionContext struct {
	Loader Loader
	// BaseDir resolves relative scan paths (empty: working directory)
	BaseDir string

	results map[plan.Node]*table.Table
}

// NewExecutionContext creates a context with an empty result cache
func NewExecutionContext(loader Loader, baseDir string) *ExecutionContext {
	return &ExecutionContext{
		Loader:  loader,
		BaseDir: baseDir,
		results: make(map[plan.Node]*table.Table),
	}
}

// Execute evaluates the plan tree rooted at node. A node shared by several
// parents is evaluated once per context.
func Execute(node plan.Node, ctx *ExecutionContext) (*table.Table, error) {
	if ctx.results == nil {
		ctx.results = make(map[plan.Node]*table.Table)
	}
	return executeNode(node, ctx)
}

func executeNode(node plan.Node, ctx *ExecutionContext) (*table.Table, error) {
	if t, ok := ctx.results[node]; ok {
		return t, nil
	}

	inputs := make([]*table.Table, 0, len(node.Children()))
	for _, child := range node.Children() {
		t, err := executeNode(child, ctx)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, t)
	}

	t, err := evaluate(node, inputs, ctx)
	if err != nil {
		if step, ok := node.Metadata()[plan.StepKey].(string); ok {
			return nil, fmt.Errorf("%s %q: %w", node.NodeType(), step, err)
		}
		return nil, fmt.Errorf("%s: %w", node.NodeType(), err)
	}

	slog.Debug("Node executed",
		slog.String("node", node.NodeType()),
		slog.Any("step", node.Metadata()[plan.StepKey]),
		slog.Int("result_rows", t.NRow()),
		slog.Int("result_columns", t.NCol()),
	)
	ctx.results[node] = t
	return t, nil
}

func evaluate(node plan.Node, in []*table.Table, ctx *ExecutionContext) (*table.Table, error) {
	switch n := node.(type) {
	case *plan.ScanNode:
		if ctx.Loader == nil {
			return nil, fmt.Errorf("no loader configured for source %q", n.Source)
		}
		path := n.Path
		if ctx.BaseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(ctx.BaseDir, path)
		}
		return ctx.Loader.Load(path, n.IndexName)

	case *plan.JoinNode:
		return join.JoinAll(n.JoinType, in...)

	case *plan.ConcatNode:
		return concat.VCat(in[0], in[1], n.Merge)

	case *plan.TransformNode:
		switch n.Op {
		case plan.OpLag:
			return transform.Lag(in[0], n.K)
		case plan.OpLead:
			return transform.Lead(in[0], n.K)
		case plan.OpDiff:
			return transform.Diff(in[0], n.K)
		case plan.OpPctChange:
			return transform.PctChange(in[0], n.K)
		}
		return nil, tferrors.NewParameterError("transform", string(n.Op), "unknown transform")

	case *plan.ResampleNode:
		return resample.Apply(in[0], n.Period, n.Reducer, n.At)

	case *plan.RollingNode:
		return rolling.Apply(in[0], n.Column, n.Window, n.Reducer)

	case *plan.SelectNode:
		return subset.Select(in[0], n.Rows, n.Columns)

	case *plan.BetweenNode:
		from, err := bound(in[0], n.From)
		if err != nil {
			return nil, err
		}
		to, err := bound(in[0], n.To)
		if err != nil {
			return nil, err
		}
		return subset.Between(in[0], from, to)

	case *plan.LimitNode:
		if n.FromEnd {
			return in[0].Tail(n.N), nil
		}
		return in[0].Head(n.N), nil

	case *plan.RenameNode:
		return in[0].Rename(n.From, n.To)
	}
	return nil, fmt.Errorf("unsupported plan node: %T", node)
}

// bound converts a textual between boundary to a value matching the index type.
func bound(t *table.Table, s string) (interface{}, error) {
	if t.IndexType() != column.ColumnTypeInt {
		return s, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, tferrors.NewFormatError("between", s, "expected an integer index value")
	}
	return v, nil
}
