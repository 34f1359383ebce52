package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/timeframe/internal/config"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/period"
	"github.com/leengari/timeframe/internal/plan"
	"github.com/leengari/timeframe/internal/query/operations/join"
	"github.com/leengari/timeframe/internal/query/operations/resample"
	"github.com/leengari/timeframe/internal/query/operations/subset"
)

func pipeline(steps ...config.Step) *config.Pipeline {
	p := &config.Pipeline{
		Sources: map[string]config.Source{
			"a": {Path: "a.csv", Index: "date"},
			"b": {Path: "b.csv"},
		},
		Steps: steps,
	}
	if len(steps) > 0 {
		p.Output = steps[len(steps)-1].Name
	}
	return p
}

func TestPlanBuildsSharedTree(t *testing.T) {
	p := pipeline(
		config.Step{Name: "joined", Op: "join", Inputs: []string{"a", "b"}, How: "inner"},
		config.Step{Name: "weekly", Op: "resample", Input: "joined", Period: "1 week", At: "last"},
		config.Step{Name: "both", Op: "vcat", Inputs: []string{"weekly", "joined"}, Merge: "union"},
	)

	root, err := Plan(p)
	require.NoError(t, err)

	cat, ok := root.(*plan.ConcatNode)
	require.True(t, ok)
	weekly, ok := cat.Top().(*plan.ResampleNode)
	require.True(t, ok)
	assert.Equal(t, period.Of(period.Week, 1), weekly.Period)
	assert.Equal(t, DefaultReducer, weekly.Reducer.Name)
	assert.Equal(t, resample.Last, weekly.At)

	joined, ok := cat.Bottom().(*plan.JoinNode)
	require.True(t, ok)
	assert.Same(t, weekly.Input(), plan.Node(joined))
	assert.Equal(t, join.JoinTypeInner, joined.JoinType)
	assert.Equal(t, "joined", joined.Metadata()[plan.StepKey])

	scan := joined.Children()[0].(*plan.ScanNode)
	assert.Equal(t, "date", scan.IndexName)
}

func TestPlanStepParameters(t *testing.T) {
	one, two := 1, 3
	tests := []struct {
		name  string
		step  config.Step
		check func(t *testing.T, n plan.Node)
	}{
		{"lag defaults to one", config.Step{Op: "lag", Input: "a"}, func(t *testing.T, n plan.Node) {
			assert.Equal(t, 1, n.(*plan.TransformNode).K)
		}},
		{"diff", config.Step{Op: "diff", Input: "a", K: 2}, func(t *testing.T, n plan.Node) {
			tr := n.(*plan.TransformNode)
			assert.Equal(t, plan.OpDiff, tr.Op)
			assert.Equal(t, 2, tr.K)
		}},
		{"rolling", config.Step{Op: "rolling", Input: "a", Column: "x", Window: 3, Reducer: "sum"}, func(t *testing.T, n plan.Node) {
			r := n.(*plan.RollingNode)
			assert.Equal(t, "sum", r.Reducer.Name)
			assert.Equal(t, 3, r.Window)
		}},
		{"select span", config.Step{Op: "select", Input: "a", Rows: &config.RowSpec{Start: &one, End: &two}, Columns: []string{"x"}}, func(t *testing.T, n plan.Node) {
			s := n.(*plan.SelectNode)
			assert.Equal(t, subset.Span{From: 1, To: 3}, s.Rows)
			assert.Equal(t, subset.Names{"x"}, s.Columns)
		}},
		{"select period", config.Step{Op: "select", Input: "a", Rows: &config.RowSpec{Year: 2017, Quarter: 1}}, func(t *testing.T, n plan.Node) {
			assert.Equal(t, subset.InPeriod{Year: 2017, Quarter: 1}, n.(*plan.SelectNode).Rows)
		}},
		{"select all", config.Step{Op: "select", Input: "a"}, func(t *testing.T, n plan.Node) {
			s := n.(*plan.SelectNode)
			assert.Equal(t, subset.AllRows{}, s.Rows)
			assert.Equal(t, subset.AllColumns{}, s.Columns)
		}},
		{"tail", config.Step{Op: "tail", Input: "a", N: 4}, func(t *testing.T, n plan.Node) {
			assert.True(t, n.(*plan.LimitNode).FromEnd)
		}},
		{"join defaults to outer", config.Step{Op: "join", Inputs: []string{"a", "b"}}, func(t *testing.T, n plan.Node) {
			assert.Equal(t, join.JoinTypeOuter, n.(*plan.JoinNode).JoinType)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.step.Name = "out"
			root, err := Plan(pipeline(tt.step))
			require.NoError(t, err)
			assert.Equal(t, tt.step.Op, root.Metadata()["op"])
			tt.check(t, root)
		})
	}
}

func TestPlanErrors(t *testing.T) {
	tests := []struct {
		name string
		step config.Step
		want error
	}{
		{"join with one input", config.Step{Op: "join", Input: "a"}, tferrors.ErrParameter},
		{"bad join type", config.Step{Op: "join", Inputs: []string{"a", "b"}, How: "cross"}, tferrors.ErrParameter},
		{"vcat with three inputs", config.Step{Op: "vcat", Inputs: []string{"a", "b", "a"}}, tferrors.ErrParameter},
		{"two inputs to lag", config.Step{Op: "lag", Inputs: []string{"a", "b"}}, tferrors.ErrParameter},
		{"bad period", config.Step{Op: "resample", Input: "a", Period: "fortnight"}, tferrors.ErrParameter},
		{"unknown reducer", config.Step{Op: "rolling", Input: "a", Column: "x", Window: 2, Reducer: "mode"}, tferrors.ErrParameter},
		{"rolling without column", config.Step{Op: "rolling", Input: "a", Window: 2}, tferrors.ErrParameter},
		{"empty row spec", config.Step{Op: "select", Input: "a", Rows: &config.RowSpec{}}, tferrors.ErrParameter},
		{"head without n", config.Step{Op: "head", Input: "a"}, tferrors.ErrParameter},
		{"rename without target", config.Step{Op: "rename", Input: "a", From: "x"}, tferrors.ErrParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.step.Name = "out"
			_, err := Plan(pipeline(tt.step))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), `step "out"`)
		})
	}

	_, err := Plan(&config.Pipeline{})
	assert.Error(t, err, "invalid pipeline")
}
