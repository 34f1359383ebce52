package plan

import (
	"github.com/leengari/timeframe/internal/domain/period"
	"github.com/leengari/timeframe/internal/query/aggregate"
	"github.com/leengari/timeframe/internal/query/operations/concat"
	"github.com/leengari/timeframe/internal/query/operations/join"
	"github.com/leengari/timeframe/internal/query/operations/resample"
	"github.com/leengari/timeframe/internal/query/operations/subset"
)

// Node is the base interface for all execution plan nodes
type Node interface {
	// Children returns child nodes for tree walking
	Children() []Node

	// Metadata returns attached metadata (never nil)
	Metadata() map[string]any

	// NodeType returns the type identifier (for debugging/logging)
	NodeType() string
}

type meta struct {
	metadata map[string]any
}

func (m *meta) Metadata() map[string]any {
	if m.metadata == nil {
		m.metadata = make(map[string]any)
	}
	return m.metadata
}

// unary is embedded by nodes with a single input
type unary struct {
	input Node
}

func (u *unary) Input() Node { return u.input }

func (u *unary) Children() []Node { return []Node{u.input} }

// ScanNode loads a CSV source (leaf node)
type ScanNode struct {
	Source    string
	Path      string
	IndexName string // empty: pick automatically

	meta
}

func (n *ScanNode) Children() []Node {
	return nil // Leaf node has no children
}

func (n *ScanNode) NodeType() string { return "SCAN" }

// JoinNode aligns two or more inputs on their index
type JoinNode struct {
	JoinType join.JoinType

	inputs []Node
	meta
}

func NewJoinNode(joinType join.JoinType, inputs ...Node) *JoinNode {
	return &JoinNode{JoinType: joinType, inputs: inputs}
}

func (n *JoinNode) Children() []Node { return n.inputs }

func (n *JoinNode) NodeType() string { return "JOIN" }

// ConcatNode stacks the rows of Bottom after Top
type ConcatNode struct {
	Merge concat.Merge

	top, bottom Node
	meta
}

func NewConcatNode(top, bottom Node, merge concat.Merge) *ConcatNode {
	return &ConcatNode{top: top, bottom: bottom, Merge: merge}
}

func (n *ConcatNode) Top() Node    { return n.top }
func (n *ConcatNode) Bottom() Node { return n.bottom }

func (n *ConcatNode) Children() []Node { return []Node{n.top, n.bottom} }

func (n *ConcatNode) NodeType() string { return "VCAT" }

// TransformOp is a column-wise temporal transform
type TransformOp string

const (
	OpLag       TransformOp = "lag"
	OpLead      TransformOp = "lead"
	OpDiff      TransformOp = "diff"
	OpPctChange TransformOp = "pct_change"
)

// TransformNode applies lag, lead, diff or pct_change with offset K
type TransformNode struct {
	Op TransformOp
	K  int

	unary
	meta
}

func NewTransformNode(input Node, op TransformOp, k int) *TransformNode {
	return &TransformNode{Op: op, K: k, unary: unary{input: input}}
}

func (n *TransformNode) NodeType() string { return "TRANSFORM" }

// ResampleNode buckets rows by a calendar period
type ResampleNode struct {
	Period  period.Period
	Reducer aggregate.Reducer
	At      resample.IndexAt

	unary
	meta
}

func NewResampleNode(input Node, p period.Period, r aggregate.Reducer, at resample.IndexAt) *ResampleNode {
	return &ResampleNode{Period: p, Reducer: r, At: at, unary: unary{input: input}}
}

func (n *ResampleNode) NodeType() string { return "RESAMPLE" }

// RollingNode reduces a fixed window over one column
type RollingNode struct {
	Column  string
	Window  int
	Reducer aggregate.Reducer

	unary
	meta
}

func NewRollingNode(input Node, column string, window int, r aggregate.Reducer) *RollingNode {
	return &RollingNode{Column: column, Window: window, Reducer: r, unary: unary{input: input}}
}

func (n *RollingNode) NodeType() string { return "ROLLING" }

// SelectNode subsets rows and columns
type SelectNode struct {
	Rows    subset.RowSelector
	Columns subset.ColumnSelector

	unary
	meta
}

func NewSelectNode(input Node, rows subset.RowSelector, cols subset.ColumnSelector) *SelectNode {
	return &SelectNode{Rows: rows, Columns: cols, unary: unary{input: input}}
}

func (n *SelectNode) NodeType() string { return "SELECT" }

// BetweenNode keeps rows whose index lies in [From, To]
type BetweenNode struct {
	From, To string

	unary
	meta
}

func NewBetweenNode(input Node, from, to string) *BetweenNode {
	return &BetweenNode{From: from, To: to, unary: unary{input: input}}
}

func (n *BetweenNode) NodeType() string { return "BETWEEN" }

// LimitNode keeps the first N rows, or the last N when FromEnd is set
type LimitNode struct {
	N       int
	FromEnd bool

	unary
	meta
}

func NewLimitNode(input Node, n int, fromEnd bool) *LimitNode {
	return &LimitNode{N: n, FromEnd: fromEnd, unary: unary{input: input}}
}

func (n *LimitNode) NodeType() string {
	if n.FromEnd {
		return "TAIL"
	}
	return "HEAD"
}

// RenameNode renames one column
type RenameNode struct {
	From, To string

	unary
	meta
}

func NewRenameNode(input Node, from, to string) *RenameNode {
	return &RenameNode{From: from, To: to, unary: unary{input: input}}
}

func (n *RenameNode) NodeType() string { return "RENAME" }
