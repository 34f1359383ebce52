package join

import (
	"log/slog"

	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/table"
)

// ExecuteJoin aligns two tables on their index values.
// This is the unified API for all JOIN types (INNER, OUTER, LEFT, RIGHT).
//
// Both indexes are sorted, so the tables are merged in one pass. An index value
// appearing p times on the left and q times on the right yields p*q rows.
// Columns of the right table whose names are taken get a _1, _2, ... suffix.
func ExecuteJoin(left, right *table.Table, joinType JoinType) (*table.Table, error) {
	if err := validateJoin(left, right); err != nil {
		return nil, err
	}
	if joinType < JoinTypeInner || joinType > JoinTypeRight {
		return nil, tferrors.NewParameterError("join", int(joinType), "unknown join type")
	}

	slog.Debug("Starting "+joinType.String(),
		slog.Int("left_rows", left.NRow()),
		slog.Int("right_rows", right.NRow()),
		slog.String("index", left.IndexName()),
	)

	leftRows, rightRows, unmatched := mergeRows(left, right, joinType)

	index := buildIndex(left, right, leftRows, rightRows)
	result, err := table.Assemble(index, combineColumns(left, right, leftRows, rightRows))
	if err != nil {
		return nil, err
	}

	slog.Info(joinType.String()+" completed",
		slog.Int("result_rows", result.NRow()),
		slog.Int("result_columns", result.NCol()),
		slog.Int("unmatched_rows", unmatched),
	)

	return result, nil
}

// Join performs an OUTER JOIN
func Join(left, right *table.Table) (*table.Table, error) {
	return ExecuteJoin(left, right, JoinTypeOuter)
}

// JoinAll folds ExecuteJoin over tables from left to right.
func JoinAll(joinType JoinType, tables ...*table.Table) (*table.Table, error) {
	if len(tables) == 0 {
		return nil, tferrors.NewParameterError("join", 0, "at least one table is required")
	}
	result := tables[0]
	for _, next := range tables[1:] {
		var err error
		result, err = ExecuteJoin(result, next, joinType)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// mergeRows walks both sorted indexes and returns, per output row, the left
// and right source positions (-1 when that side is missing) and how many
// unmatched rows were emitted.
func mergeRows(left, right *table.Table, joinType JoinType) ([]int, []int, int) {
	nl, nr := left.NRow(), right.NRow()
	leftRows := make([]int, 0, max(nl, nr))
	rightRows := make([]int, 0, max(nl, nr))
	unmatched := 0

	emit := func(l, r int) {
		leftRows = append(leftRows, l)
		rightRows = append(rightRows, r)
		if l < 0 || r < 0 {
			unmatched++
		}
	}

	i, j := 0, 0
	for i < nl && j < nr {
		kl, kr := left.Key(i), right.Key(j)
		switch {
		case kl < kr:
			if joinType.keepLeft() {
				emit(i, -1)
			}
			i++
		case kl > kr:
			if joinType.keepRight() {
				emit(-1, j)
			}
			j++
		default:
			iEnd := i
			for iEnd < nl && left.Key(iEnd) == kl {
				iEnd++
			}
			jEnd := j
			for jEnd < nr && right.Key(jEnd) == kr {
				jEnd++
			}
			for a := i; a < iEnd; a++ {
				for b := j; b < jEnd; b++ {
					emit(a, b)
				}
			}
			i, j = iEnd, jEnd
		}
	}
	for ; i < nl && joinType.keepLeft(); i++ {
		emit(i, -1)
	}
	for ; j < nr && joinType.keepRight(); j++ {
		emit(-1, j)
	}
	return leftRows, rightRows, unmatched
}
