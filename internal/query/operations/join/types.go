package join

import (
	"strings"

	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

// JoinType represents the type of JOIN operation
type JoinType int

const (
	JoinTypeInner JoinType = iota // Returns only index values present in both tables
	JoinTypeOuter                 // Returns all index values, missing where a side has no match
	JoinTypeLeft                  // Returns all rows of the left table, missing for unmatched right rows
	JoinTypeRight                 // Returns all rows of the right table, missing for unmatched left rows
)

// String returns the string representation of the JOIN type
func (jt JoinType) String() string {
	switch jt {
	case JoinTypeInner:
		return "INNER JOIN"
	case JoinTypeOuter:
		return "OUTER JOIN"
	case JoinTypeLeft:
		return "LEFT JOIN"
	case JoinTypeRight:
		return "RIGHT JOIN"
	default:
		return "UNKNOWN JOIN"
	}
}

// keepLeft reports whether unmatched left rows are emitted.
func (jt JoinType) keepLeft() bool { return jt == JoinTypeOuter || jt == JoinTypeLeft }

// keepRight reports whether unmatched right rows are emitted.
func (jt JoinType) keepRight() bool { return jt == JoinTypeOuter || jt == JoinTypeRight }

// ParseJoinType reads a join mode name. "both" and "all" are accepted as
// aliases of inner and outer.
func ParseJoinType(s string) (JoinType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inner", "both":
		return JoinTypeInner, nil
	case "outer", "all", "full":
		return JoinTypeOuter, nil
	case "left":
		return JoinTypeLeft, nil
	case "right":
		return JoinTypeRight, nil
	}
	return 0, tferrors.NewParameterError("join", s, "unknown join type")
}
