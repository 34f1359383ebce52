package transform

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

// lagged computes op(x[i], x[i-k]) for every i >= k where both operands are
// present. The first k results and any result with a missing operand are missing.
func lagged[T number, R number](vals []T, valid []bool, k int, op func(cur, prev T) R) ([]R, []bool) {
	out := make([]R, len(vals))
	ok := make([]bool, len(vals))
	for i := k; i < len(vals); i++ {
		if !valid[i] || !valid[i-k] {
			continue
		}
		out[i] = op(vals[i], vals[i-k])
		ok[i] = true
	}
	return out, ok
}

func difference[T number](cur, prev T) T { return cur - prev }

func pctChange[T number](cur, prev T) float64 { return float64(cur)/float64(prev) - 1 }
