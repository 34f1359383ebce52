package aggregate

import (
	"math"
	"slices"
	"sort"

	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

// Func reduces the non-missing values of a group to one value.
// Returning NaN marks the result as missing.
type Func func(vals []float64) float64

// Reducer is a named reduction used by resampling and rolling windows.
// Its name suffixes output column names, e.g. "x_mean".
type Reducer struct {
	Name string
	Fn   Func
	// ZeroOnEmpty makes an empty group reduce to Fn(nil) instead of missing.
	ZeroOnEmpty bool
}

// Reduce applies the reducer. ok is false when the result is missing.
func (r Reducer) Reduce(vals []float64) (v float64, ok bool) {
	if len(vals) == 0 && !r.ZeroOnEmpty {
		return 0, false
	}
	v = r.Fn(vals)
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Custom wraps a user function as a reducer.
func Custom(name string, fn Func) Reducer {
	return Reducer{Name: name, Fn: fn}
}

var (
	Count  = Reducer{Name: "count", Fn: count, ZeroOnEmpty: true}
	Sum    = Reducer{Name: "sum", Fn: sum}
	Prod   = Reducer{Name: "prod", Fn: prod}
	Mean   = Reducer{Name: "mean", Fn: mean}
	Min    = Reducer{Name: "min", Fn: minimum}
	Max    = Reducer{Name: "max", Fn: maximum}
	First  = Reducer{Name: "first", Fn: func(v []float64) float64 { return v[0] }}
	Last   = Reducer{Name: "last", Fn: func(v []float64) float64 { return v[len(v)-1] }}
	Median = Reducer{Name: "median", Fn: median}
	Var    = Reducer{Name: "var", Fn: variance}
	Std    = Reducer{Name: "std", Fn: func(v []float64) float64 { return math.Sqrt(variance(v)) }}
)

// Funcs is the registry of named reducers.
var Funcs map[string]Reducer

func init() {
	Funcs = make(map[string]Reducer)
	for _, r := range []Reducer{Count, Sum, Prod, Mean, Min, Max, First, Last, Median, Var, Std} {
		Funcs[r.Name] = r
	}
}

// Lookup returns the registered reducer called name.
func Lookup(name string) (Reducer, error) {
	r, ok := Funcs[name]
	if !ok {
		return Reducer{}, tferrors.NewParameterError("aggregate", name, "reducer not registered")
	}
	return r, nil
}

// Names returns the registered reducer names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Funcs))
	for n := range Funcs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func count(v []float64) float64 { return float64(len(v)) }

func sum(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s
}

func prod(v []float64) float64 {
	p := 1.0
	for _, x := range v {
		p *= x
	}
	return p
}

func mean(v []float64) float64 { return sum(v) / float64(len(v)) }

func minimum(v []float64) float64 { return slices.Min(v) }

func maximum(v []float64) float64 { return slices.Max(v) }

func median(v []float64) float64 {
	s := slices.Clone(v)
	slices.Sort(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// variance is the sample variance; fewer than two values give NaN.
func variance(v []float64) float64 {
	n := len(v)
	if n < 2 {
		return math.NaN()
	}
	m := mean(v)
	ss := 0.0
	for _, x := range v {
		d := x - m
		ss += d * d
	}
	return ss / float64(n-1)
}
