// Package timeframe provides immutable tables indexed by a sorted integer or
// time column, with index-aware subsetting, alignment joins, temporal
// transforms, resampling, rolling windows and row concatenation.
//
// # Building tables
//
//	idx, _ := timeframe.Times("Index", days)
//	t, _ := timeframe.FromColumnsAndIndex([]*timeframe.Column{timeframe.Floats("x1", values)}, idx)
//
// Construction sorts rows by the index (stable) and rejects tables whose
// columns disagree in length or name.
//
// # Operations
//
// Every operation returns a new table and leaves its inputs untouched:
//
//	weekly, _ := timeframe.Resample(t, timeframe.Every(timeframe.Week, 1), timeframe.Mean, timeframe.AtFirst)
//	changes, _ := timeframe.PctChange(t, 1)
//	q1, _ := timeframe.Select(t, timeframe.InPeriod{Year: 2017, Quarter: 1}, timeframe.AllColumns{})
//	both, _ := timeframe.JoinAll(timeframe.Outer, prices, volumes)
//
// # Errors
//
// Failures unwrap to one of ErrType, ErrParameter, ErrBounds, ErrFormat or
// ErrSchemaMismatch; use errors.Is to classify them.
package timeframe
