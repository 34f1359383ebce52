package column

// Take gathers the rows at the given positions into a new column.
// A position of -1 produces a missing value.
func (c *Column) Take(rows []int) *Column {
	if from, ok := contiguous(rows); ok && from >= 0 {
		return c.Slice(from, from+len(rows))
	}
	b := NewBuilder(c.typ, len(rows))
	for _, r := range rows {
		if r < 0 {
			b.AppendNull()
			continue
		}
		b.AppendFrom(c, r)
	}
	return b.Finish(c.name)
}

// Shift moves values k rows down (k > 0) or up (k < 0), filling the
// vacated rows with missing values. The length is unchanged.
func (c *Column) Shift(k int) *Column {
	n := c.Len()
	rows := make([]int, n)
	for i := range rows {
		src := i - k
		if src < 0 || src >= n {
			rows[i] = -1
			continue
		}
		rows[i] = src
	}
	return c.Take(rows)
}

// Cast converts a column to typ. Only identity and INT to FLOAT are supported.
func (c *Column) Cast(typ ColumnType) (*Column, bool) {
	if c.typ == typ {
		return c, true
	}
	if c.typ != ColumnTypeInt || typ != ColumnTypeFloat {
		return nil, false
	}
	b := NewBuilder(typ, c.Len())
	for i := 0; i < c.Len(); i++ {
		b.AppendFrom(c, i)
	}
	return b.Finish(c.name), true
}

// Concat stacks parts end to end under name. All parts must unify;
// INT and FLOAT together produce FLOAT.
func Concat(name string, parts ...*Column) (*Column, bool) {
	if len(parts) == 0 {
		return nil, false
	}
	typ := parts[0].typ
	total := 0
	for _, p := range parts {
		t, ok := Unify(typ, p.typ)
		if !ok {
			return nil, false
		}
		typ = t
		total += p.Len()
	}
	b := NewBuilder(typ, total)
	for _, p := range parts {
		for i := 0; i < p.Len(); i++ {
			b.AppendFrom(p, i)
		}
	}
	return b.Finish(name), true
}

// contiguous reports whether rows is a run of consecutive positions and returns its start.
func contiguous(rows []int) (int, bool) {
	if len(rows) == 0 {
		return 0, true
	}
	for i := 1; i < len(rows); i++ {
		if rows[i] != rows[i-1]+1 {
			return 0, false
		}
	}
	return rows[0], true
}
