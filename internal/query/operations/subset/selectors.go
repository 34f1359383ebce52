package subset

// RowSelector picks rows of a table. The variants are closed: At, Span, List,
// Key, InPeriod, Date and AllRows.
type RowSelector interface {
	rowSelector()
}

// At selects the row at a 0-based position.
type At int

// Span selects rows [From, To).
type Span struct {
	From, To int
}

// List selects rows by position. Duplicates are kept.
type List []int

// Key selects every row whose index equals Value. For an INT index Value is an
// integer; for a TIME index it is a time.Time or a date/timestamp string.
type Key struct {
	Value interface{}
}

// InPeriod selects rows whose TIME index falls in Year and, when non-zero,
// Quarter (1..4) and Month (1..12).
type InPeriod struct {
	Year    int
	Quarter int
	Month   int
}

// Date selects rows whose TIME index equals midnight UTC of a "yyyy-mm-dd" date.
type Date string

// AllRows selects every row.
type AllRows struct{}

func (At) rowSelector()       {}
func (Span) rowSelector()     {}
func (List) rowSelector()     {}
func (Key) rowSelector()      {}
func (InPeriod) rowSelector() {}
func (Date) rowSelector()     {}
func (AllRows) rowSelector()  {}

// ColumnSelector picks non-index columns. The variants are closed: ColumnAt,
// ColumnSpan, ColumnList, Name, Names and AllColumns.
type ColumnSelector interface {
	columnSelector()
}

type ColumnAt int

// ColumnSpan selects columns [From, To).
type ColumnSpan struct {
	From, To int
}

type ColumnList []int

type Name string

type Names []string

type AllColumns struct{}

func (ColumnAt) columnSelector()   {}
func (ColumnSpan) columnSelector() {}
func (ColumnList) columnSelector() {}
func (Name) columnSelector()       {}
func (Names) columnSelector()      {}
func (AllColumns) columnSelector() {}
