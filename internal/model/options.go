package model

// TableOptions controls CreateTable and DropTable.
type TableOptions struct {
	// ID controls the implicit primary key column. nil means true.
	ID *bool
	// PrimaryKey names the implicit primary key column, "id" when empty.
	PrimaryKey string
	// Sequence overrides the default "<table>_seq" name.
	Sequence string
	// SkipSequence disables sequence creation and removal.
	SkipSequence bool
	// Temporary and As are rejected by Firebird.
	Temporary bool
	As        string
	// Options is appended verbatim after the column list.
	Options string
}

// WantsID reports whether the implicit primary key column is requested
func (o TableOptions) WantsID() bool {
	return o.ID == nil || *o.ID
}

// ColumnOptions carries the optional parts of a column definition.
// nil pointers mean "not given".
type ColumnOptions struct {
	Limit     *int
	Precision *int
	Scale     *int
	Null      *bool
	// Default is nil when no default is given. Firebird cannot be told to
	// drop a default through this API.
	Default  interface{}
	Position *int
	// Sequence and SkipSequence apply to primary key columns only.
	Sequence     string
	SkipSequence bool
}

// IndexOptions controls AddIndex
type IndexOptions struct {
	Name   string
	Unique bool
}

// Int and Bool are helpers for filling optional fields
func Int(v int) *int    { return &v }
func Bool(v bool) *bool { return &v }
