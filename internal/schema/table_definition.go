package schema

import (
	"github.com/kecicz/activerecord-fb-adapter/internal/model"
)

const defaultPrimaryKey = "id"

// ColumnDefinition is one column declared inside CreateTable
type ColumnDefinition struct {
	Name    string
	Kind    model.ColumnKind
	Options model.ColumnOptions
}

// TableDefinition collects the columns of a table being created.
// Declaring a primary key column marks the table as needing a sequence.
type TableDefinition struct {
	name          string
	options       model.TableOptions
	columns       []ColumnDefinition
	needsSequence bool
}

func newTableDefinition(name string, options model.TableOptions) *TableDefinition {
	td := &TableDefinition{name: name, options: options}
	if options.WantsID() {
		pk := options.PrimaryKey
		if pk == "" {
			pk = defaultPrimaryKey
		}
		td.PrimaryKey(pk)
	}
	return td
}

// Name returns the table name
func (td *TableDefinition) Name() string {
	return td.name
}

// Column declares a column
func (td *TableDefinition) Column(name string, kind model.ColumnKind, options model.ColumnOptions) *TableDefinition {
	if kind == model.KindPrimaryKey {
		td.needsSequence = true
	}
	td.columns = append(td.columns, ColumnDefinition{Name: name, Kind: kind, Options: options})
	return td
}

// PrimaryKey declares an integer primary key column backed by a sequence
func (td *TableDefinition) PrimaryKey(name string) *TableDefinition {
	return td.Column(name, model.KindPrimaryKey, model.ColumnOptions{})
}

func (td *TableDefinition) String(name string, options model.ColumnOptions) *TableDefinition {
	return td.Column(name, model.KindString, options)
}

func (td *TableDefinition) Integer(name string, options model.ColumnOptions) *TableDefinition {
	return td.Column(name, model.KindInteger, options)
}

func (td *TableDefinition) Boolean(name string, options model.ColumnOptions) *TableDefinition {
	return td.Column(name, model.KindBoolean, options)
}

// Timestamps adds not-null created_at and updated_at columns
func (td *TableDefinition) Timestamps() *TableDefinition {
	notNull := model.ColumnOptions{Null: model.Bool(false)}
	td.Column("created_at", model.KindDateTime, notNull)
	return td.Column("updated_at", model.KindDateTime, notNull)
}

// Columns returns the declared columns in declaration order
func (td *TableDefinition) Columns() []ColumnDefinition {
	return td.columns
}

// NeedsSequence reports whether a primary key column was declared
func (td *TableDefinition) NeedsSequence() bool {
	return td.needsSequence
}
