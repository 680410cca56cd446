package model

import "strings"

// ColumnKind is the portable column type used by migrations
type ColumnKind string

const (
	KindPrimaryKey ColumnKind = "primary_key"
	KindString     ColumnKind = "string"
	KindText       ColumnKind = "text"
	KindInteger    ColumnKind = "integer"
	KindFloat      ColumnKind = "float"
	KindDecimal    ColumnKind = "decimal"
	KindDateTime   ColumnKind = "datetime"
	KindTimestamp  ColumnKind = "timestamp"
	KindTime       ColumnKind = "time"
	KindDate       ColumnKind = "date"
	KindBinary     ColumnKind = "binary"
	KindBoolean    ColumnKind = "boolean"
)

// TypeMetadata is the decoded form of a catalog field type
type TypeMetadata struct {
	SQLType   string     `json:"sqlType"`
	Kind      ColumnKind `json:"kind"`
	Limit     int        `json:"limit,omitempty"`
	Precision int        `json:"precision,omitempty"`
	Scale     int        `json:"scale,omitempty"`
}

// ColumnDescriptor is a snapshot of one column as read from the catalog.
// It is never cached across DDL operations.
type ColumnDescriptor struct {
	Name          string       `json:"name"`
	Domain        string       `json:"domain"`
	Type          TypeMetadata `json:"type"`
	Null          bool         `json:"null"`
	DefaultSource string       `json:"defaultSource,omitempty"`
	Limit         int          `json:"limit,omitempty"`
	Precision     int          `json:"precision,omitempty"`
	Scale         int          `json:"scale,omitempty"`
	SubType       int          `json:"subType,omitempty"`
}

// DefaultValue extracts the literal from a "DEFAULT <literal>" source.
// ok is false when the column has no default.
func (c ColumnDescriptor) DefaultValue() (value string, ok bool) {
	src := strings.TrimSpace(c.DefaultSource)
	if src == "" {
		return "", false
	}
	if len(src) >= 7 && strings.EqualFold(src[:7], "DEFAULT") {
		src = strings.TrimSpace(src[7:])
	}
	if strings.EqualFold(src, "NULL") {
		return "", false
	}
	if len(src) >= 2 && src[0] == '\'' && src[len(src)-1] == '\'' {
		src = strings.ReplaceAll(src[1:len(src)-1], "''", "'")
	}
	return src, true
}

// IndexDescriptor describes a user index on a table
type IndexDescriptor struct {
	Table   string   `json:"table"`
	Name    string   `json:"name"`
	Unique  bool     `json:"unique"`
	Columns []string `json:"columns"`
}

// References reports whether the index covers the given column
func (ix IndexDescriptor) References(column string) bool {
	for _, c := range ix.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// IndexInfo is the raw index metadata yielded by a connection, with
// identifiers already restored to portable case.
type IndexInfo struct {
	TableName string
	IndexName string
	Unique    bool
	Columns   []string
}

// BooleanDomain is the shared catalog domain backing every boolean column
type BooleanDomain struct {
	Name  string `mapstructure:"name" validate:"required"`
	Type  string `mapstructure:"type" validate:"required"`
	True  string `mapstructure:"true" validate:"required"`
	False string `mapstructure:"false" validate:"required"`
}

// DefaultBooleanDomain is the well-known domain key used when none is configured
var DefaultBooleanDomain = BooleanDomain{
	Name:  "d_boolean",
	Type:  "smallint",
	True:  "1",
	False: "0",
}

// CatalogField is the raw field descriptor stored in RDB$FIELDS
type CatalogField struct {
	Type      int
	SubType   int
	Length    int
	Precision int
	Scale     int // stored negative by Firebird
	Domain    string
}
