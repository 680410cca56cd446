package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
)

// Dialect quotes values and identifiers and folds identifier case between
// the portable form used by callers and the catalog form stored by Firebird
type Dialect interface {
	Quote(value interface{}) string
	QuoteTableName(name string) string
	QuoteColumnName(name string) string
	ToCatalogCase(name string) string
	FromCatalogCase(name string) string
}

// FirebirdDialect is the default Dialect.
//
// Lower-case portable names are stored upper-cased; any name containing an
// upper-case letter is kept as-is and always quoted, so restoring an
// all-upper catalog name back to lower case is lossless for canonical names.
type FirebirdDialect struct {
	booleanDomain model.BooleanDomain
}

// NewFirebirdDialect creates a dialect that renders booleans with the
// literals of the given domain
func NewFirebirdDialect(booleanDomain model.BooleanDomain) *FirebirdDialect {
	return &FirebirdDialect{booleanDomain: booleanDomain}
}

func (d *FirebirdDialect) ToCatalogCase(name string) string {
	if name == strings.ToLower(name) {
		return strings.ToUpper(name)
	}
	return name
}

func (d *FirebirdDialect) FromCatalogCase(name string) string {
	name = strings.TrimRight(name, " ")
	if name == strings.ToUpper(name) {
		return strings.ToLower(name)
	}
	return name
}

func (d *FirebirdDialect) QuoteColumnName(name string) string {
	return `"` + strings.ReplaceAll(d.ToCatalogCase(name), `"`, `""`) + `"`
}

func (d *FirebirdDialect) QuoteTableName(name string) string {
	return d.QuoteColumnName(name)
}

func (d *FirebirdDialect) Quote(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return d.booleanDomain.True
		}
		return d.booleanDomain.False
	case string:
		return quoteString(v)
	case []byte:
		return quoteString(string(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%v", v)
	case time.Time:
		return quoteString(v.Format("2006-01-02 15:04:05.0000"))
	case fmt.Stringer:
		return quoteString(v.String())
	default:
		return quoteString(fmt.Sprintf("%v", v))
	}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
