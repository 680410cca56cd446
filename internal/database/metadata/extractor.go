package metadata

import (
	"context"
	"fmt"
	"regexp"

	"github.com/kecicz/activerecord-fb-adapter/internal/database"
	"github.com/kecicz/activerecord-fb-adapter/internal/model"
	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
)

// system-generated indexes (primary key, foreign key, unique constraint backing indexes)
var systemIndexName = regexp.MustCompile(`(?i)^rdb\$`)

// CatalogReader reads schema metadata from the Firebird system tables.
// Every call re-queries the catalog; nothing is cached.
type CatalogReader struct {
	conn    database.Connection
	dialect database.Dialect
	mapper  *utils.DataTypeMapper
}

// NewCatalogReader creates a new catalog reader
func NewCatalogReader(conn database.Connection, dialect database.Dialect, mapper *utils.DataTypeMapper) *CatalogReader {
	return &CatalogReader{
		conn:    conn,
		dialect: dialect,
		mapper:  mapper,
	}
}

// Tables lists user tables
func (r *CatalogReader) Tables(ctx context.Context) ([]string, error) {
	return r.conn.TableNames(ctx)
}

// Views lists user views
func (r *CatalogReader) Views(ctx context.Context) ([]string, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT rdb$relation_name
		FROM rdb$relations
		WHERE rdb$view_blr IS NOT NULL
		AND (rdb$system_flag IS NULL OR rdb$system_flag = 0)`)
	if err != nil {
		return nil, err
	}

	views := make([]string, 0, len(rows))
	for _, row := range rows {
		views = append(views, r.dialect.FromCatalogCase(database.AsString(row[0])))
	}
	return views, nil
}

// Indexes returns the user indexes of a table in the order the connection yields them
func (r *CatalogReader) Indexes(ctx context.Context, tableName string) ([]model.IndexDescriptor, error) {
	all, err := r.conn.Indexes(ctx)
	if err != nil {
		return nil, err
	}

	target := r.dialect.ToCatalogCase(tableName)
	var indexes []model.IndexDescriptor
	for _, ix := range all {
		if r.dialect.ToCatalogCase(ix.TableName) != target || systemIndexName.MatchString(ix.IndexName) {
			continue
		}
		indexes = append(indexes, model.IndexDescriptor{
			Table:   tableName,
			Name:    ix.IndexName,
			Unique:  ix.Unique,
			Columns: append([]string(nil), ix.Columns...),
		})
	}
	return indexes, nil
}

// PrimaryKey returns the first field of the table's PRIMARY KEY constraint.
// Composite keys are reported by their first segment only.
func (r *CatalogReader) PrimaryKey(ctx context.Context, tableName string) (string, bool, error) {
	rows, err := r.conn.Query(ctx, fmt.Sprintf(`
		SELECT s.rdb$field_name
		FROM rdb$indices i
		JOIN rdb$index_segments s ON i.rdb$index_name = s.rdb$index_name
		LEFT JOIN rdb$relation_constraints c ON i.rdb$index_name = c.rdb$index_name
		WHERE i.rdb$relation_name = %s
		AND c.rdb$constraint_type = 'PRIMARY KEY'
		ORDER BY s.rdb$field_position`, r.catalogLiteral(tableName)))
	if err != nil {
		return "", false, err
	}

	if len(rows) == 0 || len(rows[0]) == 0 {
		return "", false, nil
	}
	return r.dialect.FromCatalogCase(database.AsString(rows[0][0])), true, nil
}

// Columns returns the columns of a table in declaration order
func (r *CatalogReader) Columns(ctx context.Context, tableName string) ([]model.ColumnDescriptor, error) {
	rows, err := r.conn.Query(ctx, fmt.Sprintf(`
		SELECT
			r.rdb$field_name name,
			r.rdb$field_source "domain",
			f.rdb$field_type type,
			f.rdb$field_sub_type "sub_type",
			f.rdb$field_length "limit",
			f.rdb$field_precision "precision",
			f.rdb$field_scale "scale",
			COALESCE(r.rdb$default_source, f.rdb$default_source) default_source,
			COALESCE(r.rdb$null_flag, f.rdb$null_flag) null_flag
		FROM rdb$relation_fields r
		JOIN rdb$fields f ON r.rdb$field_source = f.rdb$field_name
		WHERE r.rdb$relation_name = %s
		ORDER BY r.rdb$field_position`, r.catalogLiteral(tableName)))
	if err != nil {
		return nil, err
	}

	columns := make([]model.ColumnDescriptor, 0, len(rows))
	for _, row := range rows {
		if len(row) < 9 {
			return nil, utils.NewErrorBuilder(utils.ErrCodeCatalogError).
				WithMessage(fmt.Sprintf("unexpected column definition row with %d values", len(row))).
				Build()
		}
		columns = append(columns, r.columnFromRow(row))
	}
	return columns, nil
}

func (r *CatalogReader) columnFromRow(row []interface{}) model.ColumnDescriptor {
	field := model.CatalogField{
		Domain:    database.AsString(row[1]),
		Type:      database.AsInt(row[2]),
		SubType:   database.AsInt(row[3]),
		Length:    database.AsInt(row[4]),
		Precision: database.AsInt(row[5]),
		Scale:     database.AsInt(row[6]),
	}

	return model.ColumnDescriptor{
		Name:          r.dialect.FromCatalogCase(database.AsString(row[0])),
		Domain:        field.Domain,
		Type:          r.mapper.Decode(field),
		Null:          database.AsInt(row[8]) == 0,
		DefaultSource: database.AsString(row[7]),
		Limit:         field.Length,
		Precision:     field.Precision,
		Scale:         field.Scale,
		SubType:       field.SubType,
	}
}

// catalogLiteral renders an identifier as a string literal in catalog case
func (r *CatalogReader) catalogLiteral(name string) string {
	return r.dialect.Quote(r.dialect.ToCatalogCase(name))
}
