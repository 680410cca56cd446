package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
)

// Connection is the driver-level collaborator the schema layer talks to.
// Rows are addressed by column position.
type Connection interface {
	Query(ctx context.Context, query string) ([][]interface{}, error)
	Execute(ctx context.Context, statement string) error
	TableNames(ctx context.Context) ([]string, error)
	// Indexes yields every non-system index in catalog order
	Indexes(ctx context.Context) ([]model.IndexInfo, error)
	GeneratorNames(ctx context.Context) ([]string, error)
}

const (
	tableNamesQuery = `SELECT RDB$RELATION_NAME FROM RDB$RELATIONS
		WHERE RDB$VIEW_BLR IS NULL AND (RDB$SYSTEM_FLAG IS NULL OR RDB$SYSTEM_FLAG = 0)
		ORDER BY RDB$RELATION_NAME`

	indexesQuery = `SELECT i.RDB$RELATION_NAME, i.RDB$INDEX_NAME, i.RDB$UNIQUE_FLAG, s.RDB$FIELD_NAME
		FROM RDB$INDICES i
		JOIN RDB$INDEX_SEGMENTS s ON i.RDB$INDEX_NAME = s.RDB$INDEX_NAME
		WHERE (i.RDB$SYSTEM_FLAG IS NULL OR i.RDB$SYSTEM_FLAG = 0)
		ORDER BY i.RDB$INDEX_NAME, s.RDB$FIELD_POSITION`

	generatorNamesQuery = `SELECT RDB$GENERATOR_NAME FROM RDB$GENERATORS
		WHERE RDB$SYSTEM_FLAG IS NULL OR RDB$SYSTEM_FLAG = 0`
)

// SQLConnection implements Connection on top of database/sql
type SQLConnection struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLConnection wraps an open pool
func NewSQLConnection(db *sql.DB, dialect Dialect) *SQLConnection {
	return &SQLConnection{db: db, dialect: dialect}
}

// DB returns the underlying pool
func (c *SQLConnection) DB() *sql.DB {
	return c.db
}

func (c *SQLConnection) Query(ctx context.Context, query string) ([][]interface{}, error) {
	query = utils.SquishSQL(query)

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, utils.NewCatalogError(err, query)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, utils.NewCatalogError(err, query)
	}

	var result [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, utils.NewCatalogError(err, query)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, utils.NewCatalogError(err, query)
	}

	return result, nil
}

func (c *SQLConnection) Execute(ctx context.Context, statement string) error {
	if _, err := c.db.ExecContext(ctx, statement); err != nil {
		return utils.NewCatalogError(err, statement)
	}
	return nil
}

func (c *SQLConnection) TableNames(ctx context.Context) ([]string, error) {
	return c.names(ctx, tableNamesQuery)
}

func (c *SQLConnection) GeneratorNames(ctx context.Context) ([]string, error) {
	return c.names(ctx, generatorNamesQuery)
}

func (c *SQLConnection) Indexes(ctx context.Context) ([]model.IndexInfo, error) {
	rows, err := c.Query(ctx, indexesQuery)
	if err != nil {
		return nil, err
	}

	var indexes []model.IndexInfo
	for _, row := range rows {
		name := c.dialect.FromCatalogCase(AsString(row[1]))
		column := c.dialect.FromCatalogCase(AsString(row[3]))

		if n := len(indexes); n > 0 && indexes[n-1].IndexName == name {
			indexes[n-1].Columns = append(indexes[n-1].Columns, column)
			continue
		}
		indexes = append(indexes, model.IndexInfo{
			TableName: c.dialect.FromCatalogCase(AsString(row[0])),
			IndexName: name,
			Unique:    AsInt(row[2]) == 1,
			Columns:   []string{column},
		})
	}

	return indexes, nil
}

func (c *SQLConnection) names(ctx context.Context, query string) ([]string, error) {
	rows, err := c.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, c.dialect.FromCatalogCase(AsString(row[0])))
	}
	return names, nil
}

// AsString converts a catalog value to a string with trailing padding removed
func AsString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case []byte:
		return strings.TrimSpace(string(s))
	default:
		return strings.TrimSpace(toString(s))
	}
}

// AsInt converts a catalog value to an int, treating NULL as zero
func AsInt(v interface{}) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	case []byte:
		i, _ := strconv.Atoi(strings.TrimSpace(string(n)))
		return i
	default:
		return 0
	}
}

func toString(v interface{}) string {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int16:
		return strconv.FormatInt(int64(n), 10)
	case int:
		return strconv.Itoa(n)
	default:
		return ""
	}
}
