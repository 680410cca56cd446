package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kecicz/activerecord-fb-adapter/internal/database"
	"github.com/kecicz/activerecord-fb-adapter/internal/database/metadata"
	"github.com/kecicz/activerecord-fb-adapter/internal/model"
	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
)

// Observer is notified of the recovered and discarded failures of schema statements
type Observer interface {
	DomainProvisioned()
	BestEffortFailed(op string)
}

// Settings tunes naming rules of generated objects
type Settings struct {
	SequenceSuffix      string
	MaxIdentifierLength int
}

// DefaultSettings match Firebird 2.5 identifier limits
var DefaultSettings = Settings{
	SequenceSuffix:      "_seq",
	MaxIdentifierLength: 31,
}

// SchemaStatements runs Firebird DDL on behalf of migrations.
// It keeps no catalog state between calls.
type SchemaStatements struct {
	conn     database.Connection
	dialect  database.Dialect
	mapper   *utils.DataTypeMapper
	reader   *metadata.CatalogReader
	settings Settings
	logger   logrus.FieldLogger
	observer Observer
}

// NewSchemaStatements creates a new mutator. observer may be nil.
func NewSchemaStatements(conn database.Connection, dialect database.Dialect, mapper *utils.DataTypeMapper,
	settings Settings, logger logrus.FieldLogger, observer Observer) *SchemaStatements {
	if settings.SequenceSuffix == "" {
		settings.SequenceSuffix = DefaultSettings.SequenceSuffix
	}
	if settings.MaxIdentifierLength <= 0 {
		settings.MaxIdentifierLength = DefaultSettings.MaxIdentifierLength
	}
	return &SchemaStatements{
		conn:     conn,
		dialect:  dialect,
		mapper:   mapper,
		reader:   metadata.NewCatalogReader(conn, dialect, mapper),
		settings: settings,
		logger:   logger,
		observer: observer,
	}
}

// Reader returns the catalog reader sharing this mutator's connection
func (s *SchemaStatements) Reader() *metadata.CatalogReader {
	return s.reader
}

// CreateTable creates a table and, unless disabled, its primary key sequence
func (s *SchemaStatements) CreateTable(ctx context.Context, name string, options model.TableOptions, build func(*TableDefinition)) error {
	if options.Temporary {
		return utils.NewUnsupportedFeatureError("Firebird does not support temporary tables")
	}
	if options.As != "" {
		return utils.NewUnsupportedFeatureError("Firebird does not support creating tables with a select")
	}

	log := s.operation("create_table", name)

	td := newTableDefinition(name, options)
	if build != nil {
		build(td)
	}
	needsSequence := options.WantsID() || td.NeedsSequence()

	stmt, err := s.createTableSQL(td)
	if err != nil {
		return err
	}

	if err := s.whileEnsuringBooleanDomain(ctx, log, func() error {
		return s.execute(ctx, log, stmt)
	}); err != nil {
		return err
	}

	if options.SkipSequence || !needsSequence {
		return nil
	}
	s.discard(log, s.CreateSequence(ctx, s.sequenceName(name, options.Sequence)))
	return nil
}

// DropTable drops a table after removing its sequence if one exists
func (s *SchemaStatements) DropTable(ctx context.Context, name string, options model.TableOptions) error {
	log := s.operation("drop_table", name)

	if !options.SkipSequence {
		sequence := s.sequenceName(name, options.Sequence)
		exists, err := s.SequenceExists(ctx, sequence)
		if err != nil {
			return err
		}
		if exists {
			s.discard(log, s.DropSequence(ctx, sequence))
		}
	}

	return s.execute(ctx, log, "DROP TABLE "+s.dialect.QuoteTableName(name))
}

// RenameTable is not available on Firebird
func (s *SchemaStatements) RenameTable(ctx context.Context, name, newName string) error {
	return utils.NewUnsupportedFeatureError("Firebird does not support renaming tables.")
}

// AddColumn adds a column, optionally moving it to a given position
func (s *SchemaStatements) AddColumn(ctx context.Context, table, column string, kind model.ColumnKind, options model.ColumnOptions) error {
	log := s.operation("add_column", table).WithField("column", column)

	def, err := s.columnSQL(ColumnDefinition{Name: column, Kind: kind, Options: options})
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD %s", s.dialect.QuoteTableName(table), def)
	if err := s.whileEnsuringBooleanDomain(ctx, log, func() error {
		return s.execute(ctx, log, stmt)
	}); err != nil {
		return err
	}

	if kind == model.KindPrimaryKey && !options.SkipSequence {
		s.discard(log, s.CreateSequence(ctx, s.sequenceName(table, options.Sequence)))
	}

	if options.Position == nil {
		return nil
	}
	// position is 1-based; the leading id column takes the first slot
	return s.execute(ctx, log, fmt.Sprintf(`
		ALTER TABLE %s
		ALTER COLUMN %s
		POSITION %d`,
		s.dialect.QuoteTableName(table), s.dialect.QuoteColumnName(column), *options.Position+1))
}

// RemoveColumn drops every index covering the column, then the column itself
func (s *SchemaStatements) RemoveColumn(ctx context.Context, table, column string) error {
	log := s.operation("remove_column", table).WithField("column", column)

	indexes, err := s.reader.Indexes(ctx, table)
	if err != nil {
		return err
	}
	for _, ix := range indexes {
		if ix.References(column) {
			if err := s.RemoveIndex(ctx, ix.Table, ix.Name); err != nil {
				return err
			}
		}
	}

	return s.execute(ctx, log, fmt.Sprintf("ALTER TABLE %s DROP %s",
		s.dialect.QuoteTableName(table), s.dialect.QuoteColumnName(column)))
}

// ChangeColumn changes the type of a column, then its nullability and default
// when those options are given. The statements are not atomic.
func (s *SchemaStatements) ChangeColumn(ctx context.Context, table, column string, kind model.ColumnKind, options model.ColumnOptions) error {
	log := s.operation("change_column", table).WithField("column", column)

	typeSQL, err := s.mapper.TypeToSQL(kind, options.Limit, options.Precision, options.Scale)
	if err != nil {
		return err
	}

	if err := s.execute(ctx, log, fmt.Sprintf(`
		ALTER TABLE %s
		ALTER COLUMN %s TYPE %s`,
		s.dialect.QuoteTableName(table), s.dialect.QuoteColumnName(column), typeSQL)); err != nil {
		return err
	}

	if options.Null != nil {
		if err := s.ChangeColumnNull(ctx, table, column, *options.Null, nil); err != nil {
			return err
		}
	}
	if options.Default != nil {
		return s.ChangeColumnDefault(ctx, table, column, options.Default)
	}
	return nil
}

// ChangeColumnDefault sets a new default for a column. A nil default cannot be
// expressed here; callers must execute the statement themselves.
func (s *SchemaStatements) ChangeColumnDefault(ctx context.Context, table, column string, value interface{}) error {
	if value == nil {
		return utils.NewUnsupportedFeatureError("Firebird cannot set a column default to NULL through this statement")
	}
	log := s.operation("change_column_default", table).WithField("column", column)

	return s.execute(ctx, log, fmt.Sprintf(`
		ALTER TABLE %s
		ALTER %s
		SET DEFAULT %s`,
		s.dialect.QuoteTableName(table), s.dialect.QuoteColumnName(column), s.dialect.Quote(value)))
}

// ChangeColumnNull writes the null flag straight into the catalog, setting
// the default first when one is given
func (s *SchemaStatements) ChangeColumnNull(ctx context.Context, table, column string, nullable bool, value interface{}) error {
	if value != nil {
		if err := s.ChangeColumnDefault(ctx, table, column, value); err != nil {
			return err
		}
	}
	log := s.operation("change_column_null", table).WithField("column", column)

	var flag interface{}
	if !nullable {
		flag = 1
	}
	return s.execute(ctx, log, fmt.Sprintf(`
		UPDATE RDB$RELATION_FIELDS
		SET RDB$NULL_FLAG=%s
		WHERE RDB$FIELD_NAME=%s
		AND RDB$RELATION_NAME=%s`,
		s.dialect.Quote(flag), s.catalogLiteral(column), s.catalogLiteral(table)))
}

// RenameColumn renames a column and recreates the indexes that covered it
func (s *SchemaStatements) RenameColumn(ctx context.Context, table, column, newColumn string) error {
	log := s.operation("rename_column", table).WithField("column", column)

	indexes, err := s.reader.Indexes(ctx, table)
	if err != nil {
		return err
	}

	if err := s.execute(ctx, log, fmt.Sprintf(`
		ALTER TABLE %s
		ALTER %s
		TO %s`,
		s.dialect.QuoteTableName(table), s.dialect.QuoteColumnName(column), s.dialect.QuoteColumnName(newColumn))); err != nil {
		return err
	}

	for _, ix := range indexes {
		if !ix.References(column) {
			continue
		}
		if err := s.renameIndexColumn(ctx, table, ix, column, newColumn); err != nil {
			return err
		}
	}
	return nil
}

func (s *SchemaStatements) renameIndexColumn(ctx context.Context, table string, ix model.IndexDescriptor, column, newColumn string) error {
	columns := make([]string, len(ix.Columns))
	for i, c := range ix.Columns {
		if c == column {
			c = newColumn
		}
		columns[i] = c
	}

	name := ix.Name
	if strings.EqualFold(name, IndexName(table, ix.Columns)) {
		name = IndexName(table, columns)
	}

	if err := s.RemoveIndex(ctx, table, ix.Name); err != nil {
		return err
	}
	return s.AddIndex(ctx, table, columns, model.IndexOptions{Name: name, Unique: ix.Unique})
}

// AddIndex creates an index, named <table>_<columns> unless a name is given
func (s *SchemaStatements) AddIndex(ctx context.Context, table string, columns []string, options model.IndexOptions) error {
	if len(columns) == 0 {
		return utils.NewValidationError("index needs at least one column", table)
	}
	log := s.operation("add_index", table)

	name := options.Name
	if name == "" {
		name = IndexName(table, columns)
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = s.dialect.QuoteColumnName(c)
	}

	unique := ""
	if options.Unique {
		unique = "UNIQUE "
	}
	return s.execute(ctx, log, fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)",
		unique, s.dialect.QuoteColumnName(name), s.dialect.QuoteTableName(table), strings.Join(quoted, ", ")))
}

// RemoveIndex drops an index by name
func (s *SchemaStatements) RemoveIndex(ctx context.Context, table, index string) error {
	log := s.operation("remove_index", table).WithField("index", index)
	return s.execute(ctx, log, "DROP INDEX "+s.dialect.QuoteColumnName(index))
}

// IndexName is the default name of an index over columns
func IndexName(table string, columns []string) string {
	return table + "_" + strings.Join(columns, "_")
}

// TypeToSQL renders the native type of a column kind
func (s *SchemaStatements) TypeToSQL(kind model.ColumnKind, limit, precision, scale *int) (string, error) {
	return s.mapper.TypeToSQL(kind, limit, precision, scale)
}

func (s *SchemaStatements) createTableSQL(td *TableDefinition) (string, error) {
	columns := make([]string, 0, len(td.Columns()))
	for _, c := range td.Columns() {
		def, err := s.columnSQL(c)
		if err != nil {
			return "", err
		}
		columns = append(columns, def)
	}

	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", s.dialect.QuoteTableName(td.Name()), strings.Join(columns, ", "))
	if td.options.Options != "" {
		stmt += " " + td.options.Options
	}
	return stmt, nil
}

// columnSQL renders "<name> <type> [DEFAULT v] [NOT NULL]"
func (s *SchemaStatements) columnSQL(c ColumnDefinition) (string, error) {
	typeSQL, err := s.mapper.TypeToSQL(c.Kind, c.Options.Limit, c.Options.Precision, c.Options.Scale)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(s.dialect.QuoteColumnName(c.Name))
	b.WriteString(" ")
	b.WriteString(typeSQL)
	if c.Options.Default != nil {
		b.WriteString(" DEFAULT ")
		b.WriteString(s.dialect.Quote(c.Options.Default))
	}
	// primary key type already carries NOT NULL
	if c.Kind != model.KindPrimaryKey && c.Options.Null != nil && !*c.Options.Null {
		b.WriteString(" NOT NULL")
	}
	return b.String(), nil
}

func (s *SchemaStatements) execute(ctx context.Context, log logrus.FieldLogger, stmt string) error {
	stmt = utils.SquishSQL(stmt)
	log.WithField("sql", stmt).Debug("executing schema statement")
	return s.conn.Execute(ctx, stmt)
}

func (s *SchemaStatements) operation(op, table string) logrus.FieldLogger {
	return s.logger.WithFields(logrus.Fields{
		"op":    op,
		"table": table,
		"op_id": utils.GenerateUUID(),
	})
}

// catalogLiteral renders an identifier as a string literal in catalog case
func (s *SchemaStatements) catalogLiteral(name string) string {
	return s.dialect.Quote(s.dialect.ToCatalogCase(name))
}
