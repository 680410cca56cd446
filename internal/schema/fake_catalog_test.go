package schema

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/kecicz/activerecord-fb-adapter/internal/database"
	"github.com/kecicz/activerecord-fb-adapter/internal/model"
	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
)

var (
	createIndexStmt  = regexp.MustCompile(`^CREATE (UNIQUE )?INDEX "([^"]+)" ON "([^"]+)" \((.+)\)$`)
	dropIndexStmt    = regexp.MustCompile(`^DROP INDEX "([^"]+)"$`)
	renameColumnStmt = regexp.MustCompile(`^ALTER TABLE "([^"]+)" ALTER "([^"]+)" TO "([^"]+)"$`)
	quotedName       = regexp.MustCompile(`"([^"]+)"`)
)

// fakeCatalog is a Connection that records statements and keeps just enough
// catalog state to answer the mutator's follow-up reads
type fakeCatalog struct {
	dialect    database.Dialect
	domain     model.BooleanDomain
	statements []string

	domainExists bool
	// domainRace makes CREATE DOMAIN lose to a concurrent session
	domainRace bool
	// domainBroken makes CREATE DOMAIN succeed without creating anything
	domainBroken bool

	indexes    []model.IndexInfo
	generators []string
	failOn     map[string]error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		dialect: database.NewFirebirdDialect(model.DefaultBooleanDomain),
		domain:  model.DefaultBooleanDomain,
		failOn:  map[string]error{},
	}
}

func (f *fakeCatalog) Query(ctx context.Context, query string) ([][]interface{}, error) {
	return nil, nil
}

func (f *fakeCatalog) Execute(ctx context.Context, stmt string) error {
	f.statements = append(f.statements, stmt)

	for prefix, err := range f.failOn {
		if strings.HasPrefix(stmt, prefix) {
			return err
		}
	}

	switch {
	case strings.HasPrefix(stmt, "CREATE DOMAIN"):
		if f.domainExists || f.domainRace {
			f.domainExists = true
			return errors.New("unsuccessful metadata update\nDEFINE DOMAIN " + strings.ToUpper(f.domain.Name) +
				" failed\nattempt to store duplicate value (visible to active transactions) in unique index \"RDB$INDEX_2\"")
		}
		if !f.domainBroken {
			f.domainExists = true
		}
		return nil
	case !f.domainExists && strings.Contains(stmt, " "+f.domain.Name):
		return errors.New("Dynamic SQL Error\nSQL error code = -607\nInvalid command\nSpecified domain or source column " +
			strings.ToUpper(f.domain.Name) + " does not exist")
	case strings.HasPrefix(stmt, "CREATE SEQUENCE "):
		name := strings.TrimPrefix(stmt, "CREATE SEQUENCE ")
		if f.hasGenerator(name) {
			return errors.New("unsuccessful metadata update\nCREATE SEQUENCE " + strings.ToUpper(name) + " failed\nSequence " + strings.ToUpper(name) + " already exists")
		}
		f.generators = append(f.generators, name)
	case strings.HasPrefix(stmt, "DROP SEQUENCE "):
		name := strings.TrimPrefix(stmt, "DROP SEQUENCE ")
		for i, g := range f.generators {
			if strings.EqualFold(g, name) {
				f.generators = append(f.generators[:i], f.generators[i+1:]...)
				return nil
			}
		}
		return errors.New("unsuccessful metadata update\nGenerator " + strings.ToUpper(name) + " not found")
	}

	if m := createIndexStmt.FindStringSubmatch(stmt); m != nil {
		var columns []string
		for _, c := range quotedName.FindAllStringSubmatch(m[4], -1) {
			columns = append(columns, f.dialect.FromCatalogCase(c[1]))
		}
		f.indexes = append(f.indexes, model.IndexInfo{
			TableName: f.dialect.FromCatalogCase(m[3]),
			IndexName: f.dialect.FromCatalogCase(m[2]),
			Unique:    m[1] != "",
			Columns:   columns,
		})
	}
	if m := dropIndexStmt.FindStringSubmatch(stmt); m != nil {
		name := f.dialect.FromCatalogCase(m[1])
		for i, ix := range f.indexes {
			if ix.IndexName == name {
				f.indexes = append(f.indexes[:i], f.indexes[i+1:]...)
				break
			}
		}
	}
	if m := renameColumnStmt.FindStringSubmatch(stmt); m != nil {
		table := f.dialect.FromCatalogCase(m[1])
		from, to := f.dialect.FromCatalogCase(m[2]), f.dialect.FromCatalogCase(m[3])
		for i := range f.indexes {
			if f.indexes[i].TableName != table {
				continue
			}
			for j, c := range f.indexes[i].Columns {
				if c == from {
					f.indexes[i].Columns[j] = to
				}
			}
		}
	}
	return nil
}

func (f *fakeCatalog) TableNames(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeCatalog) Indexes(ctx context.Context) ([]model.IndexInfo, error) {
	out := make([]model.IndexInfo, len(f.indexes))
	for i, ix := range f.indexes {
		ix.Columns = append([]string(nil), ix.Columns...)
		out[i] = ix
	}
	return out, nil
}

func (f *fakeCatalog) GeneratorNames(ctx context.Context) ([]string, error) {
	return append([]string(nil), f.generators...), nil
}

func (f *fakeCatalog) hasGenerator(name string) bool {
	for _, g := range f.generators {
		if strings.EqualFold(g, name) {
			return true
		}
	}
	return false
}

func (f *fakeCatalog) count(prefix string) int {
	n := 0
	for _, s := range f.statements {
		if strings.HasPrefix(s, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeCatalog) addIndex(table, name string, unique bool, columns ...string) {
	f.indexes = append(f.indexes, model.IndexInfo{TableName: table, IndexName: name, Unique: unique, Columns: columns})
}

type recordingObserver struct {
	provisioned int
	failures    map[string]int
}

func (o *recordingObserver) DomainProvisioned() {
	o.provisioned++
}

func (o *recordingObserver) BestEffortFailed(op string) {
	if o.failures == nil {
		o.failures = map[string]int{}
	}
	o.failures[op]++
}

func newTestStatements(conn *fakeCatalog) (*SchemaStatements, *recordingObserver) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	observer := &recordingObserver{}
	s := NewSchemaStatements(conn, conn.dialect, utils.NewDataTypeMapper(conn.domain), DefaultSettings, logger, observer)
	return s, observer
}

func assertStatements(t *testing.T, conn *fakeCatalog, want ...string) {
	t.Helper()

	if len(conn.statements) != len(want) {
		t.Fatalf("Expected %d statements, got %d: %q", len(want), len(conn.statements), conn.statements)
	}
	for i := range want {
		if conn.statements[i] != want[i] {
			t.Errorf("Statement %d: expected %q, got %q", i, want[i], conn.statements[i])
		}
	}
}

func assertSquished(t *testing.T, conn *fakeCatalog) {
	t.Helper()

	for _, s := range conn.statements {
		if s != utils.SquishSQL(s) {
			t.Errorf("Expected whitespace-normalized statement, got %q", s)
		}
	}
}
