package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
)

type scriptedConnection struct {
	err error
}

func (c *scriptedConnection) Query(ctx context.Context, query string) ([][]interface{}, error) {
	return [][]interface{}{{"X"}}, c.err
}

func (c *scriptedConnection) Execute(ctx context.Context, stmt string) error {
	return c.err
}

func (c *scriptedConnection) TableNames(ctx context.Context) ([]string, error) {
	return []string{"users"}, nil
}

func (c *scriptedConnection) Indexes(ctx context.Context) ([]model.IndexInfo, error) {
	return nil, nil
}

func (c *scriptedConnection) GeneratorNames(ctx context.Context) ([]string, error) {
	return nil, nil
}

type observedStatement struct {
	verb string
	err  error
}

type statementRecorder struct {
	seen []observedStatement
}

func (r *statementRecorder) ObserveStatement(verb string, duration time.Duration, err error) {
	r.seen = append(r.seen, observedStatement{verb: verb, err: err})
}

func TestInstrumentedConnectionObservesStatements(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	recorder := &statementRecorder{}

	inner := &scriptedConnection{}
	conn := NewInstrumentedConnection(inner, logger, recorder)
	ctx := context.Background()

	if err := conn.Execute(ctx, "CREATE UNIQUE INDEX \"UX\" ON \"T\" (\"C\")"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	inner.err = errors.New("lock conflict")
	if _, err := conn.Query(ctx, "SELECT 1 FROM rdb$database"); err == nil {
		t.Fatal("Expected query error to pass through")
	}

	if len(recorder.seen) != 2 {
		t.Fatalf("Expected 2 observed statements, got %d", len(recorder.seen))
	}
	if recorder.seen[0].verb != "CREATE INDEX" || recorder.seen[0].err != nil {
		t.Errorf("Unexpected first observation %+v", recorder.seen[0])
	}
	if recorder.seen[1].verb != "SELECT" || recorder.seen[1].err == nil {
		t.Errorf("Unexpected second observation %+v", recorder.seen[1])
	}

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("Expected a log entry")
	}
	if entry.Data["verb"] != "SELECT" {
		t.Errorf("Expected verb field SELECT, got %v", entry.Data["verb"])
	}
	if entry.Data[logrus.ErrorKey] == nil {
		t.Error("Expected the error to be logged")
	}
}

func TestInstrumentedConnectionWithoutObserver(t *testing.T) {
	logger, _ := test.NewNullLogger()
	conn := NewInstrumentedConnection(&scriptedConnection{}, logger, nil)

	if err := conn.Execute(context.Background(), "DROP TABLE \"T\""); err != nil {
		t.Errorf("Execute failed: %v", err)
	}
	names, err := conn.TableNames(context.Background())
	if err != nil || len(names) != 1 {
		t.Errorf("Expected passthrough table names, got %v (%v)", names, err)
	}
}
