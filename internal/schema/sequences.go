package schema

import (
	"context"

	"github.com/sirupsen/logrus"
)

// SequenceOutcome is the result of a best-effort sequence statement
type SequenceOutcome struct {
	Op   string
	Name string
	Err  error
}

// OK reports whether the statement succeeded
func (o SequenceOutcome) OK() bool {
	return o.Err == nil
}

// CreateSequence runs CREATE SEQUENCE. A failure, usually an existing
// sequence, is returned in the outcome rather than as an error.
func (s *SchemaStatements) CreateSequence(ctx context.Context, name string) SequenceOutcome {
	log := s.operation("create_sequence", "").WithField("sequence", name)
	return SequenceOutcome{
		Op:   "create_sequence",
		Name: name,
		Err:  s.execute(ctx, log, "CREATE SEQUENCE "+name),
	}
}

// DropSequence runs DROP SEQUENCE, reporting failure in the outcome
func (s *SchemaStatements) DropSequence(ctx context.Context, name string) SequenceOutcome {
	log := s.operation("drop_sequence", "").WithField("sequence", name)
	return SequenceOutcome{
		Op:   "drop_sequence",
		Name: name,
		Err:  s.execute(ctx, log, "DROP SEQUENCE "+name),
	}
}

// SequenceExists looks the name up in the current generator list
func (s *SchemaStatements) SequenceExists(ctx context.Context, name string) (bool, error) {
	names, err := s.conn.GeneratorNames(ctx)
	if err != nil {
		return false, err
	}

	target := s.dialect.ToCatalogCase(name)
	for _, n := range names {
		if s.dialect.ToCatalogCase(n) == target {
			return true, nil
		}
	}
	return false, nil
}

// DefaultSequenceName is <table><suffix>, with the table part cut so the
// result fits in an identifier
func (s *SchemaStatements) DefaultSequenceName(table string) string {
	suffix := s.settings.SequenceSuffix
	if room := s.settings.MaxIdentifierLength - len(suffix); room > 0 && len(table) > room {
		table = table[:room]
	}
	return table + suffix
}

func (s *SchemaStatements) sequenceName(table, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return s.DefaultSequenceName(table)
}

// discard drops a best-effort failure after recording it
func (s *SchemaStatements) discard(log logrus.FieldLogger, outcome SequenceOutcome) {
	if outcome.OK() {
		return
	}
	log.WithError(outcome.Err).WithField("sequence", outcome.Name).Warnf("%s failed, ignoring", outcome.Op)
	if s.observer != nil {
		s.observer.BestEffortFailed(outcome.Op)
	}
}
