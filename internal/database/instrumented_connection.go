package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
	"github.com/kecicz/activerecord-fb-adapter/internal/utils"
)

// StatementObserver receives the outcome of every executed statement
type StatementObserver interface {
	ObserveStatement(verb string, duration time.Duration, err error)
}

// InstrumentedConnection logs and measures statements sent through an inner Connection
type InstrumentedConnection struct {
	inner    Connection
	logger   logrus.FieldLogger
	observer StatementObserver
}

// NewInstrumentedConnection wraps conn. observer may be nil.
func NewInstrumentedConnection(conn Connection, logger logrus.FieldLogger, observer StatementObserver) *InstrumentedConnection {
	return &InstrumentedConnection{inner: conn, logger: logger, observer: observer}
}

func (c *InstrumentedConnection) Query(ctx context.Context, query string) ([][]interface{}, error) {
	start := time.Now()
	rows, err := c.inner.Query(ctx, query)
	c.record(query, start, err)
	return rows, err
}

func (c *InstrumentedConnection) Execute(ctx context.Context, statement string) error {
	start := time.Now()
	err := c.inner.Execute(ctx, statement)
	c.record(statement, start, err)
	return err
}

func (c *InstrumentedConnection) TableNames(ctx context.Context) ([]string, error) {
	return c.inner.TableNames(ctx)
}

func (c *InstrumentedConnection) Indexes(ctx context.Context) ([]model.IndexInfo, error) {
	return c.inner.Indexes(ctx)
}

func (c *InstrumentedConnection) GeneratorNames(ctx context.Context) ([]string, error) {
	return c.inner.GeneratorNames(ctx)
}

func (c *InstrumentedConnection) record(statement string, start time.Time, err error) {
	duration := time.Since(start)
	verb := utils.StatementVerb(statement)

	if c.observer != nil {
		c.observer.ObserveStatement(verb, duration, err)
	}

	entry := c.logger.WithFields(logrus.Fields{
		"verb":     verb,
		"duration": duration,
	})
	if err != nil {
		entry.WithError(err).Debug(utils.SquishSQL(statement))
		return
	}
	entry.Debug(utils.SquishSQL(statement))
}
