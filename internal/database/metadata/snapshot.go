package metadata

import (
	"context"
	"fmt"
	"time"

	"github.com/kecicz/activerecord-fb-adapter/internal/model"
)

// DataSourceSchema represents the complete schema of a database
type DataSourceSchema struct {
	Tables      map[string]*TableSchema `json:"tables"`
	Views       []string                `json:"views"`
	ExtractedAt time.Time               `json:"extractedAt"`
}

// TableSchema represents the schema of a single table
type TableSchema struct {
	Name       string                   `json:"name"`
	Columns    []model.ColumnDescriptor `json:"columns"`
	PrimaryKey string                   `json:"primaryKey,omitempty"`
	Indexes    []model.IndexDescriptor  `json:"indexes,omitempty"`
}

// Snapshot reads every user table with its columns, indexes and primary key
func (r *CatalogReader) Snapshot(ctx context.Context) (*DataSourceSchema, error) {
	tables, err := r.Tables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract tables: %w", err)
	}

	views, err := r.Views(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract views: %w", err)
	}

	schema := &DataSourceSchema{
		Tables:      make(map[string]*TableSchema, len(tables)),
		Views:       views,
		ExtractedAt: time.Now(),
	}

	for _, name := range tables {
		table, err := r.Table(ctx, name)
		if err != nil {
			return nil, err
		}
		schema.Tables[name] = table
	}

	return schema, nil
}

// Table reads the schema of a single table
func (r *CatalogReader) Table(ctx context.Context, name string) (*TableSchema, error) {
	columns, err := r.Columns(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to extract columns for %s: %w", name, err)
	}

	indexes, err := r.Indexes(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to extract indexes for %s: %w", name, err)
	}

	pk, _, err := r.PrimaryKey(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to extract primary key for %s: %w", name, err)
	}

	return &TableSchema{
		Name:       name,
		Columns:    columns,
		PrimaryKey: pk,
		Indexes:    indexes,
	}, nil
}
