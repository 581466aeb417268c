// Package geoparquetquery implements the embedded spatial SQL query path
// described in spec.md §4.8: push-down search over GeoParquet files using
// an analytical SQL engine with spatial functions loaded.
package geoparquetquery

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/duckdb/duckdb-go/v2"
)

// ErrReadOnly is returned by every mutation method: the backend only reads
// GeoParquet files, per spec.md §4.8.
var ErrReadOnly = fmt.Errorf("geoparquetquery: backend is read-only")

// Pool holds one DuckDB connection per queried href, each with the spatial
// extension loaded on first open. Acquiring a connection suspends if the
// underlying *sql.DB is busy; the pool itself never blocks beyond the
// per-href open.
type Pool struct {
	mu    sync.Mutex
	conns map[string]*sql.DB
}

// NewPool builds an empty connection pool.
func NewPool() *Pool {
	return &Pool{conns: make(map[string]*sql.DB)}
}

// Open returns the pooled connection for href, opening and initializing a
// new one (INSTALL spatial; LOAD spatial) on first use.
func (p *Pool) Open(ctx context.Context, href string) (*sql.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if db, ok := p.conns[href]; ok {
		return db, nil
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("geoparquetquery: opening duckdb connection: %w", err)
	}
	if _, err := db.ExecContext(ctx, "INSTALL spatial; LOAD spatial;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("geoparquetquery: loading spatial extension: %w", err)
	}
	p.conns[href] = db
	return db, nil
}

// Close closes every pooled connection. Safe to call once after the pool
// is no longer in use.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	for href, db := range p.conns {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing connection for %s: %w", href, err)
		}
	}
	p.conns = make(map[string]*sql.DB)
	return firstErr
}

// Insert always fails: GeoparquetQuery is a read-only backend.
func (p *Pool) Insert(context.Context, string, any) error { return ErrReadOnly }

// Update always fails: GeoparquetQuery is a read-only backend.
func (p *Pool) Update(context.Context, string, any) error { return ErrReadOnly }

// Delete always fails: GeoparquetQuery is a read-only backend.
func (p *Pool) Delete(context.Context, string, string) error { return ErrReadOnly }
