// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package postgres implements a classify.Source backed by a Postgres table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/classify"
)

// DefaultQuery selects every active record with a stored certificate body.
// Both columns are cast to text so bytea bodies arrive in their \x hex form.
const DefaultQuery = `SELECT id::text, https_certificate_body::text
FROM website_data
WHERE status = 7 AND https_certificate_body IS NOT NULL
ORDER BY id`

var (
	// ErrMissingDSN indicates that no connection string was configured.
	ErrMissingDSN = errors.New("postgres: missing DSN")

	// ErrNilQuerier indicates a Source built without a database handle.
	ErrNilQuerier = errors.New("postgres: nil querier")
)

// Querier is the subset of [pgxpool.Pool] and [pgx.Conn] the source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Config describes where the certificate fields live.
type Config struct {
	DSN   string
	Query string
	// Limit caps the batch size; zero or less means no limit.
	Limit int
}

// Source reads one batch of certificate records per Fetch.
// The query must return two columns: the record identifier and the raw field.
type Source struct {
	db    Querier
	pool  *pgxpool.Pool
	query string
	limit int
}

// New wraps an existing database handle.
func New(db Querier, query string, limit int) *Source {
	if strings.TrimSpace(query) == "" {
		query = DefaultQuery
	}
	return &Source{db: db, query: query, limit: limit}
}

// Open connects a pgx pool for cfg and verifies it with a ping.
// The caller must Close the returned Source.
func Open(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.DSN == "" {
		return nil, ErrMissingDSN
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	s := New(pool, cfg.Query, cfg.Limit)
	s.pool = pool
	return s, nil
}

// Close releases the pool opened by Open. It is a no-op for sources built with New.
func (s *Source) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// statement returns the SQL to run and its arguments.
func (s *Source) statement() (string, []any) {
	if s.limit <= 0 {
		return s.query, nil
	}
	return strings.TrimRight(s.query, "; \n\t") + "\nLIMIT $1", []any{s.limit}
}

// Fetch runs the query and returns the records in the order the database returned them.
// A NULL field becomes an empty Raw value so it is still reported as a failed record.
func (s *Source) Fetch(ctx context.Context) ([]classify.Record, error) {
	if s.db == nil {
		return nil, ErrNilQuerier
	}

	sql, args := s.statement()
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: query: %w", err)
	}
	defer rows.Close()

	var records []classify.Record
	for rows.Next() {
		var (
			id   string
			body *string
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("postgres: scan: %w", err)
		}

		rec := classify.Record{ID: id}
		if body != nil {
			rec.Raw = *body
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows: %w", err)
	}

	return records, nil
}
