// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sqlseq

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/originmark/tickets/lib/sqlitepool"
	"github.com/originmark/tickets/lib/ticket"
)

const schema = `
	CREATE TABLE IF NOT EXISTS ticket_sequences (
		basis_id       TEXT PRIMARY KEY,
		last_timestamp INTEGER NOT NULL,
		counter        INTEGER NOT NULL
	);
`

// Config holds the parameters for opening a durable sequence provider.
type Config struct {
	// Path is the filesystem path to the SQLite database file. The
	// parent directory must exist.
	Path string

	// PoolSize is the number of pooled connections. See
	// [sqlitepool.Config.PoolSize] for the default.
	PoolSize int

	// Logger receives operational messages.
	Logger *slog.Logger
}

// Provider is a [ticket.Provider] that allocates one durable [Sequence]
// per basis, each backed by a row in a shared SQLite database.
type Provider struct {
	pool   *sqlitepool.Pool
	logger *slog.Logger

	mu   sync.Mutex
	seqs map[string]*Sequence
}

// Open opens (creating if necessary) the sequence database at
// cfg.Path and returns a ready-to-use Provider. The caller must call
// Close when the provider is no longer needed.
func Open(cfg Config) (*Provider, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: cfg.PoolSize,
		Logger:   logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sqlseq: %w", err)
	}
	return &Provider{pool: pool, logger: logger, seqs: make(map[string]*Sequence)}, nil
}

// Close closes the provider's underlying connection pool.
func (p *Provider) Close() error {
	return p.pool.Close()
}

// GetSequence returns the durable Sequence for basis, creating its
// backing row lazily on first use. Repeated calls for the same basis
// return the same *Sequence, so in-process callers serialize through
// one mutex in addition to SQLite's own write lock.
func (p *Provider) GetSequence(basis ticket.Basis) ticket.Sequence {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := basis.CanonicalID()
	seq, ok := p.seqs[id]
	if !ok {
		seq = &Sequence{pool: p.pool, basisID: id, logger: p.logger}
		p.seqs[id] = seq
	}
	return seq
}

// Sequence is a [ticket.Sequence] backed by one row of a shared
// SQLite database. A Sequence serializes its own Next and
// IsUnsequenced calls with a mutex, on top of the IMMEDIATE
// transaction each round trip takes against the database.
type Sequence struct {
	pool    *sqlitepool.Pool
	basisID string
	logger  *slog.Logger

	mu sync.Mutex
}

// Next satisfies [ticket.Sequence]. It is equivalent to
// s.NextContext(context.Background(), ts).
func (s *Sequence) Next(ts int64) (int64, error) {
	return s.NextContext(context.Background(), ts)
}

// NextContext allocates the next sequence number for timestamp ts,
// threading ctx through the SQLite round trip. On a strictly newer ts
// than the row's last_timestamp (or when the row does not exist yet),
// the counter resets to 0 before being returned.
func (s *Sequence) NextContext(ctx context.Context, ts int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.pool.Take(ctx)
	if err != nil {
		s.logger.Error("sqlseq: next: taking connection", "basis_id", s.basisID, "error", err)
		return 0, fmt.Errorf("sqlseq: next: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		s.logger.Error("sqlseq: next: begin transaction", "basis_id", s.basisID, "error", err)
		return 0, fmt.Errorf("sqlseq: next: begin transaction: %w", err)
	}
	defer endTransaction(&err)

	lastTs, counter, found, err := readRow(conn, s.basisID)
	if err != nil {
		s.logger.Error("sqlseq: next: reading row", "basis_id", s.basisID, "error", err)
		return 0, err
	}

	if !found || ts > lastTs {
		lastTs = ts
		counter = 0
	}
	if counter < 0 || counter == math.MaxInt64 {
		return 0, fmt.Errorf("%w: counter overflow at timestamp %d", ticket.ErrSequenceExhausted, ts)
	}

	n := counter
	if err := upsertRow(conn, s.basisID, lastTs, counter+1); err != nil {
		s.logger.Error("sqlseq: next: writing row", "basis_id", s.basisID, "error", err)
		return 0, err
	}
	return n, nil
}

// IsUnsequenced satisfies [ticket.Sequence]: it reports whether the
// basis has no row yet, or whether ts exceeds the row's
// last_timestamp.
func (s *Sequence) IsUnsequenced(ts int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.pool.Take(context.Background())
	if err != nil {
		return true
	}
	defer s.pool.Put(conn)

	lastTs, counter, found, err := readRow(conn, s.basisID)
	if err != nil || !found {
		return true
	}
	return counter == 0 || ts > lastTs
}

func readRow(conn *sqlite.Conn, basisID string) (lastTs, counter int64, found bool, err error) {
	err = sqlitex.Execute(conn,
		"SELECT last_timestamp, counter FROM ticket_sequences WHERE basis_id = ?",
		&sqlitex.ExecOptions{
			Args: []any{basisID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				lastTs = stmt.ColumnInt64(0)
				counter = stmt.ColumnInt64(1)
				found = true
				return nil
			},
		})
	if err != nil {
		return 0, 0, false, fmt.Errorf("sqlseq: reading %s: %w", basisID, err)
	}
	return lastTs, counter, found, nil
}

func upsertRow(conn *sqlite.Conn, basisID string, lastTs, counter int64) error {
	err := sqlitex.Execute(conn, `
		INSERT INTO ticket_sequences (basis_id, last_timestamp, counter)
		VALUES (?, ?, ?)
		ON CONFLICT(basis_id) DO UPDATE SET
			last_timestamp = excluded.last_timestamp,
			counter = excluded.counter
	`, &sqlitex.ExecOptions{Args: []any{basisID, lastTs, counter}})
	if err != nil {
		return fmt.Errorf("sqlseq: writing %s: %w", basisID, err)
	}
	return nil
}
