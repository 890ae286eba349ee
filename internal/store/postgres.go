package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/licomply/licomply/internal/rules"
)

// PostgresStore is a PostgreSQL implementation of the Store interface.
//
// Expected schema:
//
//	CREATE TABLE licensing_rules (
//	    id         TEXT PRIMARY KEY,
//	    title      TEXT NOT NULL DEFAULT '',
//	    category   TEXT NOT NULL DEFAULT '',
//	    page       INT  NOT NULL DEFAULT 0,
//	    obligation TEXT NOT NULL DEFAULT '',
//	    priority   INT,
//	    conditions JSONB NOT NULL DEFAULT '{}',
//	    position   SERIAL
//	);
//
// position fixes the source order that the matcher's stable sort depends on.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pgx pool to dsn and pings it.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// GetAllRules retrieves every rule ordered by insertion position.
func (p *PostgresStore) GetAllRules(ctx context.Context) ([]rules.Rule, error) {
	const q = `
		SELECT id, title, category, page, obligation, priority, conditions
		FROM licensing_rules
		ORDER BY position`

	rows, err := p.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query rules: %w", err)
	}
	defer rows.Close()

	out := make([]rules.Rule, 0, 64)
	for rows.Next() {
		var (
			r         rules.Rule
			priority  pgtype.Int4
			condBytes []byte
		)
		if err := rows.Scan(&r.ID, &r.Title, &r.Category, &r.Page, &r.Obligation, &priority, &condBytes); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		if priority.Valid {
			v := int(priority.Int32)
			r.Priority = &v
		}
		if len(condBytes) > 0 {
			// Malformed condition JSON degrades to zero constraints.
			_ = json.Unmarshal(condBytes, &r.Conditions)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertRule creates or updates a rule keyed by ID.
func (p *PostgresStore) UpsertRule(ctx context.Context, r rules.Rule) error {
	condBytes, err := json.Marshal(r.Conditions)
	if err != nil {
		return fmt.Errorf("marshal conditions: %w", err)
	}

	var priority pgtype.Int4
	if r.Priority != nil {
		priority = pgtype.Int4{Int32: int32(*r.Priority), Valid: true}
	}

	const q = `
		INSERT INTO licensing_rules (id, title, category, page, obligation, priority, conditions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			page = EXCLUDED.page,
			obligation = EXCLUDED.obligation,
			priority = EXCLUDED.priority,
			conditions = EXCLUDED.conditions`

	if _, err := p.pool.Exec(ctx, q, r.ID, r.Title, r.Category, r.Page, r.Obligation, priority, condBytes); err != nil {
		return fmt.Errorf("upsert rule %s: %w", r.ID, err)
	}
	return nil
}

// SourceFile returns an empty string; database-backed rules have no origin
// document.
func (p *PostgresStore) SourceFile() string { return "" }

// Close releases the connection pool.
func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}
