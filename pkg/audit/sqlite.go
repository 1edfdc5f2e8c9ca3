package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteBackend persists decisions in a SQLite database. Suitable for
// single-instance deployments where the audit trail must survive restarts.
type SQLiteBackend struct {
	db *sql.DB

	insertStmt *sql.Stmt
	queryStmt  *sql.Stmt
}

// NewSQLiteBackend opens (or creates) the database at dbPath and initializes
// the schema.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	b := &SQLiteBackend{db: db}
	if err := b.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := b.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return b, nil
}

// initSchema creates the decisions table if it does not exist.
func (b *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS decisions (
		id TEXT PRIMARY KEY,
		policy_id TEXT NOT NULL,
		clause_id TEXT NOT NULL,
		reference_date INTEGER NOT NULL,
		eligible INTEGER NOT NULL,
		reasons TEXT,
		profile_digest TEXT,
		recorded_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_decisions_policy
		ON decisions(policy_id, recorded_at DESC);
	`
	_, err := b.db.Exec(schema)
	return err
}

// prepareStatements pre-compiles the hot-path statements.
func (b *SQLiteBackend) prepareStatements() error {
	var err error

	b.insertStmt, err = b.db.Prepare(`
		INSERT INTO decisions
			(id, policy_id, clause_id, reference_date, eligible, reasons, profile_digest, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}

	b.queryStmt, err = b.db.Prepare(`
		SELECT id, policy_id, clause_id, reference_date, eligible, reasons, profile_digest, recorded_at
		FROM decisions
		WHERE policy_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?`)
	return err
}

// Store persists one decision.
func (b *SQLiteBackend) Store(ctx context.Context, d *Decision) error {
	reasons, err := json.Marshal(d.Reasons)
	if err != nil {
		return fmt.Errorf("failed to encode reasons: %w", err)
	}

	eligible := 0
	if d.Eligible {
		eligible = 1
	}

	_, err = b.insertStmt.ExecContext(ctx,
		d.ID,
		d.PolicyID,
		d.ClauseID,
		d.ReferenceDate.Unix(),
		eligible,
		string(reasons),
		d.ProfileDigest,
		d.RecordedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert decision: %w", err)
	}
	return nil
}

// QueryByPolicy returns the most recent decisions for a policy, newest first.
// limit <= 0 selects a default of 100.
func (b *SQLiteBackend) QueryByPolicy(ctx context.Context, policyID string, limit int) ([]*Decision, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := b.queryStmt.QueryContext(ctx, policyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	var results []*Decision
	for rows.Next() {
		var (
			d             Decision
			referenceUnix int64
			recordedUnix  int64
			eligible      int
			reasons       string
		)
		if err := rows.Scan(&d.ID, &d.PolicyID, &d.ClauseID, &referenceUnix, &eligible, &reasons, &d.ProfileDigest, &recordedUnix); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		d.ReferenceDate = time.Unix(referenceUnix, 0).UTC()
		d.RecordedAt = time.Unix(recordedUnix, 0).UTC()
		d.Eligible = eligible != 0
		if reasons != "" {
			if err := json.Unmarshal([]byte(reasons), &d.Reasons); err != nil {
				return nil, fmt.Errorf("failed to decode reasons: %w", err)
			}
		}
		results = append(results, &d)
	}
	return results, rows.Err()
}

// Close releases the prepared statements and the database handle.
func (b *SQLiteBackend) Close() error {
	if b.insertStmt != nil {
		b.insertStmt.Close()
	}
	if b.queryStmt != nil {
		b.queryStmt.Close()
	}
	return b.db.Close()
}
