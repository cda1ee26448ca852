package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/drivegate/internal/core/domain"
	"github.com/custodia-labs/drivegate/internal/core/ports/driven"
)

// invocationStore implements driven.InvocationStore.
type invocationStore struct {
	store *Store
}

var _ driven.InvocationStore = (*invocationStore)(nil)

// Record stores one invocation outcome.
func (s *invocationStore) Record(ctx context.Context, record *domain.InvocationRecord) error {
	if record == nil || record.ID == "" {
		return domain.ErrInvalidInput
	}

	args := record.Args
	if args == nil {
		args = []string{}
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("marshalling args: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO invocations (id, capability, module, args, exit_code, success, error,
			parse_mode, skipped_lines, started_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID,
		string(record.Capability),
		string(record.Module),
		string(argsJSON),
		record.ExitCode,
		boolToInt(record.Success),
		nullString(record.Error),
		nullString(string(record.ParseMode)),
		record.Skipped,
		record.StartedAt.UTC().Format(time.RFC3339Nano),
		int64(record.Duration))
	if err != nil {
		return fmt.Errorf("recording invocation: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first. A limit of zero or
// less returns every record.
func (s *invocationStore) List(ctx context.Context, limit int) ([]domain.InvocationRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, capability, module, args, exit_code, success, error,
			parse_mode, skipped_lines, started_at, duration_ns
		FROM invocations
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying invocations: %w", err)
	}
	defer rows.Close()

	records := []domain.InvocationRecord{}
	for rows.Next() {
		record, err := scanInvocation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invocations: %w", err)
	}

	return records, nil
}

// Prune removes records beyond the most recent 'keep'.
func (s *invocationStore) Prune(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM invocations
		WHERE seq NOT IN (
			SELECT seq FROM invocations ORDER BY seq DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning invocations: %w", err)
	}
	return nil
}

// scanInvocation scans one invocation row.
func scanInvocation(rows *sql.Rows) (*domain.InvocationRecord, error) {
	var (
		record     domain.InvocationRecord
		capability string
		module     string
		argsJSON   string
		success    int
		errMsg     sql.NullString
		parseMode  sql.NullString
		startedAt  string
		durationNs int64
	)

	if err := rows.Scan(&record.ID, &capability, &module, &argsJSON, &record.ExitCode,
		&success, &errMsg, &parseMode, &record.Skipped, &startedAt, &durationNs); err != nil {
		return nil, fmt.Errorf("scanning invocation: %w", err)
	}

	record.Capability = domain.Capability(capability)
	record.Module = domain.ModuleName(module)
	if err := json.Unmarshal([]byte(argsJSON), &record.Args); err != nil {
		return nil, fmt.Errorf("unmarshalling args of %s: %w", record.ID, err)
	}
	record.Success = success == 1
	if errMsg.Valid {
		record.Error = errMsg.String
	}
	if parseMode.Valid {
		record.ParseMode = domain.ParseMode(parseMode.String)
	}
	if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		record.StartedAt = t
	}
	record.Duration = time.Duration(durationNs)

	return &record, nil
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
