package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/cpm"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
)

// SaveRun archives a completed schedule of n and returns the new run id.
// The header and every activity row are written in one transaction.
func (s *Store) SaveRun(ctx context.Context, source string, n *network.Network, result *cpm.Result) (string, error) {
	critical, err := json.Marshal(result.CriticalNames(n))
	if err != nil {
		return "", fmt.Errorf("encode critical path: %w", err)
	}

	id := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, source, status, selection, project_duration, critical_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, s.now().UnixNano(), source, string(StatusCompleted),
		result.Selection.String(), result.ProjectDuration, string(critical),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_activities (run_id, activity_id, name, duration, predecessors, es, ef, ls, lf, slack, critical, on_critical_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare activities: %w", err)
	}
	defer stmt.Close()

	for _, a := range n.Activities() {
		preds, err := json.Marshal(n.Names(a.Predecessors))
		if err != nil {
			return "", fmt.Errorf("encode predecessors of %s: %w", a.Name, err)
		}
		_, err = stmt.ExecContext(ctx, id, a.ID, a.Name, a.Duration, string(preds),
			a.ES, a.EF, a.LS, a.LF, a.Slack, a.Slack == 0, result.IsOnCriticalPath(a.ID))
		if err != nil {
			return "", fmt.Errorf("insert activity %s: %w", a.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// SaveFailure archives a run that ended with runErr and returns its id.
func (s *Store) SaveFailure(ctx context.Context, source string, runErr error) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, source, status, error) VALUES (?, ?, ?, ?, ?)`,
		id, s.now().UnixNano(), source, string(StatusFailed), runErr.Error(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, source, status, error, selection, project_duration, critical_path
		 FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadRun returns the run with the given id and its activities.
func (s *Store) LoadRun(ctx context.Context, id string) (*RunDetail, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, source, status, error, selection, project_duration, critical_path
		 FROM runs WHERE id = ?`,
		id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, duration, predecessors, es, ef, ls, lf, slack, critical, on_critical_path
		 FROM run_activities WHERE run_id = ? ORDER BY activity_id`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detail := &RunDetail{Run: r}
	for rows.Next() {
		var a ActivityRow
		var preds string
		err := rows.Scan(&a.Name, &a.Duration, &preds, &a.ES, &a.EF, &a.LS, &a.LF, &a.Slack, &a.Critical, &a.OnCriticalPath)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(preds), &a.Predecessors); err != nil {
			return nil, fmt.Errorf("decode predecessors of %s: %w", a.Name, err)
		}
		detail.Activities = append(detail.Activities, a)
	}
	return detail, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var ts int64
	var status, critical string
	err := sc.Scan(&r.ID, &ts, &r.Source, &status, &r.Error, &r.Selection, &r.ProjectDuration, &critical)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt = time.Unix(0, ts)
	r.Status = RunStatus(status)
	if err := json.Unmarshal([]byte(critical), &r.CriticalPath); err != nil {
		return Run{}, fmt.Errorf("decode critical path of %s: %w", r.ID, err)
	}
	return r, nil
}
