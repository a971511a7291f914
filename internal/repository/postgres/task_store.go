package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

// staleRunning is how long a claimed task may stay running before another
// worker may claim it again.
const staleRunning = 5 * time.Minute

type taskStore struct {
	DB *sql.DB
}

// NewTaskStore returns a TaskStore backed by the tasks table.
func NewTaskStore(db *sql.DB) domain.TaskStore {
	return &taskStore{DB: db}
}

func (s *taskStore) Create(ctx context.Context, t *domain.Task) error {
	params, err := json.Marshal(t.Params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}
	query := `
		INSERT INTO tasks (id, name, params, status, attempts, run_after, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6, $6)
	`
	_, err = s.DB.ExecContext(ctx, query, t.ID, t.Name, params, string(domain.TaskQueued), t.RunAfter, t.CreatedAt)
	return err
}

// ClaimNext picks the oldest runnable task. Rows locked by another worker are
// skipped rather than waited on.
func (s *taskStore) ClaimNext(ctx context.Context, maxAttempts int) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET status = 'running', attempts = attempts + 1, updated_at = now()
		WHERE id = (
			SELECT id FROM tasks
			WHERE (
				(status IN ('queued', 'failed') AND run_after <= now())
				OR (status = 'running' AND updated_at < now() - make_interval(secs => $2))
			)
			AND attempts < $1
			ORDER BY created_at ASC
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING id, name, params, status, attempts, last_error, run_after, created_at, updated_at
	`
	t := &domain.Task{}
	var params []byte
	var status string
	err := s.DB.QueryRowContext(ctx, query, maxAttempts, staleRunning.Seconds()).Scan(
		&t.ID, &t.Name, &params, &status, &t.Attempts, &t.LastError, &t.RunAfter, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	if err := json.Unmarshal(params, &t.Params); err != nil {
		return nil, fmt.Errorf("decode params of task %s: %w", t.ID, err)
	}
	return t, nil
}

func (s *taskStore) MarkSucceeded(ctx context.Context, id string) error {
	query := `UPDATE tasks SET status = 'succeeded', last_error = '', updated_at = now() WHERE id = $1`
	_, err := s.DB.ExecContext(ctx, query, id)
	return err
}

func (s *taskStore) MarkFailed(ctx context.Context, id string, errMsg string, retryAt time.Time) error {
	query := `UPDATE tasks SET status = 'failed', last_error = $2, run_after = $3, updated_at = now() WHERE id = $1`
	_, err := s.DB.ExecContext(ctx, query, id, errMsg, retryAt)
	return err
}
