package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	task := &domain.Task{
		ID:        "6f1c1f0e-1111-4a4a-9b9b-000000000001",
		Name:      domain.TaskSendConfirmationEmail,
		Params:    map[string]string{"email": "a@example.com"},
		RunAfter:  now,
		CreatedAt: now,
	}
	mock.ExpectExec(`INSERT INTO tasks \(id, name, params, status, attempts, run_after, created_at, updated_at\)`).
		WithArgs(task.ID, task.Name, []byte(`{"email":"a@example.com"}`), "queued", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewTaskStore(db).Create(context.Background(), task))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStore_ClaimNext(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"id", "name", "params", "status", "attempts", "last_error", "run_after", "created_at", "updated_at"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Task
		wantErr bool
	}{
		{
			name: "claims oldest runnable",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`(?s)UPDATE tasks\s+SET status = 'running'.*updated_at < now\(\) - make_interval\(secs => \$2\).*FOR UPDATE SKIP LOCKED`).
					WithArgs(5, staleRunning.Seconds()).
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("t-1", domain.TaskRefreshAnnouncement, []byte(`{}`), "running", 1, "", now, now, now))
			},
			want: &domain.Task{
				ID: "t-1", Name: domain.TaskRefreshAnnouncement, Params: map[string]string{},
				Status: domain.TaskRunning, Attempts: 1, RunAfter: now, CreatedAt: now, UpdatedAt: now,
			},
		},
		{
			name: "nothing runnable",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE tasks`).WillReturnError(sql.ErrNoRows)
			},
			want: nil,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE tasks`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewTaskStore(db).ClaimNext(ctx, 5)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTaskStore_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	retry := time.Date(2025, 1, 1, 0, 1, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE tasks SET status = 'failed'`).
		WithArgs("t-1", "smtp down", retry).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE tasks SET status = 'succeeded'`).
		WithArgs("t-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewTaskStore(db)
	require.NoError(t, store.MarkFailed(context.Background(), "t-1", "smtp down", retry))
	require.NoError(t, store.MarkSucceeded(context.Background(), "t-2"))
	require.NoError(t, mock.ExpectationsWereMet())
}
