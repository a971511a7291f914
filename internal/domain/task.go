package domain

import (
	"context"
	"time"
)

// Task names understood by the worker.
const (
	TaskSendConfirmationEmail = "send_confirmation_email"
	TaskUpdateFeaturedSpeaker = "update_featured_speaker"
	TaskRefreshAnnouncement   = "refresh_announcement"
)

// TaskDispatcher submits deferred work. Delivery is at-least-once; callers must
// not depend on completion or ordering.
type TaskDispatcher interface {
	Enqueue(ctx context.Context, name string, params map[string]string) error
}

// TaskStatus is the lifecycle state of a queued task.
type TaskStatus string

const (
	TaskQueued    TaskStatus = "queued"
	TaskRunning   TaskStatus = "running"
	TaskSucceeded TaskStatus = "succeeded"
	TaskFailed    TaskStatus = "failed"
)

// Task is a queued unit of deferred work.
type Task struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Params    map[string]string `json:"params"`
	Status    TaskStatus        `json:"status"`
	Attempts  int               `json:"attempts"`
	LastError string            `json:"last_error"`
	RunAfter  time.Time         `json:"run_after"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// TaskStore persists queued tasks for the durable dispatcher.
type TaskStore interface {
	Create(ctx context.Context, t *Task) error
	// ClaimNext marks the oldest runnable task as running and returns it, or
	// returns nil when nothing is runnable.
	ClaimNext(ctx context.Context, maxAttempts int) (*Task, error)
	MarkSucceeded(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, errMsg string, retryAt time.Time) error
}

// Cache is an advisory key-value cache. Absence or failure never affects
// correctness, only latency.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Cache keys.
const (
	CacheKeyAnnouncement    = "RECENT_ANNOUNCEMENTS"
	CacheKeyFeaturedSpeaker = "FEATURED_SPEAKER"
)
