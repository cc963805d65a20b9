package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

// ProblemRepository provides read access to the problem catalog.
// Implementations must be safe for concurrent use.
type ProblemRepository interface {
	// List returns every problem summary ordered by ID.
	List(ctx context.Context) ([]domain.ProblemSummary, error)

	// GetByID returns a problem or domain.ErrProblemNotFound.
	GetByID(ctx context.Context, id string) (*domain.Problem, error)
}

// WrapperStore returns the per-problem, per-language test wrapper templates.
type WrapperStore interface {
	// GetWrapper returns the wrapper text or domain.ErrWrapperNotFound.
	GetWrapper(ctx context.Context, problemID string, lang domain.Language) (string, error)
}

// SubmissionRepository defines persistence for asynchronous submissions.
type SubmissionRepository interface {
	// Create inserts a new submission.
	Create(ctx context.Context, sub *domain.Submission) error

	// GetByID retrieves a submission or domain.ErrSubmissionNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)

	// UpdateStatus atomically updates the status of a submission.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus) error

	// SetResult stores the terminal outcome of a submission.
	SetResult(ctx context.Context, id uuid.UUID, result *domain.SubmissionResult) error
}

// IdempotencyStore defines the interface for distributed deduplication locks.
type IdempotencyStore interface {
	// AcquireLock attempts to acquire an exclusive processing lock for a submission.
	// Returns true if the lock was acquired (first time), false if already locked (duplicate).
	AcquireLock(ctx context.Context, id uuid.UUID) (bool, error)

	// ReleaseLock releases the processing lock with a TTL for eventual cleanup.
	ReleaseLock(ctx context.Context, id uuid.UUID) error

	// ForgetLock drops the lock so a requeued delivery of the same submission is processed again.
	ForgetLock(ctx context.Context, id uuid.UUID) error
}

// Judge runs a complete program remotely and reports the raw result.
type Judge interface {
	Submit(ctx context.Context, sourceCode string, lang domain.Language) (*domain.ExecutionResult, error)
}
