package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

// Ensure pgSubmissionRepo implements repository.SubmissionRepository.
var _ repository.SubmissionRepository = (*pgSubmissionRepo)(nil)

type pgSubmissionRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresSubmissionRepository creates a new PostgreSQL-backed submission repository.
func NewPostgresSubmissionRepository(pool *pgxpool.Pool) repository.SubmissionRepository {
	return &pgSubmissionRepo{pool: pool}
}

func (r *pgSubmissionRepo) Create(ctx context.Context, sub *domain.Submission) error {
	query := `
		INSERT INTO submissions (submission_id, problem_id, language, source_code, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, query,
		sub.SubmissionID, sub.ProblemID, sub.Language, sub.SourceCode, sub.Status, now, now,
	)
	if err != nil {
		return fmt.Errorf("postgres: create submission: %w", err)
	}
	sub.CreatedAt = now
	sub.UpdatedAt = now
	return nil
}

func (r *pgSubmissionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	query := `
		SELECT submission_id, problem_id, language, source_code, status,
		       display_text, judge_status, time_used, memory_kb, created_at, updated_at
		FROM submissions
		WHERE submission_id = $1`

	sub := &domain.Submission{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&sub.SubmissionID, &sub.ProblemID, &sub.Language, &sub.SourceCode, &sub.Status,
		&sub.DisplayText, &sub.JudgeStatus, &sub.Time, &sub.MemoryKB,
		&sub.CreatedAt, &sub.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get submission by id: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus) error {
	query := `UPDATE submissions SET status = $1, updated_at = $2 WHERE submission_id = $3`
	tag, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("postgres: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (r *pgSubmissionRepo) SetResult(ctx context.Context, id uuid.UUID, result *domain.SubmissionResult) error {
	query := `
		UPDATE submissions
		SET status = $1, display_text = $2, judge_status = $3,
		    time_used = $4, memory_kb = $5, updated_at = $6
		WHERE submission_id = $7`

	tag, err := r.pool.Exec(ctx, query,
		result.Status, result.DisplayText, result.JudgeStatus,
		result.Time, result.MemoryKB, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("postgres: set result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}
