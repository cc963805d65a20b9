package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

var (
	_ repository.ProblemRepository = (*ProblemRepo)(nil)
	_ repository.WrapperStore      = (*ProblemRepo)(nil)
)

// ProblemRepo serves problems and wrappers from PostgreSQL.
type ProblemRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresProblemRepository creates a problem catalog backed by the problems and
// problem_wrappers tables. The returned value also serves wrappers.
func NewPostgresProblemRepository(pool *pgxpool.Pool) *ProblemRepo {
	return &ProblemRepo{pool: pool}
}

func (r *ProblemRepo) List(ctx context.Context) ([]domain.ProblemSummary, error) {
	query := `SELECT problem_id, title, topic, difficulty FROM problems ORDER BY problem_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: list problems: %w", err)
	}
	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ProblemSummary, error) {
		var s domain.ProblemSummary
		err := row.Scan(&s.ID, &s.Title, &s.Topic, &s.Difficulty)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: scan problems: %w", err)
	}
	return summaries, nil
}

func (r *ProblemRepo) GetByID(ctx context.Context, id string) (*domain.Problem, error) {
	query := `
		SELECT problem_id, title, topic, difficulty, function_name, inputs, return_type,
		       statement, sample_input, sample_output
		FROM problems
		WHERE problem_id = $1`

	p := &domain.Problem{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Topic, &p.Difficulty,
		&p.Function, &p.Inputs, &p.Return,
		&p.Statement, &p.SampleInput, &p.SampleOutput,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProblemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get problem by id: %w", err)
	}
	return p, nil
}

func (r *ProblemRepo) GetWrapper(ctx context.Context, problemID string, lang domain.Language) (string, error) {
	query := `SELECT wrapper FROM problem_wrappers WHERE problem_id = $1 AND language = $2`

	var wrapper string
	err := r.pool.QueryRow(ctx, query, problemID, lang).Scan(&wrapper)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrWrapperNotFound
	}
	if err != nil {
		return "", fmt.Errorf("postgres: get wrapper: %w", err)
	}
	return wrapper, nil
}
