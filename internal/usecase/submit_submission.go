package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/publisher"
	"github.com/Harsh-BH/gauntlet/internal/repository"
)

// SubmitSubmissionUsecase records a submission and queues it for the worker.
type SubmitSubmissionUsecase struct {
	repo      repository.SubmissionRepository
	problems  repository.ProblemRepository
	publisher publisher.Publisher
	logger    *zap.Logger
}

// NewSubmitSubmissionUsecase creates a new SubmitSubmissionUsecase.
func NewSubmitSubmissionUsecase(
	repo repository.SubmissionRepository,
	problems repository.ProblemRepository,
	pub publisher.Publisher,
	logger *zap.Logger,
) *SubmitSubmissionUsecase {
	return &SubmitSubmissionUsecase{
		repo:      repo,
		problems:  problems,
		publisher: pub,
		logger:    logger,
	}
}

// Execute validates the request, stores a QUEUED submission, publishes it and returns its ID.
func (uc *SubmitSubmissionUsecase) Execute(ctx context.Context, req *domain.SubmitRequest) (*domain.SubmitResponse, error) {
	if err := checkSource(req.Language, req.SourceCode); err != nil {
		return nil, err
	}
	if _, err := uc.problems.GetByID(ctx, req.ProblemID); err != nil {
		return nil, err
	}

	// UUIDv7 keeps submissions time-ordered.
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate UUIDv7: %w", err)
	}

	now := time.Now().UTC()
	sub := &domain.Submission{
		SubmissionID: id,
		ProblemID:    req.ProblemID,
		Language:     req.Language,
		SourceCode:   req.SourceCode,
		Status:       domain.StatusQueued,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.repo.Create(ctx, sub); err != nil {
		uc.logger.Error("Failed to create submission", zap.Error(err), zap.String("submission_id", id.String()))
		return nil, fmt.Errorf("create submission: %w", err)
	}

	if err := uc.publisher.Publish(ctx, sub); err != nil {
		uc.logger.Error("Failed to publish submission", zap.Error(err), zap.String("submission_id", id.String()))
		// Nothing will pick it up, so close it out.
		_ = uc.repo.SetResult(ctx, id, &domain.SubmissionResult{
			Status:      domain.StatusFailed,
			DisplayText: domain.ErrPublishFailed.Error(),
		})
		return nil, domain.ErrPublishFailed
	}

	uc.logger.Info("Submission queued",
		zap.String("submission_id", id.String()),
		zap.String("problem_id", req.ProblemID),
		zap.String("language", string(req.Language)),
	)

	return &domain.SubmitResponse{
		SubmissionID: id,
		Status:       string(domain.StatusQueued),
	}, nil
}
