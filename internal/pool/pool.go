package pool

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/metrics"
)

// Executor processes one submission. It reports duplicates separately from failures.
type Executor interface {
	Execute(ctx context.Context, sub *domain.Submission) (isDuplicate bool, err error)
}

// WorkerPool manages a fixed-size pool of goroutines that process queued submissions.
type WorkerPool struct {
	size     int
	messages <-chan *domain.SubmissionMessage
	executor Executor
	logger   *zap.Logger
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new fixed-size worker pool.
func NewWorkerPool(size int, messages <-chan *domain.SubmissionMessage, executor Executor, logger *zap.Logger) *WorkerPool {
	return &WorkerPool{
		size:     size,
		messages: messages,
		executor: executor,
		logger:   logger,
	}
}

// Start launches all worker goroutines. Call Stop to wait for them to finish.
func (p *WorkerPool) Start(ctx context.Context) {
	p.logger.Info("Starting worker pool", zap.Int("pool_size", p.size))

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Stop waits for all workers to finish their current submission and exit.
func (p *WorkerPool) Stop() {
	p.wg.Wait()
	p.logger.Info("Worker pool stopped")
}

func (p *WorkerPool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	p.logger.Debug("Worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Worker shutting down", zap.Int("worker_id", id))
			return
		case msg, ok := <-p.messages:
			if !ok {
				p.logger.Debug("Message channel closed", zap.Int("worker_id", id))
				return
			}
			p.handle(ctx, id, msg)
		}
	}
}

// handle runs one message and settles it with the broker. A panic nacks the message and
// keeps the worker alive.
func (p *WorkerPool) handle(ctx context.Context, workerID int, msg *domain.SubmissionMessage) {
	sub := msg.Submission
	log := p.logger.With(
		zap.Int("worker_id", workerID),
		zap.String("submission_id", sub.SubmissionID.String()),
	)

	metrics.WorkersActive.Inc()
	defer metrics.WorkersActive.Dec()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Worker panic recovered", zap.Any("panic", r))
			if err := msg.Nack(false); err != nil {
				log.Error("Failed to NACK message", zap.Error(err))
			}
		}
	}()

	log.Info("Worker processing submission", zap.String("language", string(sub.Language)))

	isDuplicate, err := p.executor.Execute(ctx, sub)
	if err != nil {
		// Work cut short by shutdown goes back to the queue; anything else would fail
		// the same way again and is dead-lettered.
		requeue := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		if requeue {
			log.Warn("Submission interrupted, requeueing", zap.Error(err))
		} else {
			log.Error("Submission processing failed", zap.Error(err))
		}

		if nackErr := msg.Nack(requeue); nackErr != nil {
			log.Error("Failed to NACK message", zap.Error(nackErr))
		}
		return
	}

	if isDuplicate {
		log.Debug("Duplicate submission skipped")
	}

	// Duplicates are acked too so the message leaves the queue.
	if ackErr := msg.Ack(); ackErr != nil {
		log.Error("Failed to ACK message", zap.Error(ackErr))
	}
}
