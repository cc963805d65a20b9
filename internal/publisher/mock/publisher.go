package mock

import (
	"context"
	"sync"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/publisher"
)

// Ensure MockPublisher implements publisher.Publisher.
var _ publisher.Publisher = (*MockPublisher)(nil)

// MockPublisher records published submissions.
type MockPublisher struct {
	mu        sync.Mutex
	Published []*domain.Submission
	PublishFn func(ctx context.Context, sub *domain.Submission) error
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, sub *domain.Submission) error {
	if m.PublishFn != nil {
		return m.PublishFn(ctx, sub)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, sub)
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}
