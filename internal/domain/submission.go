package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus represents the lifecycle state of a submission.
type SubmissionStatus string

const (
	StatusQueued   SubmissionStatus = "QUEUED"
	StatusRunning  SubmissionStatus = "RUNNING"
	StatusAccepted SubmissionStatus = "ACCEPTED"
	StatusRejected SubmissionStatus = "REJECTED"
	StatusFailed   SubmissionStatus = "FAILED"
)

// IsTerminal returns true if the status represents a final state.
func (s SubmissionStatus) IsTerminal() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusFailed:
		return true
	}
	return false
}

// Submission is a user solution validated against a problem's test wrapper.
type Submission struct {
	SubmissionID uuid.UUID        `json:"submission_id"`
	ProblemID    string           `json:"problem_id"`
	Language     Language         `json:"language"`
	SourceCode   string           `json:"source_code"`
	Status       SubmissionStatus `json:"status"`
	DisplayText  string           `json:"display_text,omitempty"`
	JudgeStatus  string           `json:"judge_status,omitempty"`
	Time         string           `json:"time,omitempty"`
	MemoryKB     int64            `json:"memory_kb,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// SubmissionResult is the outcome stored once a submission reaches a terminal state.
type SubmissionResult struct {
	Status      SubmissionStatus
	DisplayText string
	JudgeStatus string
	Time        string
	MemoryKB    int64
}

// SubmissionMessage wraps a queued submission with broker acknowledgement callbacks.
type SubmissionMessage struct {
	Submission *Submission
	Ack        func() error
	Nack       func(requeue bool) error
}

// SubmitRequest represents an incoming asynchronous submission.
type SubmitRequest struct {
	ProblemID  string   `json:"problem_id" binding:"required"`
	Language   Language `json:"language" binding:"required"`
	SourceCode string   `json:"source_code" binding:"required"`
}

// SubmitResponse is returned after a successful submission.
type SubmitResponse struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	Status       string    `json:"status"`
}

// ValidateRequest asks for a synchronous merge, judge round trip and verdict.
type ValidateRequest struct {
	ProblemID  string   `json:"problem_id" binding:"required"`
	Language   Language `json:"language" binding:"required"`
	SourceCode string   `json:"code" binding:"required"`
}

// ValidateResponse carries the verdict and the exact program sent to the judge.
type ValidateResponse struct {
	Verdict      Verdict `json:"verdict"`
	MergedSource string  `json:"merged_source"`
	JudgeStatus  string  `json:"judge_status"`
	Time         string  `json:"time,omitempty"`
	MemoryKB     int64   `json:"memory_kb,omitempty"`
}
