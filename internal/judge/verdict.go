package judge

import (
	"strings"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

const (
	acceptedStatusID          = 3
	acceptedStatusDescription = "Accepted"

	fallbackAccepted = "All tests passed."
	fallbackRejected = "An unknown error occurred."
)

// IsAccepted reports whether the judge accepted the run. Judge builds differ in which
// signal they set, so either one is enough.
func IsAccepted(result *domain.ExecutionResult) bool {
	if result == nil {
		return false
	}
	return result.Status.ID == acceptedStatusID || result.Status.Description == acceptedStatusDescription
}

// Evaluate classifies result and picks the text to show the user.
func Evaluate(result *domain.ExecutionResult) domain.Verdict {
	if IsAccepted(result) {
		text := strings.TrimSpace(result.Stdout)
		if text == "" {
			text = fallbackAccepted
		}
		return domain.Verdict{Accepted: true, DisplayText: text}
	}

	if result == nil {
		return domain.Verdict{DisplayText: fallbackRejected}
	}
	return domain.Verdict{DisplayText: firstNonEmpty(result.Stderr, result.CompileOutput, result.Message, fallbackRejected)}
}

// firstNonEmpty returns the first non-empty candidate. Order is runtime output, compiler
// output, generic message.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
