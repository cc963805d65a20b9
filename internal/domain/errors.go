package domain

import "errors"

var (
	// ErrUnresolvedType is returned when a parameter, container element or return type
	// has no mapping in the target language.
	ErrUnresolvedType = errors.New("type cannot be resolved for language")

	// ErrUnsupportedLanguage is returned when a known language has no harness placeholder
	// or no judge identifier.
	ErrUnsupportedLanguage = errors.New("language is not supported for this operation")

	// ErrPlaceholderNotFound is returned when a wrapper template lacks the language placeholder.
	ErrPlaceholderNotFound = errors.New("wrapper template has no implementation placeholder")

	// ErrSubmissionFailed is returned when the judge rejects or cannot serve a submission.
	ErrSubmissionFailed = errors.New("judge submission failed")

	// ErrServerBusy is returned when both judge attempts failed.
	ErrServerBusy = errors.New("server is busy, try again later")

	// ErrMalformedResponse is returned when the judge answered with an undecodable body.
	ErrMalformedResponse = errors.New("judge returned a malformed response")

	// ErrInvalidLanguage is returned when a language name is not recognised at all.
	ErrInvalidLanguage = errors.New("invalid or unsupported language")

	// ErrProblemNotFound is returned when a problem cannot be found by ID.
	ErrProblemNotFound = errors.New("problem not found")

	// ErrWrapperNotFound is returned when no test wrapper exists for a problem and language.
	ErrWrapperNotFound = errors.New("test wrapper not found")

	// ErrSubmissionNotFound is returned when a submission cannot be found by ID.
	ErrSubmissionNotFound = errors.New("submission not found")

	// ErrPayloadTooLarge is returned when the source code exceeds the size limit.
	ErrPayloadTooLarge = errors.New("source code payload exceeds maximum size (1MB)")

	// ErrEmptySourceCode is returned when source code is empty.
	ErrEmptySourceCode = errors.New("source code cannot be empty")

	// ErrPublishFailed is returned when the message broker publish fails.
	ErrPublishFailed = errors.New("failed to publish submission to message queue")
)

// IsJudgeFailure reports whether err came from the judge round trip.
func IsJudgeFailure(err error) bool {
	return errors.Is(err, ErrSubmissionFailed) ||
		errors.Is(err, ErrServerBusy) ||
		errors.Is(err, ErrMalformedResponse)
}
