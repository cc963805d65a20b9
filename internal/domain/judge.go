package domain

// ExecutionRequest is the body submitted to the judge.
type ExecutionRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
}

// JudgeStatus is the status object reported by the judge.
type JudgeStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

// ExecutionResult is the judge's response payload. Every field may be absent.
type ExecutionResult struct {
	Stdout        string      `json:"stdout,omitempty"`
	Stderr        string      `json:"stderr,omitempty"`
	CompileOutput string      `json:"compile_output,omitempty"`
	Message       string      `json:"message,omitempty"`
	Time          string      `json:"time,omitempty"`
	Memory        int64       `json:"memory,omitempty"`
	Status        JudgeStatus `json:"status"`
}

// Verdict is the accepted/rejected classification derived from an ExecutionResult.
type Verdict struct {
	Accepted    bool   `json:"accepted"`
	DisplayText string `json:"display_text"`
}
