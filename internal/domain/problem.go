package domain

// Parameter is one typed function parameter.
type Parameter struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// FunctionSignature is the problem metadata a stub is generated from.
// Inputs holds the raw "name: type" declarations in parameter order.
type FunctionSignature struct {
	Function string   `json:"function" yaml:"function" binding:"required"`
	Inputs   []string `json:"inputs" yaml:"inputs"`
	Return   string   `json:"return" yaml:"return" binding:"required"`
}

// ProblemSummary is the compact listing entry for a practice problem.
type ProblemSummary struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Topic      string `json:"topic" yaml:"topic"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
}

// Problem is the detailed description of a practice problem.
type Problem struct {
	ProblemSummary    `yaml:",inline"`
	FunctionSignature `yaml:",inline"`

	Statement    string `json:"statement" yaml:"statement"`
	SampleInput  string `json:"sample_input" yaml:"sample_input"`
	SampleOutput string `json:"sample_output" yaml:"sample_output"`
}

// StubRequest asks for stubs of an ad-hoc signature. An empty Language means every language.
type StubRequest struct {
	FunctionSignature
	Language Language `json:"language,omitempty"`
}
