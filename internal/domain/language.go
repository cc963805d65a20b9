package domain

// Language represents a supported programming language.
type Language string

const (
	LangPython Language = "python"
	LangJava   Language = "java"
	LangC      Language = "c"
	LangCpp    Language = "cpp"
	LangSML    Language = "sml"
)

var languages = []Language{LangPython, LangJava, LangC, LangCpp, LangSML}

// Languages returns every known language in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// IsValid checks if the language is one of the known languages.
func (l Language) IsValid() bool {
	for _, known := range languages {
		if l == known {
			return true
		}
	}
	return false
}

// LanguageInfo describes a supported language.
type LanguageInfo struct {
	Name        Language `json:"name"`
	Label       string   `json:"label"`
	JudgeID     int      `json:"judge_id,omitempty"`
	Submittable bool     `json:"submittable"`
	Stubs       bool     `json:"stubs"`
}
