// Package harness splices user code into a problem's test wrapper.
package harness

import (
	"fmt"
	"strings"

	"github.com/Harsh-BH/gauntlet/internal/domain"
)

var placeholders = map[domain.Language]string{
	domain.LangPython: "# function implementation",
	domain.LangJava:   "// function implementation",
	domain.LangC:      "// function implementation",
	domain.LangCpp:    "// function implementation",
}

// Placeholder returns the marker comment registered for lang.
func Placeholder(lang domain.Language) (string, bool) {
	p, ok := placeholders[lang]
	return p, ok
}

// Merge replaces the first occurrence of the language placeholder in wrapper with userCode.
// The rest of the wrapper is left byte-identical. userCode is not inspected.
func Merge(wrapper, userCode string, lang domain.Language) (string, error) {
	placeholder, ok := placeholders[lang]
	if !ok {
		return "", fmt.Errorf("%w: no placeholder registered for %q", domain.ErrUnsupportedLanguage, lang)
	}
	if !strings.Contains(wrapper, placeholder) {
		return "", fmt.Errorf("%w: %q not found in %s wrapper", domain.ErrPlaceholderNotFound, placeholder, lang)
	}
	return strings.Replace(wrapper, placeholder, userCode, 1), nil
}
