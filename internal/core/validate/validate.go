// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// Question validates a chat question is non-empty after trimming whitespace.
func Question(q string) error {
	if strings.TrimSpace(q) == "" {
		return fmt.Errorf("question cannot be blank")
	}
	return nil
}

// QuestionField returns a criterio validator for a configured question.
func QuestionField(field, q string) error {
	return criterio.Run(field, q, Question)
}

// LangCode validates a language code: 2 to 8 letters, optionally followed
// by a region subtag such as "pt-BR".
func LangCode(code string) error {
	base, region, hasRegion := strings.Cut(code, "-")
	if !isLetters(base, 2, 8) {
		return fmt.Errorf("invalid language code %q", code)
	}
	if hasRegion && !isLetters(region, 2, 8) {
		return fmt.Errorf("invalid region in language code %q", code)
	}
	return nil
}

// LangCodeField returns a criterio validator for language codes.
func LangCodeField(field, code string) error {
	return criterio.Run(field, code, LangCode)
}

func isLetters(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
