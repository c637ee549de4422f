package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid question", "What is the notice period?", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only newlines", "\n\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Question(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Question(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestLangCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"two letters", "en", false},
		{"three letters", "fil", false},
		{"with region", "pt-BR", false},
		{"empty", "", true},
		{"single letter", "e", true},
		{"digits", "e1", true},
		{"empty region", "en-", true},
		{"too long", "abcdefghi", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := LangCode(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "LangCode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestFieldValidators(t *testing.T) {
	err := criterio.ValidateStruct(QuestionField("chat.suggested_questions[1]", " "))

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "chat.suggested_questions[1]", fieldErrs[0].Field)

	assert.NoError(t, LangCodeField("languages.source", "en"))
}
