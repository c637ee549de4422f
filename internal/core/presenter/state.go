package presenter

import "github.com/colonyops/lawsimplify/internal/core/analysis"

// TextStatus is the translation state of a unit's text.
type TextStatus int

const (
	TextOriginal TextStatus = iota
	TextTranslating
	TextTranslated
)

func (s TextStatus) String() string {
	switch s {
	case TextOriginal:
		return "original"
	case TextTranslating:
		return "translating"
	case TextTranslated:
		return "translated"
	default:
		return "unknown"
	}
}

// AudioStatus is the state of a unit's audio sub-operation.
type AudioStatus int

const (
	AudioNone AudioStatus = iota
	AudioLoading
	AudioReady
	AudioFailed
)

func (s AudioStatus) String() string {
	switch s {
	case AudioNone:
		return "none"
	case AudioLoading:
		return "loading"
	case AudioReady:
		return "ready"
	case AudioFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Text is the displayed text of a unit. Translated is set only when
// Status is TextTranslated; Lang is the language the text is shown in.
type Text struct {
	Status     TextStatus
	Lang       analysis.Lang
	Translated string
}

// UnitState is the view of one unit.
type UnitState struct {
	Unit     analysis.Unit
	Text     Text
	TextErr  string
	Audio    AudioStatus
	AudioErr string
	Playing  bool
}

// Display returns the text to show for the unit: the translation while one
// is committed or being replaced, otherwise the original.
func (u UnitState) Display() string {
	if u.Text.Status != TextOriginal && u.Text.Translated != "" {
		return u.Text.Translated
	}
	return u.Unit.Text()
}

// unitState is the mutable record behind a UnitState.
type unitState struct {
	unit     analysis.Unit
	text     Text
	prior    Text // restored if a translation fails
	textErr  string
	audio    AudioStatus
	audioErr string
}
