package analysis

// Lang is a language code exchanged with the remote service.
type Lang string

// Languages is the closed two-value language set of a client run: the
// original document language and one translation target.
type Languages struct {
	Source Lang
	Target Lang
	names  map[Lang]string
}

// DefaultLanguages is English source with Hindi target.
var DefaultLanguages = NewLanguages("en", "hi", map[string]string{
	"en": "English",
	"hi": "Hindi",
})

// NewLanguages builds a language pair with optional display names.
func NewLanguages(source, target string, names map[string]string) Languages {
	l := Languages{
		Source: Lang(source),
		Target: Lang(target),
		names:  make(map[Lang]string, len(names)),
	}
	for code, name := range names {
		l.names[Lang(code)] = name
	}
	return l
}

// Complement returns the other language of the pair. Anything that is not
// the target maps to the target.
func (l Languages) Complement(lang Lang) Lang {
	if lang == l.Target {
		return l.Source
	}
	return l.Target
}

// Name returns the display name of a language, falling back to its code.
func (l Languages) Name(lang Lang) string {
	if name, ok := l.names[lang]; ok && name != "" {
		return name
	}
	return string(lang)
}
