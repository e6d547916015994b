package domain

// Language is a user's preferred display language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"

	// DefaultLanguage is assumed when a profile has no explicit preference.
	DefaultLanguage = LanguageEnglish
)

func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageSpanish
}

// Name returns the English name of the language, for prompting.
func (l Language) Name() string {
	switch l {
	case LanguageSpanish:
		return "Spanish"
	default:
		return "English"
	}
}

// Other returns the opposite member of the supported pair.
func (l Language) Other() Language {
	if l == LanguageEnglish {
		return LanguageSpanish
	}
	return LanguageEnglish
}
