package prompts

import "strings"

// Language is the output language a request asks for.
type Language struct {
	// Code is the short tag the language classifier produces ("pt", "en").
	Code string
	// Name is how the language is spelled out to the model.
	Name string
	// Others is the localized fallback label of the client-topic classifier.
	Others string
}

var (
	Portuguese = Language{Code: "pt", Name: "portuguese from Portugal (pt-PT)", Others: "Outros"}
	English    = Language{Code: "en", Name: "english", Others: "Others"}
)

// ParseLanguage maps a frontend language tag ("pt", "pt-PT", "en-US") to a
// supported output language. Unknown tags fall back to English.
func ParseLanguage(tag string) Language {
	lower := strings.ToLower(tag)
	switch {
	case strings.Contains(lower, Portuguese.Code):
		return Portuguese
	case strings.Contains(lower, English.Code):
		return English
	default:
		return English
	}
}
