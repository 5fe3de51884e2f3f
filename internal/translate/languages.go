package translate

import "sort"

var localLanguageNames = map[string]string{
	"ar": "Arabic",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fa": "Persian",
	"fr": "French",
	"he": "Hebrew",
	"hi": "Hindi",
	"id": "Indonesian",
	"it": "Italian",
	"ja": "Japanese",
	"ko": "Korean",
	"pl": "Polish",
	"pt": "Portuguese",
	"ru": "Russian",
	"th": "Thai",
	"tr": "Turkish",
	"ur": "Urdu",
	"vi": "Vietnamese",
	"zh": "Chinese",
}

// SupportedLanguages is the static table backing the local provider's
// language listing, ordered by code.
func SupportedLanguages() []Language {
	codes := make([]string, 0, len(localLanguageNames))
	for code := range localLanguageNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	languages := make([]Language, 0, len(codes))
	for _, code := range codes {
		languages = append(languages, Language{Code: code, Name: localLanguageNames[code]})
	}
	return languages
}

func languageName(code string) string {
	if name, ok := localLanguageNames[code]; ok {
		return name
	}
	if code == "" {
		return "English"
	}
	return code
}
