package language

import "strings"

// Auto is the sentinel source-language code meaning "let the provider
// detect the language".
const Auto = "auto"

// NormalizeTag normalizes a language tag to lowercase with "-" separators.
// Returns an empty string when the value is blank or contains invalid
// characters.
func NormalizeTag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	parts := strings.Split(trimmed, "-")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !isAlphaLower(part) {
			return ""
		}
		normalized = append(normalized, part)
	}

	if len(normalized) == 0 {
		return ""
	}
	return strings.Join(normalized, "-")
}

// NormalizeCode returns the primary language subtag (for example, "en"
// from "en-US").
func NormalizeCode(raw string) string {
	tag := NormalizeTag(raw)
	if tag == "" {
		return ""
	}
	if dash := strings.IndexByte(tag, '-'); dash >= 0 {
		return tag[:dash]
	}
	return tag
}

// NormalizeSource normalizes a source-language code, mapping blank or
// invalid values to Auto.
func NormalizeSource(raw string) string {
	code := NormalizeCode(raw)
	if code == "" {
		return Auto
	}
	return code
}

// IsAuto reports whether the code is the auto-detect sentinel.
func IsAuto(code string) bool {
	return strings.EqualFold(strings.TrimSpace(code), Auto)
}

func isAlphaLower(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
