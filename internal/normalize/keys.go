package normalize

import (
	"strings"
	"unicode"
)

// ToLowerDotPath normalizes an environment key to a lowercase dot-separated path.
// Double underscores (__) are treated as level separators and converted to dots.
// Single underscores within a level are preserved.
// Examples:
//   - "RULES__EMAIL" → "rules.email"
//   - "RULES__CONFIRM_PASSWORD" → "rules.confirm_password"
//   - "MODE" → "mode"
func ToLowerDotPath(key string) string {
	normalized := strings.ReplaceAll(key, "__", ".")
	return strings.ToLower(normalized)
}

// FoldFieldName reduces a field name to a comparison key that ignores case,
// underscores, and dashes, so environment keys can address camelCase fields.
// Examples:
//   - "confirmPassword" → "confirmpassword"
//   - "confirm_password" → "confirmpassword"
//   - "Confirm-Password" → "confirmpassword"
func FoldFieldName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r == '_' || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// TrimPrefixFold strips prefix from key ignoring case, reporting whether it matched.
// An empty prefix always matches.
func TrimPrefixFold(key, prefix string) (string, bool) {
	if prefix == "" {
		return key, true
	}
	if len(key) < len(prefix) || !strings.EqualFold(key[:len(prefix)], prefix) {
		return key, false
	}
	return key[len(prefix):], true
}
