package validation

import "regexp"

// scriptRE matches a <script ...>...</script> pair up to the first closing tag.
// Tag names match case-insensitively and the body may span lines.
//
// This is a narrow XSS mitigation: event-handler attributes, javascript: URLs
// and unterminated script tags are left alone.
var scriptRE = regexp.MustCompile(`(?is)<script\b.*?</script>`)

// SanitizeInput strips script elements from strings. Any other value is
// returned unchanged, including its dynamic type.
func SanitizeInput(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return SanitizeString(s)
}

// SanitizeString removes every well-formed script element from s. All other
// markup passes through untouched.
func SanitizeString(s string) string {
	return scriptRE.ReplaceAllString(s, "")
}
