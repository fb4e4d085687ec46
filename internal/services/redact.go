package services

import "regexp"

// RedactionMarker replaces PII matches in note text. It deliberately
// contains no digits, "@", or lowercase letters, so no redaction pattern
// can re-match it: Redact is idempotent.
const RedactionMarker = "[REDACTED]"

var (
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern  = regexp.MustCompile(`\+?\d[\d\-\s]{7,}\d`)
	handlePattern = regexp.MustCompile(`@\w+`)
	namePattern   = regexp.MustCompile(`\b([A-Z][a-z]+)\s([A-Z][a-z]+)\b`)
)

// Redact scrubs email addresses, phone-like digit runs, @handles and
// probable "First Last" name bigrams from free text. The name pass is a
// best-effort heuristic, not a privacy guarantee: it keeps the first word
// and replaces the second. Output is not truncated here; callers decide
// the stored length.
func Redact(text string) string {
	if text == "" {
		return ""
	}
	out := emailPattern.ReplaceAllString(text, RedactionMarker)
	out = phonePattern.ReplaceAllString(out, RedactionMarker)
	out = handlePattern.ReplaceAllString(out, RedactionMarker)
	out = namePattern.ReplaceAllString(out, "$1 "+RedactionMarker)
	return out
}
