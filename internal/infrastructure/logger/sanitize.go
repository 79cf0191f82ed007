package logger

import (
	"fmt"
	"strings"
)

// maxLogValue bounds how much of a provider message or LLM title is logged.
const maxLogValue = 200

// SanitizeForLog escapes control characters so user or provider supplied text
// cannot forge log lines or drive the terminal. Printable Unicode is kept and
// the result is cut to maxLogValue runes.
func SanitizeForLog(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n == maxLogValue {
			b.WriteString("...")
			break
		}
		n++
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		case '\t':
			b.WriteString("\\t")
		default:
			if r < 32 || r == 127 {
				fmt.Fprintf(&b, "\\x%02x", r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
