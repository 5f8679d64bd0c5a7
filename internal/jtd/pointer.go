package jtd

import "strings"

// pointerEscaper applies RFC 6901 token escaping.
var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders a sequence of path tokens as a JSON Pointer. An empty
// token sequence is the root pointer "".
func Pointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}

	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(t))
	}
	return b.String()
}
