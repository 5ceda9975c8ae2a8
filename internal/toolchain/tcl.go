package toolchain

import "strings"

// raw marks a Tcl token that must be emitted verbatim, such as brackets,
// brace literals, or variable references.
type raw string

// tcl renders a command line, double-quoting every plain word so paths and
// values with spaces survive the tool's parser.
func tcl(words ...any) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch v := w.(type) {
		case raw:
			b.WriteString(string(v))
		case Generic:
			b.WriteString(`"` + v.String() + `"`)
		default:
			b.WriteString(`"` + v.(string) + `"`)
		}
	}
	return b.String()
}

// firstWord names a command for error reporting.
func firstWord(code string) string {
	word, _, _ := strings.Cut(strings.TrimSpace(code), " ")
	return strings.Trim(word, `"`)
}
