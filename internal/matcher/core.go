package matcher

import "strings"

// directiveCore is the result of parsing a code span's raw content against
// `label? ":" pattern`, before any suffix has been applied.
type directiveCore struct {
	label       string
	kind        PatternKind
	regexSource string
}

// parseCore recognizes `label? ":" pattern` in a code span's raw content.
// It returns ok == false when content doesn't match the grammar at all, in
// which case the span is ordinary literal inline code, not a directive
// candidate.
func parseCore(content string) (directiveCore, bool) {
	if content == "ruler" {
		return directiveCore{kind: Ruler}, true
	}

	idx := strings.IndexByte(content, ':')
	if idx < 0 {
		return directiveCore{}, false
	}
	label, pattern := content[:idx], content[idx+1:]
	if !validLabel(label) {
		return directiveCore{}, false
	}

	switch pattern {
	case "text":
		return directiveCore{label: label, kind: Text}, true
	case "number":
		return directiveCore{label: label, kind: Number}, true
	case "html":
		return directiveCore{label: label, kind: Html}, true
	case "ruler":
		return directiveCore{label: label, kind: Ruler}, true
	}

	if src, ok := parseRegexPattern(pattern); ok {
		return directiveCore{label: label, kind: Regex, regexSource: src}, true
	}
	return directiveCore{}, false
}

// validLabel reports whether s is "_" or a valid identifier-shaped label.
func validLabel(s string) bool {
	if s == "_" {
		return true
	}
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// parseRegexPattern recognizes "/regex/", consuming backslash-escaped
// slashes ("\/") into a literal "/" in the returned source while leaving
// every other escape sequence untouched for the regex engine to interpret.
// The closing, unescaped "/" must be the final character of pattern.
func parseRegexPattern(pattern string) (string, bool) {
	if len(pattern) < 2 || pattern[0] != '/' {
		return "", false
	}
	var b strings.Builder
	i := 1
	for i < len(pattern) {
		switch pattern[i] {
		case '\\':
			if i+1 < len(pattern) && pattern[i+1] == '/' {
				b.WriteByte('/')
				i += 2
				continue
			}
			if i+1 < len(pattern) {
				b.WriteByte(pattern[i])
				b.WriteByte(pattern[i+1])
				i += 2
				continue
			}
			b.WriteByte(pattern[i])
			i++
		case '/':
			if i == len(pattern)-1 {
				return b.String(), true
			}
			return "", false
		default:
			b.WriteByte(pattern[i])
			i++
		}
	}
	return "", false
}
