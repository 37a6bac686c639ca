package hcf

import "strings"

const (
	escapeChar   = '\\'
	quoteChar    = '"'
	commentStart = "//"

	// ESC introduces ANSI terminal sequences.
	esc = '\x1b'
)

// decodeEscapes replaces backslash sequences in s:
//
//	\e[    ESC followed by [
//	\033[  ESC followed by [
//	\n     newline
//	\x     x, for any other byte x
//
// A backslash at the very end of s is kept.
func decodeEscapes(s string) string {
	if strings.IndexByte(s, escapeChar) < 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != escapeChar {
			sb.WriteByte(c)
			continue
		}

		rest := s[i+1:]
		switch {
		case rest == "":
			sb.WriteByte(escapeChar)
		case strings.HasPrefix(rest, "e["):
			// the [ is copied in the next iteration
			sb.WriteByte(esc)
			i++
		case strings.HasPrefix(rest, "033["):
			sb.WriteByte(esc)
			i += 3
		case rest[0] == 'n':
			sb.WriteByte('\n')
			i++
		default:
			sb.WriteByte(rest[0])
			i++
		}
	}

	return sb.String()
}

// stripComment cuts s at the first "//" which is not preceded by a backslash.
// For an escaped "\//" the backslash is removed and the search continues
// behind it.
func stripComment(s string) string {
	start := 0
	for {
		i := strings.Index(s[start:], commentStart)
		if i < 0 {
			return s
		}
		i += start

		if i == 0 || s[i-1] != escapeChar {
			return s[:i]
		}

		s = s[:i-1] + s[i:]
		start = i + 1
	}
}

// extractValue returns the value for the raw text following a key. Escape
// sequences are decoded first. A value starting with a double quote ends at
// the next double quote, otherwise trailing comments and whitespace are
// removed.
func extractValue(raw string) string {
	v := decodeEscapes(raw)

	if v != "" && v[0] == quoteChar {
		v = v[1:]
		if i := strings.IndexByte(v, quoteChar); i >= 0 {
			v = v[:i]
		}
		return v
	}

	return strings.TrimRight(stripComment(v), whitespace)
}
