package hcf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// FormatError is returned when a field name, key or value cannot be written
// in a way that reads back the same.
type FormatError struct {
	Field string
	Key   string
	Msg   string
}

func (e *FormatError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("field %q: %v", e.Field, e.Msg)
	}
	return fmt.Sprintf("field %q, key %q: %v", e.Field, e.Key, e.Msg)
}

// validWord returns an error message if s cannot be used as field name or key.
func validWord(s string) string {
	if s == "" {
		return "empty name"
	}

	for i := 0; i < len(s); i++ {
		if !isWordChar(s[i]) {
			return fmt.Sprintf("invalid character %q in name", s[i])
		}
	}

	return ""
}

// escapeValue escapes backslashes, newlines and ESC bytes. If escapeComment is
// set, "//" is written so that it is not taken as the start of a comment.
func escapeValue(v string, escapeComment bool) (string, error) {
	var sb strings.Builder
	sb.Grow(len(v) + 8)

	for i := 0; i < len(v); i++ {
		switch c := v[i]; {
		case c == escapeChar:
			sb.WriteString(`\\`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == esc:
			if i+1 >= len(v) || v[i+1] != '[' {
				return "", errors.New("ESC not followed by [")
			}
			sb.WriteString(`\e`)
		case escapeComment && strings.HasPrefix(v[i:], commentStart):
			sb.WriteString(`\\//`)
			i++
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), nil
}

// formatValue returns the text to write after a key so that parsing it yields v.
func formatValue(v string) (string, error) {
	if v != "" && v[0] == quoteChar {
		return "", errors.New("value starts with a double quote")
	}

	// a trailing CR would be taken as part of the line terminator
	needQuotes := v != strings.Trim(v, whitespace) || strings.HasSuffix(v, "\r")
	if !needQuotes {
		return escapeValue(v, true)
	}

	if strings.IndexByte(v, quoteChar) >= 0 {
		return "", errors.New("value with surrounding whitespace contains a double quote")
	}

	s, err := escapeValue(v, false)
	if err != nil {
		return "", err
	}

	return string(quoteChar) + s + string(quoteChar), nil
}

// Format writes o in the hcf format to w. Fields and keys are written in
// natural order, values are escaped so that parsing the output returns the
// same fields and entries.
func Format(w io.Writer, o *Options) error {
	bw := bufio.NewWriter(w)

	for i, name := range o.Fields() {
		if msg := validWord(name); msg != "" {
			return &FormatError{Field: name, Msg: msg}
		}

		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return errors.Wrap(err, "write")
			}
		}

		header := name + string(fieldSeparator)
		if len(header) > MaxLineLength {
			return &FormatError{Field: name, Msg: "line too long"}
		}

		if _, err := fmt.Fprintln(bw, header); err != nil {
			return errors.Wrap(err, "write")
		}

		f, _ := o.Field(name)
		for _, key := range f.Keys() {
			if msg := validWord(key); msg != "" {
				return &FormatError{Field: name, Key: key, Msg: msg}
			}

			// an entry line starting with a slash is a comment
			if key[0] == commentChar {
				return &FormatError{Field: name, Key: key, Msg: "key starts with a slash"}
			}

			v, _ := f.Value(key)
			s, err := formatValue(v)
			if err != nil {
				return &FormatError{Field: name, Key: key, Msg: err.Error()}
			}

			line := "\t" + key
			if s != "" {
				line += " " + s
			}

			if len(line) > MaxLineLength {
				return &FormatError{Field: name, Key: key, Msg: "line too long"}
			}

			if _, err := fmt.Fprintln(bw, line); err != nil {
				return errors.Wrap(err, "write")
			}
		}
	}

	return errors.Wrap(bw.Flush(), "flush")
}
