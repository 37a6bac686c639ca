package hcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testDecodeEscapes = []struct {
	in, out string
}{
	{"plain text", "plain text"},
	{`a\/b`, "a/b"},
	{`line1\nline2`, "line1\nline2"},
	{`\e[31mred\e[0m`, "\x1b[31mred\x1b[0m"},
	{`\033[1mbold`, "\x1b[1mbold"},
	{`\e`, "e"},
	{`\ex`, "ex"},
	{`\033`, "033"},
	{`\033x`, "033x"},
	{`trailing\`, `trailing\`},
	{`\"quoted\"`, `"quoted"`},
	{`\\`, `\`},
	{`\\n`, `\n`},
	{`\\\n`, "\\\n"},
	{`a\ b`, "a b"},
}

func TestDecodeEscapes(t *testing.T) {
	for _, test := range testDecodeEscapes {
		assert.Equal(t, test.out, decodeEscapes(test.in), "input %q", test.in)
	}
}

var testStripComment = []struct {
	in, out string
}{
	{"hello // comment", "hello "},
	{"a//b", "a"},
	{"//x", ""},
	{"a/b/c", "a/b/c"},
	{"a/b // c", "a/b "},
	{`a\//b`, "a//b"},
	{`a\//b // c`, "a//b "},
	{`a\//b\//c`, "a//b//c"},
	{`\///`, "///"},
	{"no comment", "no comment"},
}

func TestStripComment(t *testing.T) {
	for _, test := range testStripComment {
		assert.Equal(t, test.out, stripComment(test.in), "input %q", test.in)
	}
}

var testExtractValue = []struct {
	in, out string
}{
	{"", ""},
	{"value", "value"},
	{"value  \t", "value"},
	{"hello // comment", "hello"},
	{"hello world", "hello world"},
	{`"a//b"`, "a//b"},
	{`"  padded  "`, "  padded  "},
	{`"a" trailing text`, "a"},
	{`"unterminated // x`, "unterminated // x"},
	{`a\/b`, "a/b"},
	// escapes are decoded before comments are looked for
	{`a\/\/b`, "a"},
	{`a\\//b`, "a//b"},
	{`line1\nline2`, "line1\nline2"},
	{`\e[31merror\e[0m // red`, "\x1b[31merror\x1b[0m"},
	{`\"starts with quote" rest`, "starts with quote"},
	{`trailing\`, `trailing\`},
	{"http://example.com", "http:"},
	{`http:\\//example.com`, "http://example.com"},
}

func TestExtractValue(t *testing.T) {
	for _, test := range testExtractValue {
		assert.Equal(t, test.out, extractValue(test.in), "input %q", test.in)
	}
}
