package hcf

import (
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	whitespace     = " \t"
	fieldSeparator = ':'
	commentChar    = '/'
)

// parser holds the state of one parse run. A new parser is used for each
// source, so independent loads never share anything.
type parser struct {
	opts *Options

	// field subsequent entries are added to, nil before the first header
	currentField *Field
	currentName  string

	line   int
	logger log.Logger
}

func newParser(opts *Options, logger log.Logger) *parser {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	return &parser{
		opts:   opts,
		logger: logger,
	}
}

func (p *parser) newField(name string) {
	p.currentName = name
	p.currentField = p.opts.AddField(name)
}

func (p *parser) setField(key, value string) {
	level.Debug(p.logger).Log("msg", "add entry", "line", p.line, "field", p.currentName, "key", key)
	p.currentField.Add(key, value)
}

// isWordChar returns true for bytes which may be part of a field name or key:
// everything above space except the colon.
func isWordChar(c byte) bool {
	return c > ' ' && c != fieldSeparator
}

// getWord splits s into the leading word and the rest, which starts at the
// first byte that is not a word character.
func getWord(s string) (word, rest string) {
	i := 0
	for i < len(s) && isWordChar(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// parseLine processes a single line without the line terminator.
func (p *parser) parseLine(line string) {
	p.line++

	line = strings.TrimLeft(line, whitespace)
	if line == "" {
		return
	}

	word, rest := getWord(line)

	// a slash is a word character, so "/name:" is a header
	if rest != "" && rest[0] == fieldSeparator {
		if word == "" {
			level.Debug(p.logger).Log("msg", "field header without name, dropping entries until next field", "line", p.line)
			p.currentName, p.currentField = "", nil
			return
		}

		p.newField(word)
		return
	}

	if line[0] == commentChar {
		return
	}

	if word == "" {
		level.Debug(p.logger).Log("msg", "ignoring line without key", "line", p.line)
		return
	}

	if p.currentField == nil {
		level.Debug(p.logger).Log("msg", "ignoring entry outside of a field", "line", p.line, "key", word)
		return
	}

	value := extractValue(strings.TrimLeft(rest, whitespace))
	p.setField(word, value)
}
