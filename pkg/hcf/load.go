package hcf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// MaxLineLength is the maximum number of bytes of a line which are parsed.
// Longer lines are truncated, the remaining bytes are discarded.
const MaxLineLength = 2048

// SourceError is returned when a source cannot be opened or read.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%v: %v", e.Source, e.Err)
}

// Cause returns the underlying error.
func (e *SourceError) Cause() error { return e.Err }

func (e *SourceError) Unwrap() error { return e.Err }

type loadConfig struct {
	logger        log.Logger
	optionBuckets int
	fieldBuckets  int
}

// LoadOption configures how a source is loaded.
type LoadOption func(*loadConfig)

// WithLogger sets the logger diagnostics are written to. By default nothing is
// logged.
func WithLogger(logger log.Logger) LoadOption {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

// WithBuckets sets the number of hash buckets used for the fields and for the
// entries of each field.
func WithBuckets(fields, entries int) LoadOption {
	return func(c *loadConfig) {
		c.optionBuckets = fields
		c.fieldBuckets = entries
	}
}

func newLoadConfig(opts []LoadOption) loadConfig {
	cfg := loadConfig{
		logger:        log.NewNopLogger(),
		optionBuckets: OptionsBuckets,
		fieldBuckets:  FieldBuckets,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// readLine returns the next line from rd without the line terminator. At most
// MaxLineLength bytes are returned, truncated reports whether bytes were
// dropped. At the end of the input io.EOF is returned.
func readLine(rd *bufio.Reader) (line string, truncated bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := rd.ReadLine()
		if err != nil {
			if err == io.EOF && buf != nil {
				return string(buf), truncated, nil
			}
			return "", false, err
		}

		room := MaxLineLength - len(buf)
		if len(chunk) > room {
			chunk = chunk[:room]
			truncated = true
		}

		if buf == nil {
			buf = make([]byte, 0, len(chunk))
		}
		buf = append(buf, chunk...)

		if !isPrefix {
			return string(buf), truncated, nil
		}
	}
}

func parse(rd io.Reader, cfg loadConfig) (*Options, error) {
	opts := newOptions(cfg.optionBuckets, cfg.fieldBuckets)
	p := newParser(opts, cfg.logger)

	br := bufio.NewReaderSize(rd, MaxLineLength+1)
	for {
		line, truncated, err := readLine(br)
		if err == io.EOF {
			break
		}

		if err != nil {
			opts.Destroy()
			return nil, err
		}

		if truncated {
			level.Debug(cfg.logger).Log("msg", "line too long, truncated", "line", p.line+1, "max", MaxLineLength)
		}

		p.parseLine(line)
	}

	level.Debug(cfg.logger).Log("msg", "parsed source", "lines", p.line, "fields", opts.Len())

	return opts, nil
}

// Parse reads all lines from rd and returns the fields found.
func Parse(rd io.Reader, opts ...LoadOption) (*Options, error) {
	o, err := parse(rd, newLoadConfig(opts))
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	return o, nil
}

// ParseString parses data. Since parsing a string cannot fail, no error is
// returned.
func ParseString(data string, opts ...LoadOption) *Options {
	o, err := parse(strings.NewReader(data), newLoadConfig(opts))
	if err != nil {
		panic(err)
	}

	return o
}

// Load opens and parses the file. If the file cannot be opened or read, a
// *SourceError is returned.
func Load(filename string, opts ...LoadOption) (o *Options, err error) {
	cfg := newLoadConfig(opts)

	f, err := os.Open(filename)
	if err != nil {
		return nil, &SourceError{Source: filename, Err: err}
	}

	defer func() {
		e := f.Close()
		if err == nil && e != nil {
			o.Destroy()
			o, err = nil, &SourceError{Source: filename, Err: e}
		}
	}()

	level.Debug(cfg.logger).Log("msg", "load", "file", filename)

	o, err = parse(f, cfg)
	if err != nil {
		return nil, &SourceError{Source: filename, Err: err}
	}

	return o, nil
}

// LoadAll loads all files and merges them in order, entries from later files
// replace those from earlier ones. Files which cannot be loaded are skipped,
// their errors are combined into the returned error.
func LoadAll(filenames []string, opts ...LoadOption) (*Options, error) {
	cfg := newLoadConfig(opts)
	result := newOptions(cfg.optionBuckets, cfg.fieldBuckets)

	var errs []error
	for _, filename := range filenames {
		o, err := Load(filename, opts...)
		if err != nil {
			level.Warn(cfg.logger).Log("msg", "unable to load file", "file", filename, "err", err)
			errs = append(errs, err)
			continue
		}

		Merge(result, o)
		o.Destroy()
	}

	return result, multierr.Combine(errs...)
}
