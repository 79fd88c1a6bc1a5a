/*
PURPOSE:
  Reads simulator scalar result files (.sca) into model.RawRecord.
  The only place that knows the line format.

REQUIREMENTS:
  User-specified:
  - Extract config, scalar, par and attr lines.
  - Metric names may contain spaces.

  Implementation-discovered:
  - Lines are split on single spaces, so runs of spaces give empty tokens.
  - Scalar values that do not parse as floats are kept as text.
  - Malformed lines are dropped unless Options.Diagnose asks for them.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (LoadResults), internal/cli (inspect)
  - Produces: internal/model.RawRecord

ERROR HANDLING:
  - I/O errors and invalid UTF-8 return an error with an empty record.
  - The caller decides whether to continue.

IMPLEMENTATION RULES:
  - ParseLine is pure; keep it free of I/O.
  - A later line with the same key overwrites an earlier one.

USAGE:
  raw, issues, err := parser.ParseFile("results/Baseline-0.sca", parser.Options{})

SELF-HEALING INSTRUCTIONS:
  - If a new line type is needed, add a prefixRule and a Kind.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update when the simulator changes its result-file format.
*/

// Package parser reads simulator scalar result files (.sca) into raw records.
//
// Lines are classified by prefix. Anything that does not match a known prefix,
// or that lacks the tokens its prefix needs, is dropped. With Options.Diagnose
// the dropped lines are returned as issues instead of disappearing silently.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/daryltucker/sca-analyzer/internal/model"
)

// MaxLineLength is the longest line the scanner accepts.
const MaxLineLength = 1 << 20

// ErrInvalidEncoding is returned when a line is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

// Kind identifies the bucket a line belongs to.
type Kind int

const (
	KindNone Kind = iota
	KindConfig
	KindScalar
	KindParameter
	KindAttribute
)

// Entry is a single classified line.
type Entry struct {
	Kind   Kind
	Key    string
	Value  string
	Scalar model.ScalarValue
}

// Issue describes a line that had a known prefix but could not be used.
type Issue struct {
	Line   int
	Text   string
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s: %q", i.Line, i.Reason, i.Text)
}

// Options tunes parsing.
type Options struct {
	// Diagnose collects an Issue for every malformed line.
	Diagnose bool
}

type prefixRule struct {
	prefix string
	kind   Kind
	tokens int
}

var rules = []prefixRule{
	{"config ", KindConfig, 3},
	{"scalar ", KindScalar, 3},
	{"par ", KindParameter, 4},
	{"attr ", KindAttribute, 3},
}

// ParseFile parses the file at path.
// On any error the returned record is empty (but has all maps allocated).
func ParseFile(path string, opts Options) (model.RawRecord, []Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.NewRawRecord(), nil, err
	}
	defer f.Close()

	return Parse(f, opts)
}

// Parse reads result lines from r.
func Parse(r io.Reader, opts Options) (model.RawRecord, []Issue, error) {
	rec := model.NewRawRecord()
	var issues []Issue

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineLength)

	n := 0
	for scanner.Scan() {
		n++
		raw := scanner.Bytes()
		if !utf8.Valid(raw) {
			return model.NewRawRecord(), issues, fmt.Errorf("line %d: %w", n, ErrInvalidEncoding)
		}

		line := strings.TrimSpace(string(raw))
		entry, reason := classify(line)
		if reason != "" {
			if opts.Diagnose {
				issues = append(issues, Issue{Line: n, Text: line, Reason: reason})
			}
			continue
		}

		switch entry.Kind {
		case KindConfig:
			rec.Config[entry.Key] = entry.Value
		case KindScalar:
			rec.Scalars[entry.Key] = entry.Scalar
		case KindParameter:
			rec.Parameters[entry.Key] = entry.Value
		case KindAttribute:
			rec.Metadata[entry.Key] = entry.Value
		}
	}

	if err := scanner.Err(); err != nil {
		return model.NewRawRecord(), issues, err
	}

	return rec, issues, nil
}

// ParseLine classifies a single line. The second result is false when the
// line contributes nothing.
func ParseLine(line string) (Entry, bool) {
	entry, reason := classify(strings.TrimSpace(line))
	return entry, reason == "" && entry.Kind != KindNone
}

// classify returns the entry for line, or a non-empty reason when a line with
// a known prefix is malformed. Unknown prefixes yield KindNone and no reason.
func classify(line string) (Entry, string) {
	for _, rule := range rules {
		if !strings.HasPrefix(line, rule.prefix) {
			continue
		}

		parts := strings.SplitN(line, " ", rule.tokens)
		if len(parts) < rule.tokens {
			return Entry{}, fmt.Sprintf("%s line needs %d tokens", strings.TrimSpace(rule.prefix), rule.tokens)
		}

		switch rule.kind {
		case KindConfig:
			return Entry{Kind: KindConfig, Key: parts[1], Value: strings.Trim(parts[2], `"`)}, ""
		case KindScalar:
			return scalarEntry(parts[1], parts[2])
		case KindParameter:
			return Entry{
				Kind:  KindParameter,
				Key:   parts[1] + "." + parts[2],
				Value: strings.Trim(parts[3], `"`),
			}, ""
		case KindAttribute:
			return Entry{Kind: KindAttribute, Key: parts[1], Value: parts[2]}, ""
		}
	}

	return Entry{}, ""
}

// scalarEntry splits the remainder of a scalar line on its first pair of
// double quotes: the quoted text is the metric name, the rest is the value.
func scalarEntry(module, remainder string) (Entry, string) {
	open := strings.IndexByte(remainder, '"')
	if open < 0 {
		return Entry{}, "scalar metric name is not quoted"
	}
	closing := strings.IndexByte(remainder[open+1:], '"')
	if closing < 0 {
		return Entry{}, "scalar metric name has no closing quote"
	}
	closing += open + 1

	metric := remainder[open+1 : closing]
	text := strings.TrimSpace(remainder[closing+1:])

	value := model.Text(text)
	// Overflow still yields a number (±Inf).
	if f, err := strconv.ParseFloat(text, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		value = model.Number(f)
	}

	return Entry{
		Kind:   KindScalar,
		Key:    module + "." + metric,
		Value:  text,
		Scalar: value,
	}, ""
}
