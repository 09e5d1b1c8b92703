package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

// delimitedQuery recognises /pattern/flags queries.
var delimitedQuery = regexp.MustCompile(`(?s)^/.*/[A-Za-z]*$`)

// Supported pattern flags. g and u are accepted as no-ops: scanning is
// always global and Go patterns are always UTF-8 aware.
const (
	flagGlobal     = 'g'
	flagIgnoreCase = 'i'
	flagMultiline  = 'm'
	flagDotAll     = 's'
	flagUnicode    = 'u'
	flagSticky     = 'y'
)

// ParseQuery classifies a query string.
//
// Queries shaped like /pattern/flags are literal; all others are
// approximate. A delimited query with an empty pattern, an escaped
// closing delimiter or bad flags is malformed.
func ParseQuery(query string) domain.ParsedQuery {
	if !delimitedQuery.MatchString(query) {
		return domain.ApproximateQuery{Text: query}
	}

	end := strings.LastIndexByte(query, '/')
	pattern, flags := query[1:end], query[end+1:]

	if pattern == "" {
		return domain.MalformedQuery{
			Raw: query,
			Err: fmt.Errorf("%w: empty pattern", domain.ErrMalformedQuery),
		}
	}
	if escapedDelimiter(pattern) {
		return domain.MalformedQuery{
			Raw: query,
			Err: fmt.Errorf("%w: unterminated pattern", domain.ErrMalformedQuery),
		}
	}
	if err := validateFlags(flags); err != nil {
		return domain.MalformedQuery{Raw: query, Err: fmt.Errorf("%w: %w", domain.ErrMalformedQuery, err)}
	}

	return domain.LiteralQuery{Pattern: pattern, Flags: flags}
}

// escapedDelimiter reports whether the pattern ends in an odd run of
// backslashes, which would escape the closing slash.
func escapedDelimiter(pattern string) bool {
	n := 0
	for i := len(pattern) - 1; i >= 0 && pattern[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func validateFlags(flags string) error {
	seen := make(map[rune]bool, len(flags))
	for _, f := range flags {
		switch f {
		case flagGlobal, flagIgnoreCase, flagMultiline, flagDotAll, flagUnicode:
		case flagSticky:
			return fmt.Errorf("%w: %q has no equivalent", domain.ErrUnsupportedFlag, f)
		default:
			return fmt.Errorf("%w: unknown flag %q", domain.ErrUnsupportedFlag, f)
		}
		if seen[f] {
			return fmt.Errorf("%w: duplicate flag %q", domain.ErrUnsupportedFlag, f)
		}
		seen[f] = true
	}
	return nil
}

// CompileLiteral compiles a literal query into a regular expression.
func CompileLiteral(q domain.LiteralQuery) (*regexp.Regexp, error) {
	if err := validateFlags(q.Flags); err != nil {
		return nil, err
	}

	var inline strings.Builder
	for _, f := range q.Flags {
		switch f {
		case flagIgnoreCase, flagMultiline, flagDotAll:
			inline.WriteRune(f)
		}
	}

	expr := q.Pattern
	if inline.Len() > 0 {
		expr = "(?" + inline.String() + ")" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile /%s/%s: %w", q.Pattern, q.Flags, err)
	}
	return re, nil
}
