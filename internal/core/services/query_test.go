package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/flamesearch/internal/core/domain"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.ParsedQuery
	}{
		{"plain text", "foo", domain.ApproximateQuery{Text: "foo"}},
		{"single slash", "/", domain.ApproximateQuery{Text: "/"}},
		{"path like", "/usr/lib/libc.so.6", domain.ApproximateQuery{Text: "/usr/lib/libc.so.6"}},
		{"leading slash only", "/foo", domain.ApproximateQuery{Text: "/foo"}},
		{"pattern", "/foo/", domain.LiteralQuery{Pattern: "foo"}},
		{"pattern with flags", "/foo/gi", domain.LiteralQuery{Pattern: "foo", Flags: "gi"}},
		{"anchored", "/^foo$/", domain.LiteralQuery{Pattern: "^foo$"}},
		{"inner slash", "/a/b/", domain.LiteralQuery{Pattern: "a/b"}},
		{"escaped backslash", `/a\\/`, domain.LiteralQuery{Pattern: `a\\`}},
		{"unbalanced class", "/[/", domain.LiteralQuery{Pattern: "["}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.query))
		})
	}
}

func TestParseQuery_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{"empty pattern", "//", domain.ErrMalformedQuery},
		{"empty pattern with flags", "//g", domain.ErrMalformedQuery},
		{"escaped delimiter", `/foo\/`, domain.ErrMalformedQuery},
		{"sticky flag", "/foo/y", domain.ErrUnsupportedFlag},
		{"unknown flag", "/foo/x", domain.ErrUnsupportedFlag},
		{"duplicate flag", "/foo/ii", domain.ErrUnsupportedFlag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseQuery(tt.query)

			malformed, ok := parsed.(domain.MalformedQuery)
			require.True(t, ok, "expected malformed, got %T", parsed)
			assert.Equal(t, tt.query, malformed.Raw)
			assert.ErrorIs(t, malformed.Err, domain.ErrMalformedQuery)
			assert.ErrorIs(t, malformed.Err, tt.wantErr)
			assert.Equal(t, domain.SearchModeMalformed, parsed.Mode())
		})
	}
}

func TestCompileLiteral_Flags(t *testing.T) {
	tests := []struct {
		name    string
		query   domain.LiteralQuery
		input   string
		matches bool
	}{
		{"default is case sensitive", domain.LiteralQuery{Pattern: "foo"}, "FOO", false},
		{"ignore case", domain.LiteralQuery{Pattern: "foo", Flags: "i"}, "FOO", true},
		{"global is a no-op", domain.LiteralQuery{Pattern: "foo", Flags: "g"}, "foo", true},
		{"unicode is a no-op", domain.LiteralQuery{Pattern: "é", Flags: "u"}, "café", true},
		{"dot all", domain.LiteralQuery{Pattern: "a.b", Flags: "s"}, "a\nb", true},
		{"no dot all", domain.LiteralQuery{Pattern: "a.b"}, "a\nb", false},
		{"multiline", domain.LiteralQuery{Pattern: "^b", Flags: "m"}, "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := CompileLiteral(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.matches, re.MatchString(tt.input))
		})
	}
}

func TestCompileLiteral_Errors(t *testing.T) {
	_, err := CompileLiteral(domain.LiteralQuery{Pattern: "["})
	assert.Error(t, err)

	_, err = CompileLiteral(domain.LiteralQuery{Pattern: "foo", Flags: "y"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFlag)

	_, err = CompileLiteral(domain.LiteralQuery{Pattern: "foo", Flags: "gig"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFlag)
}
