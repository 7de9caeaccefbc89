// Package sql guards the statements the pipeline sends to a datasource.
package sql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ekaya-inc/ekaya-bi/pkg/apperrors"
)

// ErrMultipleStatements indicates the query contains more than one statement.
var ErrMultipleStatements = errors.New("multiple SQL statements not allowed; only single statements are permitted")

// readOnlyPrefixes are the leading keywords of statements that cannot modify data.
var readOnlyPrefixes = []string{"SELECT", "WITH"}

// CheckReadOnly verifies that query is a single SELECT (optionally introduced by WITH).
// The query itself is never rewritten; callers execute exactly what they checked.
func CheckReadOnly(query string) error {
	trimmed := stripTrailingSemicolon(strings.TrimSpace(query))
	if trimmed == "" {
		return fmt.Errorf("%w: query is empty", apperrors.ErrNotReadOnly)
	}

	if hasSemicolonOutsideStrings(trimmed) {
		return ErrMultipleStatements
	}

	keyword := strings.ToUpper(firstKeyword(stripLeadingComments(trimmed)))
	for _, p := range readOnlyPrefixes {
		if keyword == p {
			return nil
		}
	}
	return fmt.Errorf("%w: statement starts with %q", apperrors.ErrNotReadOnly, keyword)
}

// hasSemicolonOutsideStrings reports whether a semicolon appears outside quoted text.
// Both backslash escapes and SQL doubled quotes keep the scanner inside a literal.
func hasSemicolonOutsideStrings(query string) bool {
	const (
		stateNormal = iota
		stateSingleQuote
		stateDoubleQuote
	)

	state := stateNormal
	prev := rune(0)

	for _, ch := range query {
		switch state {
		case stateNormal:
			switch ch {
			case ';':
				return true
			case '\'':
				state = stateSingleQuote
			case '"':
				state = stateDoubleQuote
			}
		case stateSingleQuote:
			if ch == '\'' && prev != '\\' {
				state = stateNormal
			}
		case stateDoubleQuote:
			if ch == '"' && prev != '\\' {
				state = stateNormal
			}
		}
		prev = ch
	}

	return false
}

func stripTrailingSemicolon(query string) string {
	query = strings.TrimRight(query, " \t\n\r")
	if strings.HasSuffix(query, ";") {
		query = strings.TrimRight(strings.TrimSuffix(query, ";"), " \t\n\r")
	}
	return query
}

// stripLeadingComments drops "--" line comments and "/* */" block comments before the first keyword.
func stripLeadingComments(query string) string {
	for {
		query = strings.TrimLeft(query, " \t\n\r(")
		switch {
		case strings.HasPrefix(query, "--"):
			end := strings.IndexByte(query, '\n')
			if end < 0 {
				return ""
			}
			query = query[end+1:]
		case strings.HasPrefix(query, "/*"):
			end := strings.Index(query, "*/")
			if end < 0 {
				return ""
			}
			query = query[end+2:]
		default:
			return query
		}
	}
}

func firstKeyword(query string) string {
	end := strings.IndexFunc(query, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_')
	})
	if end < 0 {
		return query
	}
	return query[:end]
}
