package logging

import (
	"regexp"
)

const (
	// MaxQueryLogLength is the maximum length of a query to log
	MaxQueryLogLength = 200
	// RedactedText is the replacement text for sensitive data
	RedactedText = "[REDACTED]"
)

type redaction struct {
	pattern     *regexp.Regexp
	replacement string
}

var (
	// password=xxx, pwd=xxx, pass=xxx up to the next delimiter
	passwordRedaction = redaction{regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`), "${1}=" + RedactedText}

	// user:pass@host
	credentialsRedaction = redaction{regexp.MustCompile(`://[^:/\s]+:[^@\s]+@`), "://" + RedactedText + "@"}

	// api_key=..., key=...
	apiKeyRedaction = redaction{regexp.MustCompile(`(?i)(api[_-]?key|apikey|key)=[A-Za-z0-9-_]{20,}`), "${1}=" + RedactedText}

	// provider keys such as sk-... and sk-ant-...
	providerKeyRedaction = redaction{regexp.MustCompile(`\bsk-[A-Za-z0-9-_]{16,}`), RedactedText}

	bearerRedaction = redaction{regexp.MustCompile(`Bearer\s+[A-Za-z0-9-_.]+`), "Bearer " + RedactedText}
)

func apply(s string, redactions ...redaction) string {
	for _, r := range redactions {
		s = r.pattern.ReplaceAllString(s, r.replacement)
	}
	return s
}

// SanitizeConnectionString removes credentials from a DSN or connection URL.
func SanitizeConnectionString(connStr string) string {
	if connStr == "" {
		return ""
	}
	return apply(connStr, passwordRedaction, credentialsRedaction)
}

// SanitizeError removes credentials and keys from a store or model error message.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return apply(err.Error(), passwordRedaction, bearerRedaction, apiKeyRedaction, providerKeyRedaction, credentialsRedaction)
}

// SanitizeQuery truncates a SQL query for logging and removes credential-like literals.
func SanitizeQuery(query string) string {
	if query == "" {
		return ""
	}
	return apply(TruncateString(query, MaxQueryLogLength), passwordRedaction, apiKeyRedaction)
}

// TruncateString truncates a string to maxLen and adds ellipsis if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
