package sql

import (
	libinjection "github.com/corazawaf/libinjection-go"
)

// InjectionCheckResult describes SQL injection patterns found in user-supplied text.
type InjectionCheckResult struct {
	IsSQLi      bool
	Fingerprint string // libinjection fingerprint of the detected pattern
	Field       string
	Value       string
}

// CheckText runs libinjection over user-supplied text such as a question.
// Returns nil when no injection pattern is detected.
//
// Questions are never spliced into SQL, so a hit is an audit signal rather than a rejection.
func CheckText(field, value string) *InjectionCheckResult {
	if value == "" {
		return nil
	}

	isSQLi, fingerprint := libinjection.IsSQLi(value)
	if !isSQLi {
		return nil
	}
	return &InjectionCheckResult{
		IsSQLi:      true,
		Fingerprint: string(fingerprint),
		Field:       field,
		Value:       value,
	}
}
