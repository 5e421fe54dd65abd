package logger

import (
	"log/slog"
	"strings"
)

// Sensitive key patterns that should be redacted.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"credential",
	"auth",
	"bearer",
}

// valueKeys name attributes that carry stored data. They are redacted
// unless the logger was configured with LogValues.
var valueKeys = []string{
	"value",
	"payload",
}

// redactedValue is the placeholder for redacted data.
const redactedValue = "***REDACTED***"

type redactor struct {
	logValues bool
}

// redact replaces the value of a sensitive attribute, descending into groups.
func (r redactor) redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = r.redact(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	if a.Value.Kind() != slog.KindString || a.Value.String() == "" {
		return a
	}

	if IsSensitiveKey(a.Key) || (!r.logValues && isValueKey(a.Key)) {
		return slog.String(a.Key, redactedValue)
	}
	return a
}

// IsSensitiveKey checks if a key name suggests secret content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}

func isValueKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, k := range valueKeys {
		if keyLower == k {
			return true
		}
	}
	return false
}
