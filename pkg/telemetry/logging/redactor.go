package logging

import (
	"log/slog"
	"regexp"
	"strings"
)

// Redacted replaces the value of a sensitive attribute.
const Redacted = "***"

// Redactor scrubs credentials from log attributes.
type Redactor struct {
	patterns []*redactPattern
}

type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternBearerToken = "bearer_token"
	PatternClientID    = "client_id"
	PatternGitHubToken = "github_token"
	PatternVercelToken = "vercel_token"
	PatternQueryToken  = "query_token"
)

var sensitiveKeys = []string{
	"password", "passwd", "secret",
	"token", "api_key", "apikey", "api-key",
	"authorization", "access_key", "access-key",
	"x-honeycomb-team",
}

// NewRedactor creates a Redactor with the built-in patterns.
func NewRedactor() *Redactor {
	r := &Redactor{}
	r.add(PatternBearerToken, `(?i)Bearer\s+[a-zA-Z0-9\-._~+/]+=*`, "Bearer "+Redacted)
	r.add(PatternClientID, `(?i)Client-ID\s+[a-zA-Z0-9\-._~+/]+=*`, "Client-ID "+Redacted)
	r.add(PatternGitHubToken, `\b(gh[pousr]_[A-Za-z0-9]{20,}|github_pat_[A-Za-z0-9_]{20,})\b`, Redacted)
	r.add(PatternVercelToken, `\b(vercel_[A-Za-z0-9]{16,})\b`, Redacted)
	r.add(PatternQueryToken, `(?i)((?:access_token|client_id|api_key)=)[^&\s]+`, "${1}"+Redacted)
	return r
}

func (r *Redactor) add(name, pattern, replacement string) {
	r.patterns = append(r.patterns, &redactPattern{
		name:        name,
		regex:       regexp.MustCompile(pattern),
		replacement: replacement,
	})
}

// RedactString scrubs credential patterns from a string.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// IsSensitiveKey reports whether an attribute key names a credential.
func (r *Redactor) IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// RedactAttr returns a scrubbed copy of the attribute. Groups are walked
// recursively.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		redacted := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			redacted[i] = r.RedactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(redacted...)}
	}

	if r.IsSensitiveKey(a.Key) {
		return slog.String(a.Key, Redacted)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, r.RedactString(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok && err != nil {
			return slog.String(a.Key, r.RedactString(err.Error()))
		}
	}
	return a
}
