package secrets

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// CommandLineMask replaces secret flag values in recorded command lines.
const CommandLineMask = "********"

var (
	// secretFlagPattern matches "--password value", "--password=value" and
	// quoted values for every secret flag name.
	secretFlagPattern = regexp.MustCompile(`(--(?:password|token|secret)(?:=|\s+))("[^"]*"|\S+)`)

	// jwtPattern matches a compact JWS.
	jwtPattern = regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)

	defaultFields  = []string{"password", "token", "secret", "authorization"}
	defaultHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}
)

// MaskCommandLine hides secret flag values in a raw terminal line.
func MaskCommandLine(raw string) string {
	return secretFlagPattern.ReplaceAllStringFunc(raw, func(m string) string {
		sub := secretFlagPattern.FindStringSubmatch(m)
		if strings.HasPrefix(sub[2], "--") {
			// "--password --next" carries no value.
			return m
		}
		return sub[1] + CommandLineMask
	})
}

// Detector finds and masks secrets in structured and free text.
type Detector struct {
	strategy MaskStrategy
	fields   []string
	headers  map[string]bool
}

// NewDetector creates a detector using strategy. A nil strategy masks
// partially.
func NewDetector(strategy MaskStrategy) *Detector {
	if strategy == nil {
		strategy = StrategyByName("partial")
	}
	headers := make(map[string]bool, len(defaultHeaders))
	for _, h := range defaultHeaders {
		headers[strings.ToLower(h)] = true
	}
	return &Detector{
		strategy: strategy,
		fields:   defaultFields,
		headers:  headers,
	}
}

// IsSecretField reports whether a JSON field name looks sensitive.
func (d *Detector) IsSecretField(name string) bool {
	lower := strings.ToLower(name)
	for _, f := range d.fields {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}

// IsSecretHeader reports whether an HTTP header carries credentials.
func (d *Detector) IsSecretHeader(name string) bool {
	return d.headers[strings.ToLower(name)]
}

// MaskString masks JWTs and secret flags in free text.
func (d *Detector) MaskString(text string) string {
	text = MaskCommandLine(text)
	return jwtPattern.ReplaceAllStringFunc(text, d.strategy.Mask)
}

// MaskHeaders returns a copy of headers with credential values masked.
func (d *Detector) MaskHeaders(headers map[string][]string) map[string][]string {
	out := make(map[string][]string, len(headers))
	for k, values := range headers {
		if !d.IsSecretHeader(k) {
			out[k] = values
			continue
		}
		masked := make([]string, len(values))
		for i, v := range values {
			masked[i] = d.strategy.Mask(v)
		}
		out[k] = masked
	}
	return out
}

// MaskJSON walks decoded JSON and masks values under secret field names.
func (d *Detector) MaskJSON(data any) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			if s, ok := val.(string); ok && d.IsSecretField(key) {
				out[key] = d.strategy.Mask(s)
				continue
			}
			out[key] = d.MaskJSON(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = d.MaskJSON(val)
		}
		return out
	case string:
		return jwtPattern.ReplaceAllStringFunc(v, d.strategy.Mask)
	default:
		return v
	}
}

// MaskJSONBytes masks a JSON document. Invalid JSON is masked as text.
func (d *Detector) MaskJSONBytes(body []byte) (string, error) {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return d.MaskString(string(body)), nil
	}
	masked, err := json.Marshal(d.MaskJSON(data))
	if err != nil {
		return "", fmt.Errorf("failed to marshal masked JSON: %w", err)
	}
	return string(masked), nil
}
