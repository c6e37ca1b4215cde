package secrets

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// maxLoggedBody caps how much of a body is copied into a log record.
const maxLoggedBody = 4096

// LoggingTransport logs each round trip at debug level with credentials
// masked. Bodies are only read when debug logging is enabled.
type LoggingTransport struct {
	detector *Detector
	logger   *slog.Logger
	next     http.RoundTripper
}

// NewLoggingTransport wraps next. A nil next uses http.DefaultTransport.
func NewLoggingTransport(detector *Detector, logger *slog.Logger, next http.RoundTripper) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	if detector == nil {
		detector = NewDetector(nil)
	}
	return &LoggingTransport{detector: detector, logger: logger, next: next}
}

// RoundTrip implements http.RoundTripper.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.logger == nil || !t.logger.Enabled(req.Context(), slog.LevelDebug) {
		return t.next.RoundTrip(req)
	}

	attrs := []any{
		"method", req.Method,
		"url", req.URL.String(),
		"headers", t.detector.MaskHeaders(req.Header),
	}
	if req.Body != nil && req.GetBody != nil {
		if body, err := req.GetBody(); err == nil {
			data, _ := io.ReadAll(io.LimitReader(body, maxLoggedBody))
			_ = body.Close()
			if masked, err := t.detector.MaskJSONBytes(data); err == nil {
				attrs = append(attrs, "body", masked)
			}
		}
	}
	t.logger.Debug("http request", attrs...)

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.logger.Debug("http request failed", "url", req.URL.String(), "error", err, "duration", time.Since(start))
		return nil, err
	}

	respAttrs := []any{
		"status", resp.StatusCode,
		"duration", time.Since(start),
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") && resp.Body != nil {
		data, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(data))
		if readErr == nil {
			if len(data) > maxLoggedBody {
				data = data[:maxLoggedBody]
			}
			if masked, err := t.detector.MaskJSONBytes(data); err == nil {
				respAttrs = append(respAttrs, "body", masked)
			}
		}
	}
	t.logger.Debug("http response", respAttrs...)

	return resp, nil
}
