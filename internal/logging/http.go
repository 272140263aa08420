package logging

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

// headers whose values must never reach the log
var redactedHeaders = map[string]bool{
	"X-Goog-Api-Key": true,
	"Authorization":  true,
}

const maxLoggedBody = 4096

// LoggingRoundTripper logs HTTP requests and responses at debug level.
// API credentials are redacted. Bodies are logged only when logBody is set,
// truncated to maxLoggedBody bytes.
type LoggingRoundTripper struct {
	inner   http.RoundTripper
	logger  *Logger
	logBody bool
}

// NewLoggingRoundTripper wraps a transport with debug logging
func NewLoggingRoundTripper(inner http.RoundTripper, logger *Logger, logBody bool) *LoggingRoundTripper {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return &LoggingRoundTripper{inner: inner, logger: logger, logBody: logBody}
}

// RoundTrip implements http.RoundTripper
func (rt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	fields := Fields{
		"method":  req.Method,
		"url":     req.URL.Redacted(),
		"headers": sanitizeHeaders(req.Header),
	}
	if rt.logBody && req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err == nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
			fields["body"] = truncate(body)
		}
	}
	rt.logger.Debug("http request", fields)

	start := time.Now()
	resp, err := rt.inner.RoundTrip(req)
	if err != nil {
		rt.logger.Error("http transport failure", err, Fields{"url": req.URL.Redacted()})
		return nil, err
	}

	respFields := Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}
	if rt.logBody && resp.Body != nil {
		body, rerr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if rerr == nil {
			resp.Body = io.NopCloser(bytes.NewReader(body))
			respFields["body"] = truncate(body)
		}
	}
	rt.logger.Debug("http response", respFields)

	return resp, nil
}

func sanitizeHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		if redactedHeaders[http.CanonicalHeaderKey(k)] {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = h.Get(k)
	}
	return out
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}
