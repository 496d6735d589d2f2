package llm

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LoggingTransport is a debug RoundTripper that logs every request and
// response the client puts on the wire, showing exactly how the API
// calls are constructed. Authorization values are masked. Bodies are
// buffered in full, so keep it out of latency-sensitive paths.
type LoggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func NewLoggingTransport(base http.RoundTripper, logger *slog.Logger) *LoggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingTransport{base: base, logger: logger}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()

	var reqBody []byte
	if req.Body != nil {
		var err error
		reqBody, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}

	t.logger.Info("llm request",
		slog.String("request_id", requestID),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Any("headers", maskHeaders(req.Header)),
		slog.String("body", compactJSON(reqBody)),
	)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Error("llm request failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(respBody))

	t.logger.Info("llm response",
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.Any("headers", maskHeaders(resp.Header)),
		slog.String("body", compactJSON(respBody)),
	)

	return resp, nil
}

func maskHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if strings.EqualFold(name, "Authorization") {
			out[name] = "Bearer ***masked***"
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

// compactJSON normalizes a JSON body for logging; non-JSON payloads
// are passed through as-is.
func compactJSON(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return string(body)
	}
	return buf.String()
}
