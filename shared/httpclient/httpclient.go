package httpclient

import (
	"net/http"
	"time"

	"github.com/itchan-dev/tgchan/shared/logger"
	"github.com/itchan-dev/tgchan/shared/trace"
)

// loggingRoundTripper logs every outbound request and forwards the
// inbound request id so upstream calls can be matched to API calls.
type loggingRoundTripper struct {
	inner http.RoundTripper
}

func (l *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := trace.RequestIDFromContext(req.Context())
	if requestID != "" && req.Header.Get(trace.HeaderRequestID) == "" {
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set(trace.HeaderRequestID, requestID)
	}

	resp, err := l.inner.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		logger.Log.Debug("outbound request failed",
			"component", "httpclient",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"duration", duration.String(),
			"request_id", requestID,
			"error", err)
		return nil, err
	}

	logger.Log.Debug("outbound request",
		"component", "httpclient",
		"method", req.Method,
		"url", req.URL.Redacted(),
		"status", resp.StatusCode,
		"duration", duration.String(),
		"request_id", requestID)
	return resp, nil
}

// New returns a client with request logging. Timeouts are enforced per
// attempt by the caller's context, so the client itself has none.
func New() *http.Client {
	return NewWithTransport(http.DefaultTransport)
}

func NewWithTransport(inner http.RoundTripper) *http.Client {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return &http.Client{
		Transport: &loggingRoundTripper{inner: inner},
	}
}
