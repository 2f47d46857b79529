package httpclient

import (
	"net/http"
	"time"

	"shipment-reconciler/internal/core/logger"

	"go.uber.org/zap"
)

// UserAgent is sent on every outbound request that does not set its own.
const UserAgent = "shipment-reconciler/1.0"

// LoggingRoundTripper logs outbound calls and stamps the service user agent.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	log     *zap.Logger
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}

	start := time.Now()
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
	}

	lrt.log.Debug("HTTP Request Started", fields...)

	resp, err := lrt.Proxied.RoundTrip(req)
	fields = append(fields, zap.Duration("duration", time.Since(start)))

	if err != nil {
		lrt.log.Error("HTTP Request Failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		lrt.log.Warn("HTTP Request Completed", append(fields, zap.Int("status_code", resp.StatusCode))...)
	} else {
		lrt.log.Debug("HTTP Request Completed", append(fields, zap.Int("status_code", resp.StatusCode))...)
	}

	return resp, nil
}

// NewClient returns an http.Client with logging middleware.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
			log:     logger.Named("httpclient"),
		},
		Timeout: timeout,
	}
}
