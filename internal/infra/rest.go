package infra

import (
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/gaibarra/motel1/internal/config"
)

// NewRESTClient builds the shared resty client for the motel backend.
//
// Retry policy: up to cfg.RetryCount extra attempts with a fixed wait,
// restricted to transport-level failures (connection refused, timeout). HTTP
// 4xx/5xx responses are application errors and are never retried.
func NewRESTClient(cfg *config.Config) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.APIBaseURL).
		SetTimeout(cfg.RequestTimeout()).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait()).
		SetRetryMaxWaitTime(cfg.RetryWait()). // fixed backoff, no growth
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil
	})

	// Per-request correlation ID for the backend logs
	client.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return client
}
