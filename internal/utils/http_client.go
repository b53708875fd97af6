package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around resty.Client preconfigured for JSON APIs.
// It embeds *resty.Client so every resty method is available directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient that sends requests to baseURL and
// aborts each of them after timeout. A zero timeout disables the limit.
//
// Each call returns an independent client with its own connection pool.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
