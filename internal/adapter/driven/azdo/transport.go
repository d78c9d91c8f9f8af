package azdo

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryTransport retries transient failures (network errors and 5xx
// responses) with exponential backoff. Requests whose bodies cannot be
// replayed are attempted exactly once.
type retryTransport struct {
	base       http.RoundTripper
	maxElapsed time.Duration
}

// NewRetryTransport wraps base with exponential-backoff retries bounded by
// maxElapsed.
func NewRetryTransport(base http.RoundTripper, maxElapsed time.Duration) http.RoundTripper {
	return &retryTransport{base: base, maxElapsed: maxElapsed}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil && req.GetBody == nil {
		return t.base.RoundTrip(req)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = t.maxElapsed

	var resp *http.Response
	err := backoff.Retry(func() error {
		attempt := req.Clone(req.Context())
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return backoff.Permanent(err)
			}
			attempt.Body = body
		}

		r, err := t.base.RoundTrip(attempt)
		if err != nil {
			return err // Retryable: network-level failure.
		}
		if r.StatusCode >= 500 {
			r.Body.Close()
			return fmt.Errorf("server error: status %d", r.StatusCode)
		}

		resp = r
		return nil
	}, backoff.WithContext(bo, req.Context()))
	if err != nil {
		return nil, err
	}

	return resp, nil
}
