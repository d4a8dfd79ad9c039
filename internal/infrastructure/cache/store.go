// Package cache holds the idempotency response stores backing the
// Idempotency-Key middleware.
package cache

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ErrInFlight is returned by Begin while another request holds the key.
var ErrInFlight = errors.New("cache: idempotency key is in flight")

// StoredResponse is a captured HTTP response replayed for a repeated key.
type StoredResponse struct {
	StatusCode  int         `json:"status_code"`
	Header      http.Header `json:"header,omitempty"`
	Body        []byte      `json:"body,omitempty"`
	Fingerprint string      `json:"fingerprint,omitempty"`
}

// ResponseStore coordinates requests that share an idempotency key.
//
// Begin reserves key for ttl and returns (nil, nil) to the first caller.
// Later callers get the stored response once Complete has run, or
// ErrInFlight while the first request is still executing. Release drops a
// reservation so a failed request can be retried.
type ResponseStore interface {
	Begin(ctx context.Context, key string, ttl time.Duration) (*StoredResponse, error)
	Complete(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
	Close() error
}
