package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ecommerce/backend/internal/infrastructure/cache"
	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderIdempotentReplay is set to "true" on responses served from the store.
const HeaderIdempotentReplay = "Idempotent-Replayed"

const (
	maxIdempotencyKeyLength = 255
	defaultIdempotencyTTL   = 24 * time.Hour
	defaultIdempotencyLock  = time.Minute
)

// replayedHeaders are the response headers kept with a stored response.
var replayedHeaders = []string{"Content-Type", "Location"}

// IdempotencyConfig configures the Idempotency-Key middleware
type IdempotencyConfig struct {
	Enabled bool
	Store   cache.ResponseStore
	TTL     time.Duration // how long a completed response is replayed
	LockTTL time.Duration // how long an unfinished request holds its key
	Logger  *zap.Logger
}

// Idempotency replays the stored response for a POST repeated with the same
// Idempotency-Key, path and body. A concurrent duplicate gets 409; the same
// key with a different body gets 422. Responses with a 5xx status are not
// stored, and neither is a request whose handler panicked, so the client may
// retry with the same key. A request that never finishes holds its key for
// LockTTL only.
//
// Store errors fail open: the request runs without idempotency protection.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Store == nil {
		return passThrough
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultIdempotencyTTL
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = defaultIdempotencyLock
	}
	if cfg.LockTTL > cfg.TTL {
		cfg.LockTTL = cfg.TTL
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if c.Request.Method != http.MethodPost || key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest, "Idempotency-Key must be at most 255 characters", GetRequestID(c)))
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			status, resp := BindingError(err, GetRequestID(c))
			c.AbortWithStatusJSON(status, resp)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		storeKey := c.Request.URL.Path + "|" + key
		fingerprint := requestFingerprint(c.Request.Method, c.Request.URL.Path, body)

		stored, err := cfg.Store.Begin(ctx, storeKey, cfg.LockTTL)
		switch {
		case errors.Is(err, cache.ErrInFlight):
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeIdempotencyInFlight, "A request with this Idempotency-Key is still being processed", GetRequestID(c)))
			return
		case err != nil:
			log.Warn("Idempotency store unavailable, processing request without replay protection",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.Next()
			return
		case stored != nil:
			if stored.Fingerprint != fingerprint {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeIdempotencyMismatch, "Idempotency-Key was already used with a different request", GetRequestID(c)))
				return
			}
			replay(c, stored)
			return
		}

		// The request context may already be cancelled by the time the
		// handler returns (timeout, client gone); the store calls must still land.
		storeCtx := context.WithoutCancel(ctx)
		release := func() {
			if err := cfg.Store.Release(storeCtx, storeKey); err != nil {
				log.Warn("Failed to release idempotency key", zap.String("path", c.Request.URL.Path), zap.Error(err))
			}
		}

		w := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = w

		finished := false
		defer func() {
			if !finished {
				// panicking: free the key, the panic keeps unwinding to Recovery
				release()
			}
		}()
		c.Next()
		finished = true

		status := w.Status()
		if status >= http.StatusInternalServerError {
			release()
			return
		}

		resp := cache.StoredResponse{
			StatusCode:  status,
			Header:      http.Header{},
			Body:        w.body.Bytes(),
			Fingerprint: fingerprint,
		}
		for _, h := range replayedHeaders {
			if v := w.Header().Get(h); v != "" {
				resp.Header.Set(h, v)
			}
		}
		if err := cfg.Store.Complete(storeCtx, storeKey, resp, cfg.TTL); err != nil {
			log.Warn("Failed to store idempotent response", zap.Error(err))
		}
	}
}

func replay(c *gin.Context, stored *cache.StoredResponse) {
	h := c.Writer.Header()
	for name, values := range stored.Header {
		for _, v := range values {
			h.Add(name, v)
		}
	}
	h.Set(HeaderIdempotentReplay, "true")
	c.Writer.WriteHeader(stored.StatusCode)
	if len(stored.Body) > 0 {
		_, _ = c.Writer.Write(stored.Body)
	}
	c.Abort()
}

func requestFingerprint(method, path string, body []byte) string {
	sum := sha256.New()
	sum.Write([]byte(method))
	sum.Write([]byte{0})
	sum.Write([]byte(path))
	sum.Write([]byte{0})
	sum.Write(body)
	return hex.EncodeToString(sum.Sum(nil))
}

// bodyCaptureWriter copies the response body while writing it through.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
