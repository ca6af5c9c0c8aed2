package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/infrastructure/logger"
	"github.com/erp/stockledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxIdempotencyKeyLength bounds the Idempotency-Key header
const MaxIdempotencyKeyLength = 200

// Idempotency rejects a mutating request whose Idempotency-Key was already
// seen within ttl. The key is claimed before the handler runs and released
// again when the handler answers 5xx or panics, so storage failures can be
// retried under the same key. 4xx answers keep the key. Reads and requests
// without the header pass through.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || !isMutating(c.Request.Method) {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail(dto.ErrCodeBadRequest, "Idempotency-Key is too long").
				WithRequest(GetRequestID(c), ""))
			return
		}

		// Scoped by route so one key cannot collide across endpoints
		scoped := c.Request.Method + " " + c.Request.URL.Path + " " + key
		first, err := store.MarkProcessed(c.Request.Context(), scoped, ttl)
		if err != nil {
			logger.L(c.Request.Context()).Error("Idempotency store unavailable", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail(dto.ErrCodeInternal, "Idempotency check failed").
				WithRequest(GetRequestID(c), ""))
			return
		}
		if !first {
			c.Set(ErrorCodeKey, dto.ErrCodeDuplicateRequest)
			c.AbortWithStatusJSON(http.StatusConflict, dto.Fail(dto.ErrCodeDuplicateRequest, "A request with this Idempotency-Key was already processed").
				WithRequest(GetRequestID(c), "").
				WithDetails(map[string]any{"idempotency_key": key}))
			return
		}

		defer func() {
			if r := recover(); r != nil {
				release(c, store, scoped)
				panic(r)
			}
			if c.Writer.Status() >= http.StatusInternalServerError {
				release(c, store, scoped)
			}
		}()
		c.Next()
	}
}

// release forgets a claimed key. It outlives a cancelled request context.
func release(c *gin.Context, store shared.IdempotencyStore, scoped string) {
	ctx := context.WithoutCancel(c.Request.Context())
	if err := store.Forget(ctx, scoped); err != nil {
		logger.L(ctx).Warn("Failed to release idempotency key", zap.String("key", scoped), zap.Error(err))
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
