package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/osse101/MineIdler_Go/internal/logger"
)

type playerIDKey struct{}

// WithPlayerID stores the player id in the context
func WithPlayerID(ctx context.Context, playerID int64) context.Context {
	return context.WithValue(ctx, playerIDKey{}, playerID)
}

// PlayerIDFromContext returns the player id set by Identity
func PlayerIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(playerIDKey{}).(int64)
	return id, ok
}

// Identity requires a positive X-Player-ID header and puts the id in the
// request context. Authentication happens upstream.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderPlayerID)
		if raw == "" {
			http.Error(w, ErrMsgMissingPlayerID, http.StatusUnauthorized)
			return
		}

		playerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || playerID <= 0 {
			logger.FromContext(r.Context()).Warn(LogMsgInvalidPlayerID, "value", raw)
			http.Error(w, ErrMsgInvalidPlayerID, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPlayerID(r.Context(), playerID)))
	})
}
