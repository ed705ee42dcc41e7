package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	sessionCookieName = "sid"
	sessionHeader     = "X-Session-ID"
)

type ctxSessionKey struct{}

// sessionMiddleware resolves the shopper's session from the X-Session-ID
// header or the sid cookie, minting a new id when neither holds a UUID. The
// id is echoed back in both.
func sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(sessionHeader)
		if id == "" {
			if c, err := r.Cookie(sessionCookieName); err == nil {
				id = c.Value
			}
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set(sessionHeader, id)

		ctx := context.WithValue(r.Context(), ctxSessionKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxSessionKey{}).(string)
	return id
}
