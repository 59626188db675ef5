package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const DefaultCookieName = "sid"

type ctxKey struct{}

// Middleware resolves the session from its cookie, issuing a new id when
// the cookie is missing or not a UUID, and runs next under the session lock.
func (r *Registry) Middleware(cookieName string) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			id, fresh := sessionID(req, cookieName)
			if fresh {
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Secure:   req.TLS != nil,
				})
			}

			s := r.GetOrCreate(req.Context(), id)
			s.Lock()
			defer s.Unlock()

			next.ServeHTTP(w, req.WithContext(NewContext(req.Context(), s)))
		})
	}
}

func sessionID(req *http.Request, cookieName string) (string, bool) {
	c, err := req.Cookie(cookieName)
	if err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String(), false
		}
	}
	return uuid.NewString(), true
}

func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}
