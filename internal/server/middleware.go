package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/atlasborder/site/internal/atlas"
	"github.com/atlasborder/site/internal/i18n"
)

type ctxKey int

const ctxKeyVisitor ctxKey = iota

const (
	visitorCookieName = "ab_visitor"
	visitorCookieAge  = 365 * 24 * 60 * 60
)

// visitorMiddleware identifies the browser by a random id cookie, issuing a
// new one when it is missing or malformed.
func visitorMiddleware(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(visitorCookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     visitorCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   visitorCookieAge,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), ctxKeyVisitor, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func visitorFrom(r *http.Request) string {
	id, _ := r.Context().Value(ctxKeyVisitor).(string)
	return id
}

// langMiddleware resolves the request language: a ?lang= query wins, then the
// visitor's stored preference, then English.
func langMiddleware(p *i18n.Provider, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var lang atlas.Lang
			if q := r.URL.Query().Get("lang"); q != "" {
				lang = atlas.ParseLang(q)
			} else {
				stored, err := p.Language(r.Context(), visitorFrom(r))
				if err != nil {
					logger.Error("resolving language", "error", err)
				}
				lang = stored
			}

			w.Header().Set("Content-Language", string(lang))
			next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
		})
	}
}

func langFrom(r *http.Request) atlas.Lang {
	return i18n.FromContext(r.Context())
}
