package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/rutinas/internal/auth"
	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=session_mocks_test.go -package=middleware

type sessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

type SessionMiddlewareHandler struct {
	sessions        sessionAuthenticator
	required        bool
	publicPrefixes  []string
	alwaysProtected []string
}

// NewSessionMiddlewareHandler guards writes and the users resource with the session cookie.
// With required=false every request passes, which is how local development runs.
func NewSessionMiddlewareHandler(sessions sessionAuthenticator, required bool) *SessionMiddlewareHandler {
	return &SessionMiddlewareHandler{
		sessions: sessions,
		required: required,
		publicPrefixes: []string{
			"/api/auth/",
		},
		alwaysProtected: []string{
			"/api/usuarios",
		},
	}
}

func (h *SessionMiddlewareHandler) needsSession(r *http.Request) bool {
	for _, prefix := range h.publicPrefixes {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	for _, prefix := range h.alwaysProtected {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return true
		}
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

func (h *SessionMiddlewareHandler) RequireSession() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !h.required || !h.needsSession(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.session")
			defer span.End()

			cookie, err := r.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				log.Tracef("[missing token] [session middleware] unauthorized => %s %s", r.Method, r.URL.Path)
				span.SetStatus(codes.Error, "missing-token")
				pkg.WriteJSONError(w, pkg.MsgUnauthorized, http.StatusUnauthorized)
				return
			}

			claims, err := h.sessions.Authenticate(ctx, cookie.Value)
			if err != nil {
				span.RecordError(err)
				if errors.Is(err, auth.ErrMissingSecret) {
					log.Errorln("session middleware: JWT_SECRET not set")
					span.SetStatus(codes.Error, "missing-secret")
					pkg.WriteJSONError(w, pkg.MsgInvalidConfig, http.StatusInternalServerError)
					return
				}
				log.Tracef("[invalid token] [session middleware] unauthorized => %s: %s", r.URL.Path, err)
				span.SetStatus(codes.Error, "invalid-session")
				pkg.WriteJSONError(w, pkg.MsgUnauthorized, http.StatusUnauthorized)
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
		})
	}
}
