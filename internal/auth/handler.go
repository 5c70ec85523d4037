package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/rutinas/internal/telemetry/metrics"
	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/internal/users"
	"github.com/2beens/rutinas/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	msgWrongCredentials = "Credenciales incorrectas"
	msgNameAndPassword  = "El nombre y contraseña son obligatorios"
	msgSessionClosed    = "Sesión cerrada"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=auth_test

type sessionService interface {
	Login(userID int, nombre string) (string, time.Time, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*Claims, error)
}

type usersRepo interface {
	Get(ctx context.Context, id int) (*users.User, error)
	GetByName(ctx context.Context, nombre string) (*users.User, error)
}

type loginRequest struct {
	Nombre   string `json:"nombre"`
	Password string `json:"password"`
}

type MeResponse struct {
	Authenticated bool        `json:"authenticated"`
	Usuario       *users.User `json:"usuario,omitempty"`
}

type Handler struct {
	sessions       sessionService
	users          usersRepo
	metricsManager *metrics.Manager
	secureCookie   bool
}

func NewHandler(
	sessions sessionService,
	usersRepo usersRepo,
	metricsManager *metrics.Manager,
	secureCookie bool,
) *Handler {
	return &Handler{
		sessions:       sessions,
		users:          usersRepo,
		metricsManager: metricsManager,
		secureCookie:   secureCookie,
	}
}

// SetupRoutes registers /auth routes. Extra middleware (rate limiting) applies to login only.
func (h *Handler) SetupRoutes(router *mux.Router, loginMiddleware ...mux.MiddlewareFunc) {
	loginRouter := router.Path("/auth/login").Subrouter()
	loginRouter.Methods("POST").HandlerFunc(h.HandleLogin).Name("login")
	loginRouter.Methods("DELETE").HandlerFunc(h.HandleLogout).Name("logout")
	loginRouter.Use(loginMiddleware...)

	router.HandleFunc("/auth/me", h.HandleMe).Methods("GET").Name("me")
}

func (h *Handler) countLogin(outcome string) {
	if h.metricsManager != nil {
		h.metricsManager.CounterLogins.WithLabelValues(outcome).Inc()
	}
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.login")
	defer span.End()

	var req loginRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Tracef("login: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" || req.Password == "" {
		pkg.WriteJSONError(w, msgNameAndPassword, http.StatusBadRequest)
		return
	}

	user, err := h.users.GetByName(ctx, req.Nombre)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			log.Tracef("[username] failed login attempt for user: %s", req.Nombre)
			h.countLogin(metrics.LoginOutcomeBadCreds)
			pkg.WriteJSONError(w, msgWrongCredentials, http.StatusUnauthorized)
			return
		}
		log.Errorf("login, get user: %s", err)
		h.countLogin(metrics.LoginOutcomeError)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Tracef("[password] failed login attempt for user: %s", req.Nombre)
		h.countLogin(metrics.LoginOutcomeBadCreds)
		pkg.WriteJSONError(w, msgWrongCredentials, http.StatusUnauthorized)
		return
	}

	token, expiresAt, err := h.sessions.Login(user.ID, user.Nombre)
	if err != nil {
		h.countLogin(metrics.LoginOutcomeError)
		if errors.Is(err, ErrMissingSecret) {
			log.Errorln("login: JWT_SECRET not set")
			pkg.WriteJSONError(w, pkg.MsgInvalidConfig, http.StatusInternalServerError)
			return
		}
		log.Errorf("login, issue token: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	http.SetCookie(w, h.sessionCookie(token, expiresAt))
	h.countLogin(metrics.LoginOutcomeSuccess)

	log.Debugf("new login success: %d", user.ID)
	pkg.WriteJSONOK(w, user)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Logout(ctx, cookie.Value); err != nil {
			// the cookie is cleared anyway
			log.Errorf("logout, revoke session: %s", err)
		}
	}

	http.SetCookie(w, h.clearedCookie())
	pkg.WriteJSONMessage(w, msgSessionClosed)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.me")
	defer span.End()

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		pkg.WriteJSON(w, MeResponse{Authenticated: false}, http.StatusUnauthorized)
		return
	}

	claims, err := h.sessions.Authenticate(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, ErrMissingSecret) {
			log.Errorln("me: JWT_SECRET not set")
			pkg.WriteJSONError(w, pkg.MsgInvalidConfig, http.StatusInternalServerError)
			return
		}
		log.Tracef("me, invalid session: %s", err)
		pkg.WriteJSON(w, MeResponse{Authenticated: false}, http.StatusUnauthorized)
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		pkg.WriteJSON(w, MeResponse{Authenticated: false}, http.StatusUnauthorized)
		return
	}

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, users.ErrUserNotFound) {
			log.Errorf("me, get user %d: %s", userID, err)
		}
		pkg.WriteJSON(w, MeResponse{Authenticated: false}, http.StatusUnauthorized)
		return
	}

	pkg.WriteJSONOK(w, MeResponse{
		Authenticated: true,
		Usuario:       user,
	})
}

func (h *Handler) sessionCookie(token string, expiresAt time.Time) *http.Cookie {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int(SessionTTL.Seconds())
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *Handler) clearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
