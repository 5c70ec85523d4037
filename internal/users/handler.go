package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	msgUserNotFound     = "Usuario no encontrado"
	msgUserExists       = "Ya existe un usuario con ese nombre"
	msgNameAndPassword  = "El nombre y contraseña son obligatorios"
	msgUserDeleted      = "Usuario eliminado correctamente"
	msgUsersListFailure = "Error al obtener usuarios"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersRepo interface {
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int) (*User, error)
	GetByName(ctx context.Context, nombre string) (*User, error)
	Add(ctx context.Context, nombre, passwordHash string) (*User, error)
	Update(ctx context.Context, id int, nombre, passwordHash string) (*User, error)
	Delete(ctx context.Context, id int) error
}

type Handler struct {
	repo         usersRepo
	hashPassword func(password string) (string, error)
}

func NewHandler(repo usersRepo) *Handler {
	return &Handler{
		repo:         repo,
		hashPassword: pkg.HashPassword,
	}
}

// WithPasswordHasher replaces the bcrypt hasher, tests use a cheap one.
func (h *Handler) WithPasswordHasher(hasher func(password string) (string, error)) *Handler {
	h.hashPassword = hasher
	return h
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/usuarios", h.HandleList).Methods("GET").Name("list-users")
	router.HandleFunc("/usuarios", h.HandleCreate).Methods("POST").Name("new-user")
	router.HandleFunc("/usuarios/{id}", h.HandleGet).Methods("GET").Name("get-user")
	router.HandleFunc("/usuarios/{id}", h.HandleUpdate).Methods("PUT").Name("update-user")
	router.HandleFunc("/usuarios/{id}", h.HandleDelete).Methods("DELETE").Name("delete-user")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.list")
	defer span.End()

	users, err := h.repo.List(ctx)
	if err != nil {
		log.Errorf("%s: %s", msgUsersListFailure, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, users)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.get")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	user, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			pkg.WriteJSONError(w, msgUserNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("get user %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, user)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.new")
	defer span.End()

	var req userRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Tracef("new user: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" || req.Password == "" {
		pkg.WriteJSONError(w, msgNameAndPassword, http.StatusBadRequest)
		return
	}

	// friendly check first, the unique constraint still has the last word
	if _, err := h.repo.GetByName(ctx, req.Nombre); err == nil {
		pkg.WriteJSONError(w, msgUserExists, http.StatusConflict)
		return
	} else if !errors.Is(err, ErrUserNotFound) {
		log.Errorf("new user, check name: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	passwordHash, err := h.hashPassword(req.Password)
	if err != nil {
		log.Errorf("new user, hash password: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	user, err := h.repo.Add(ctx, req.Nombre, passwordHash)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			pkg.WriteJSONError(w, msgUserExists, http.StatusConflict)
			return
		}
		log.Errorf("new user: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	log.Debugf("new user added: %d", user.ID)
	pkg.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.update")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	var req userRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Tracef("update user: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" || req.Password == "" {
		pkg.WriteJSONError(w, msgNameAndPassword, http.StatusBadRequest)
		return
	}

	if existing, err := h.repo.GetByName(ctx, req.Nombre); err == nil {
		if existing.ID != id {
			pkg.WriteJSONError(w, msgUserExists, http.StatusConflict)
			return
		}
	} else if !errors.Is(err, ErrUserNotFound) {
		log.Errorf("update user, check name: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	passwordHash, err := h.hashPassword(req.Password)
	if err != nil {
		log.Errorf("update user, hash password: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	user, err := h.repo.Update(ctx, id, req.Nombre, passwordHash)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			pkg.WriteJSONError(w, msgUserNotFound, http.StatusNotFound)
		case errors.Is(err, ErrUserExists):
			pkg.WriteJSONError(w, msgUserExists, http.StatusConflict)
		default:
			log.Errorf("update user %d: %s", id, err)
			pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSONOK(w, user)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.delete")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			pkg.WriteJSONError(w, msgUserNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("delete user %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	log.Debugf("user deleted: %d", id)
	pkg.WriteJSONMessage(w, msgUserDeleted)
}
