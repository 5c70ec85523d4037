package musclegroups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/rutinas/internal/gym"
	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	msgNotFound     = "Grupo muscular no encontrado"
	msgExists       = "Ya existe un grupo muscular con ese nombre"
	msgNameRequired = "El nombre es obligatorio"
	msgInUse        = "No se puede eliminar el grupo muscular porque tiene ejercicios asociados"
	msgDeleted      = "Grupo muscular eliminado correctamente"
)

//go:generate mockgen -source=$GOFILE -destination=musclegroups_mocks_test.go -package=musclegroups_test

type muscleGroupsRepo interface {
	List(ctx context.Context) ([]gym.MuscleGroup, error)
	Get(ctx context.Context, id int) (*gym.MuscleGroup, error)
	GetByName(ctx context.Context, nombre string) (*gym.MuscleGroup, error)
	Add(ctx context.Context, nombre string) (*gym.MuscleGroup, error)
	Update(ctx context.Context, id int, nombre string) (*gym.MuscleGroup, error)
	Delete(ctx context.Context, id int) error
}

type muscleGroupRequest struct {
	Nombre string `json:"nombre"`
}

// todayCache drops cached routines, which inline catalog names.
type todayCache interface {
	InvalidateToday()
}

type Handler struct {
	repo  muscleGroupsRepo
	cache todayCache
}

func NewHandler(repo muscleGroupsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (h *Handler) WithTodayCache(cache todayCache) *Handler {
	h.cache = cache
	return h
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/grupos-musculares", h.HandleList).Methods("GET").Name("list-muscle-groups")
	router.HandleFunc("/grupos-musculares", h.HandleCreate).Methods("POST").Name("new-muscle-group")
	router.HandleFunc("/grupos-musculares/{id}", h.HandleGet).Methods("GET").Name("get-muscle-group")
	router.HandleFunc("/grupos-musculares/{id}", h.HandleUpdate).Methods("PUT").Name("update-muscle-group")
	router.HandleFunc("/grupos-musculares/{id}", h.HandleDelete).Methods("DELETE").Name("delete-muscle-group")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.musclegroups.list")
	defer span.End()

	groups, err := h.repo.List(ctx)
	if err != nil {
		log.Errorf("list muscle groups: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, groups)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.musclegroups.get")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	group, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrMuscleGroupNotFound) {
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("get muscle group %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, group)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.musclegroups.new")
	defer span.End()

	nombre, ok := decodeName(w, r)
	if !ok {
		return
	}

	if taken, err := h.nameTaken(ctx, nombre, 0); err != nil {
		log.Errorf("new muscle group, check name: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	} else if taken {
		pkg.WriteJSONError(w, msgExists, http.StatusConflict)
		return
	}

	group, err := h.repo.Add(ctx, nombre)
	if err != nil {
		if errors.Is(err, ErrMuscleGroupExists) {
			pkg.WriteJSONError(w, msgExists, http.StatusConflict)
			return
		}
		log.Errorf("new muscle group: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	log.Debugf("new muscle group added: %d [%s]", group.ID, group.Nombre)
	pkg.WriteJSON(w, group, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.musclegroups.update")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	nombre, ok := decodeName(w, r)
	if !ok {
		return
	}

	if taken, err := h.nameTaken(ctx, nombre, id); err != nil {
		log.Errorf("update muscle group, check name: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	} else if taken {
		pkg.WriteJSONError(w, msgExists, http.StatusConflict)
		return
	}

	group, err := h.repo.Update(ctx, id, nombre)
	if err != nil {
		switch {
		case errors.Is(err, ErrMuscleGroupNotFound):
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
		case errors.Is(err, ErrMuscleGroupExists):
			pkg.WriteJSONError(w, msgExists, http.StatusConflict)
		default:
			log.Errorf("update muscle group %d: %s", id, err)
			pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		}
		return
	}

	h.invalidate()

	pkg.WriteJSONOK(w, group)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.musclegroups.delete")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, ErrMuscleGroupNotFound):
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
		case errors.Is(err, ErrMuscleGroupInUse):
			pkg.WriteJSONError(w, msgInUse, http.StatusConflict)
		default:
			log.Errorf("delete muscle group %d: %s", id, err)
			pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		}
		return
	}

	log.Debugf("muscle group deleted: %d", id)
	pkg.WriteJSONMessage(w, msgDeleted)
}

// nameTaken is the friendly duplicate check, the unique constraint still has the last word.
// exceptID lets an update keep its own name.
func (h *Handler) nameTaken(ctx context.Context, nombre string, exceptID int) (bool, error) {
	existing, err := h.repo.GetByName(ctx, nombre)
	if err != nil {
		if errors.Is(err, ErrMuscleGroupNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != exceptID, nil
}

func decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req muscleGroupRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Tracef("muscle group request: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInvalidJSON, http.StatusBadRequest)
		return "", false
	}

	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		pkg.WriteJSONError(w, msgNameRequired, http.StatusBadRequest)
		return "", false
	}

	return nombre, true
}

func (h *Handler) invalidate() {
	if h.cache != nil {
		h.cache.InvalidateToday()
	}
}
