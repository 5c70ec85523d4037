package exercises

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
	"go.opentelemetry.io/otel/attribute"
)

const (
	msgNotFound            = "Ejercicio no encontrado"
	msgMuscleGroupNotFound = "Grupo muscular no encontrado"
	msgRequiredFields      = "El nombre y grupo muscular son obligatorios"
	msgInUse               = "No se puede eliminar el ejercicio porque está asignado a rutinas"
	msgDeleted             = "Ejercicio eliminado correctamente"
)

//go:generate mockgen -source=$GOFILE -destination=exercises_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	List(ctx context.Context) ([]gym.Exercise, error)
	Get(ctx context.Context, id int) (*gym.Exercise, error)
	MuscleGroupExists(ctx context.Context, grupoMuscularID int) (bool, error)
	Add(ctx context.Context, e gym.Exercise) (*gym.Exercise, error)
	Update(ctx context.Context, e gym.Exercise) (*gym.Exercise, error)
	Delete(ctx context.Context, id int) error
}

type exerciseRequest struct {
	Nombre          string      `json:"nombre"`
	Descripcion     *string     `json:"descripcion"`
	GrupoMuscularID gym.FlexInt `json:"grupoMuscularId"`
}

// todayCache drops cached routines, which inline catalog names.
type todayCache interface {
	InvalidateToday()
}

type Handler struct {
	repo  exercisesRepo
	cache todayCache
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (h *Handler) WithTodayCache(cache todayCache) *Handler {
	h.cache = cache
	return h
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/ejercicios", h.HandleList).Methods("GET").Name("list-exercises")
	router.HandleFunc("/ejercicios", h.HandleCreate).Methods("POST").Name("new-exercise")
	router.HandleFunc("/ejercicios/{id}", h.HandleGet).Methods("GET").Name("get-exercise")
	router.HandleFunc("/ejercicios/{id}", h.HandleUpdate).Methods("PUT").Name("update-exercise")
	router.HandleFunc("/ejercicios/{id}", h.HandleDelete).Methods("DELETE").Name("delete-exercise")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	exercises, err := h.repo.List(ctx)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, exercises)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	exercise, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("get exercise %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, exercise)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.new")
	defer span.End()

	exercise, ok := decodeExercise(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("muscle_group.id", exercise.GrupoMuscularID))

	if !h.muscleGroupExists(ctx, w, exercise.GrupoMuscularID) {
		return
	}

	added, err := h.repo.Add(ctx, exercise)
	if err != nil {
		if errors.Is(err, ErrMuscleGroupNotFound) {
			pkg.WriteJSONError(w, msgMuscleGroupNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("new exercise: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added: %d [%s]", added.ID, added.Nombre)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	exercise, ok := decodeExercise(w, r)
	if !ok {
		return
	}
	exercise.ID = id

	if !h.muscleGroupExists(ctx, w, exercise.GrupoMuscularID) {
		return
	}

	updated, err := h.repo.Update(ctx, exercise)
	if err != nil {
		switch {
		case errors.Is(err, ErrExerciseNotFound):
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
		case errors.Is(err, ErrMuscleGroupNotFound):
			pkg.WriteJSONError(w, msgMuscleGroupNotFound, http.StatusNotFound)
		default:
			log.Errorf("update exercise %d: %s", id, err)
			pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		}
		return
	}

	h.invalidate()

	pkg.WriteJSONOK(w, updated)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, ErrExerciseNotFound):
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
		case errors.Is(err, ErrExerciseInUse):
			pkg.WriteJSONError(w, msgInUse, http.StatusConflict)
		default:
			log.Errorf("delete exercise %d: %s", id, err)
			pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		}
		return
	}

	log.Debugf("exercise deleted: %d", id)
	pkg.WriteJSONMessage(w, msgDeleted)
}

// muscleGroupExists writes the error response itself when the answer is not a plain yes.
func (h *Handler) muscleGroupExists(ctx context.Context, w http.ResponseWriter, grupoMuscularID int) bool {
	exists, err := h.repo.MuscleGroupExists(ctx, grupoMuscularID)
	if err != nil {
		log.Errorf("check muscle group %d: %s", grupoMuscularID, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return false
	}
	if !exists {
		pkg.WriteJSONError(w, msgMuscleGroupNotFound, http.StatusNotFound)
		return false
	}
	return true
}

func decodeExercise(w http.ResponseWriter, r *http.Request) (gym.Exercise, bool) {
	var req exerciseRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Tracef("exercise request: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInvalidJSON, http.StatusBadRequest)
		return gym.Exercise{}, false
	}

	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" || req.GrupoMuscularID <= 0 {
		pkg.WriteJSONError(w, msgRequiredFields, http.StatusBadRequest)
		return gym.Exercise{}, false
	}

	return gym.Exercise{
		Nombre:          nombre,
		Descripcion:     gym.NullIfEmpty(req.Descripcion),
		GrupoMuscularID: int(req.GrupoMuscularID),
	}, true
}

func (h *Handler) invalidate() {
	if h.cache != nil {
		h.cache.InvalidateToday()
	}
}
