package routines

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/rutinas/internal/gym"
	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	msgInvalidRoutineID = "ID de rutina inválido"
	msgLinkRequiredIDs  = "El ID de rutina y ejercicio son obligatorios"
	msgLinkNegative     = "Las series y repeticiones deben ser números positivos"
	msgExerciseNotFound = "Ejercicio no encontrado"
	msgLinkExists       = "La rutina ya contiene este ejercicio"
	msgLinkNotFound     = "Ejercicio de rutina no encontrado"
	msgLinkDeleted      = "Ejercicio de rutina eliminado correctamente"
)

//go:generate mockgen -source=$GOFILE -destination=links_mocks_test.go -package=routines_test

type linksRepo interface {
	ListLinks(ctx context.Context, rutinaID int) ([]gym.RoutineExercise, error)
	GetLink(ctx context.Context, id int) (*gym.RoutineExercise, error)
	RoutineExists(ctx context.Context, id int) (bool, error)
	ExerciseExists(ctx context.Context, id int) (bool, error)
	LinkExists(ctx context.Context, rutinaID int, ejercicioID int) (bool, error)
	AddLink(ctx context.Context, link gym.RoutineExercise) (*gym.RoutineExercise, error)
	UpdateLink(ctx context.Context, id int, series *int, repeticiones *int, orden *int) (*gym.RoutineExercise, error)
	DeleteLink(ctx context.Context, id int) error
}

type todayCache interface {
	InvalidateToday()
}

type linkCreateRequest struct {
	RutinaID     gym.FlexInt `json:"rutinaId"`
	EjercicioID  gym.FlexInt `json:"ejercicioId"`
	Series       *int        `json:"series"`
	Repeticiones *int        `json:"repeticiones"`
	Orden        *int        `json:"orden"`
}

type linkUpdateRequest struct {
	Series       gym.OptionalInt `json:"series"`
	Repeticiones gym.OptionalInt `json:"repeticiones"`
	Orden        gym.OptionalInt `json:"orden"`
}

type LinksHandler struct {
	repo  linksRepo
	cache todayCache
}

func NewLinksHandler(repo linksRepo, cache todayCache) *LinksHandler {
	return &LinksHandler{
		repo:  repo,
		cache: cache,
	}
}

func (h *LinksHandler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/rutina-ejercicios", h.HandleList).Methods("GET").Name("list-routine-exercises")
	router.HandleFunc("/rutina-ejercicios", h.HandleCreate).Methods("POST").Name("new-routine-exercise")
	router.HandleFunc("/rutina-ejercicios/{id}", h.HandleGet).Methods("GET").Name("get-routine-exercise")
	router.HandleFunc("/rutina-ejercicios/{id}", h.HandleUpdate).Methods("PUT").Name("update-routine-exercise")
	router.HandleFunc("/rutina-ejercicios/{id}", h.HandleDelete).Methods("DELETE").Name("delete-routine-exercise")
}

func (h *LinksHandler) invalidate() {
	if h.cache != nil {
		h.cache.InvalidateToday()
	}
}

func (h *LinksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routine_exercises.list")
	defer span.End()

	rutinaID := 0
	if raw := r.URL.Query().Get("rutinaId"); raw != "" {
		id, err := pkg.ParseInt(raw)
		if err != nil {
			pkg.WriteJSONError(w, msgInvalidRoutineID, http.StatusBadRequest)
			return
		}
		rutinaID = id
		span.SetAttributes(attribute.Int("routine.id", rutinaID))
	}

	links, err := h.repo.ListLinks(ctx, rutinaID)
	if err != nil {
		log.Errorf("list routine exercises [%d]: %s", rutinaID, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, links)
}

func (h *LinksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routine_exercises.get")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	link, err := h.repo.GetLink(ctx, id)
	if err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			pkg.WriteJSONError(w, msgLinkNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("get routine exercise %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, link)
}

func (h *LinksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routine_exercises.new")
	defer span.End()

	var req linkCreateRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Tracef("routine exercise request: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if req.RutinaID <= 0 || req.EjercicioID <= 0 {
		pkg.WriteJSONError(w, msgLinkRequiredIDs, http.StatusBadRequest)
		return
	}
	if isNegative(req.Series) || isNegative(req.Repeticiones) {
		pkg.WriteJSONError(w, msgLinkNegative, http.StatusBadRequest)
		return
	}

	link := gym.RoutineExercise{
		RutinaID:     int(req.RutinaID),
		EjercicioID:  int(req.EjercicioID),
		Series:       gym.NullIfZero(req.Series),
		Repeticiones: gym.NullIfZero(req.Repeticiones),
		Orden:        gym.NullIfZero(req.Orden),
	}
	span.SetAttributes(
		attribute.Int("routine.id", link.RutinaID),
		attribute.Int("exercise.id", link.EjercicioID),
	)

	if !h.exists(ctx, w, h.repo.RoutineExists, link.RutinaID, msgNotFound) {
		return
	}
	if !h.exists(ctx, w, h.repo.ExerciseExists, link.EjercicioID, msgExerciseNotFound) {
		return
	}

	taken, err := h.repo.LinkExists(ctx, link.RutinaID, link.EjercicioID)
	if err != nil {
		log.Errorf("check routine exercise %d/%d: %s", link.RutinaID, link.EjercicioID, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}
	if taken {
		pkg.WriteJSONError(w, msgLinkExists, http.StatusConflict)
		return
	}

	added, err := h.repo.AddLink(ctx, link)
	if err != nil {
		switch {
		case errors.Is(err, ErrLinkExists):
			pkg.WriteJSONError(w, msgLinkExists, http.StatusConflict)
		case errors.Is(err, ErrRoutineNotFound):
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
		case errors.Is(err, ErrExerciseNotFound):
			pkg.WriteJSONError(w, msgExerciseNotFound, http.StatusNotFound)
		default:
			log.Errorf("new routine exercise: %s", err)
			pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		}
		return
	}
	h.invalidate()

	log.Debugf("exercise %d added to routine %d: %d", added.EjercicioID, added.RutinaID, added.ID)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *LinksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routine_exercises.update")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	var req linkUpdateRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Tracef("routine exercise update request: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if isNegative(req.Series.Value) || isNegative(req.Repeticiones.Value) {
		pkg.WriteJSONError(w, msgLinkNegative, http.StatusBadRequest)
		return
	}

	// absent, null and 0 all store null
	updated, err := h.repo.UpdateLink(
		ctx,
		id,
		gym.NullIfZero(req.Series.Value),
		gym.NullIfZero(req.Repeticiones.Value),
		gym.NullIfZero(req.Orden.Value),
	)
	if err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			pkg.WriteJSONError(w, msgLinkNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("update routine exercise %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}
	h.invalidate()

	pkg.WriteJSONOK(w, updated)
}

func (h *LinksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routine_exercises.delete")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	if err := h.repo.DeleteLink(ctx, id); err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			pkg.WriteJSONError(w, msgLinkNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("delete routine exercise %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}
	h.invalidate()

	pkg.WriteJSONMessage(w, msgLinkDeleted)
}

// exists writes the error response itself when the answer is not a plain yes.
func (h *LinksHandler) exists(
	ctx context.Context,
	w http.ResponseWriter,
	check func(ctx context.Context, id int) (bool, error),
	id int,
	notFoundMsg string,
) bool {
	found, err := check(ctx, id)
	if err != nil {
		log.Errorf("check existence of %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return false
	}
	if !found {
		pkg.WriteJSONError(w, notFoundMsg, http.StatusNotFound)
		return false
	}
	return true
}

func isNegative(v *int) bool {
	return v != nil && *v < 0
}
