package routines

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/rutinas/internal/dates"
	"github.com/2beens/rutinas/internal/gym"
	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	msgNotFound       = "Rutina no encontrada"
	msgRequiredFields = "La fecha y el género son obligatorios"
	msgDateRequired   = "La fecha es obligatoria"
	msgInvalidGender  = "El género debe ser 'hombre' o 'mujer'"
	msgInvalidDate    = "Formato de fecha inválido"
	msgGenderRequired = "El género es obligatorio"
	msgNoRoutineToday = "No hay rutina disponible para hoy"
	msgDeleted        = "Rutina eliminada correctamente"
)

//go:generate mockgen -source=$GOFILE -destination=routines_mocks_test.go -package=routines_test

type routinesRepo interface {
	List(ctx context.Context, params ListParams) ([]gym.Routine, error)
	Get(ctx context.Context, id int) (*gym.Routine, error)
	Add(ctx context.Context, routine gym.RoutineSummary) (*gym.Routine, error)
	Update(ctx context.Context, routine gym.RoutineSummary) (*gym.Routine, error)
	Delete(ctx context.Context, id int) error
}

type routinesService interface {
	Duplicate(ctx context.Context, id int, fecha time.Time) (*gym.Routine, error)
	Today(ctx context.Context, genero gym.Gender) (*gym.Routine, error)
	InvalidateToday()
}

type routineRequest struct {
	Fecha       string  `json:"fecha"`
	Genero      string  `json:"genero"`
	Descripcion *string `json:"descripcion"`
}

type duplicateRequest struct {
	Fecha string `json:"fecha"`
}

type Handler struct {
	repo    routinesRepo
	service routinesService
	zone    *dates.Zone
}

func NewHandler(repo routinesRepo, service routinesService, zone *dates.Zone) *Handler {
	if zone == nil {
		zone = dates.Default()
	}
	return &Handler{
		repo:    repo,
		service: service,
		zone:    zone,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/rutinas", h.HandleList).Methods("GET").Name("list-routines")
	router.HandleFunc("/rutinas", h.HandleCreate).Methods("POST").Name("new-routine")
	// must be registered before /rutinas/{id}
	router.HandleFunc("/rutinas/hoy", h.HandleToday).Methods("GET").Name("today-routine")
	router.HandleFunc("/rutinas/{id}", h.HandleGet).Methods("GET").Name("get-routine")
	router.HandleFunc("/rutinas/{id}", h.HandleUpdate).Methods("PUT").Name("update-routine")
	router.HandleFunc("/rutinas/{id}", h.HandleDelete).Methods("DELETE").Name("delete-routine")
	router.HandleFunc("/rutinas/{id}", h.HandleDuplicate).Methods("POST").Name("duplicate-routine")
}

// HandleList supports ?fecha=YYYY-MM-DD (whole day in the configured zone) and ?genero=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.list")
	defer span.End()

	var params ListParams
	if fecha := r.URL.Query().Get("fecha"); fecha != "" {
		day, err := h.zone.ParseString(fecha)
		if err != nil {
			pkg.WriteJSONError(w, msgInvalidDate, http.StatusBadRequest)
			return
		}
		params.From, params.To = h.zone.DayRange(day)
		span.SetAttributes(attribute.String("fecha", fecha))
	}
	if genero := r.URL.Query().Get("genero"); genero != "" {
		g, err := gym.ParseGender(genero)
		if err != nil {
			pkg.WriteJSONError(w, msgInvalidGender, http.StatusBadRequest)
			return
		}
		params.Genero = g
	}

	routines, err := h.repo.List(ctx, params)
	if err != nil {
		log.Errorf("list routines: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, routines)
}

func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.today")
	defer span.End()

	rawGenero := r.URL.Query().Get("genero")
	if rawGenero == "" {
		pkg.WriteJSONError(w, msgGenderRequired, http.StatusBadRequest)
		return
	}
	genero, err := gym.ParseGender(rawGenero)
	if err != nil {
		pkg.WriteJSONError(w, msgInvalidGender, http.StatusBadRequest)
		return
	}

	routine, err := h.service.Today(ctx, genero)
	if err != nil {
		if errors.Is(err, ErrNoRoutineToday) {
			pkg.WriteJSONError(w, msgNoRoutineToday, http.StatusNotFound)
			return
		}
		log.Errorf("today's routine [%s]: %s", genero, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, routine)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.get")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	routine, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("get routine %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, routine)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.new")
	defer span.End()

	routine, ok := h.decodeRoutine(w, r)
	if !ok {
		return
	}

	added, err := h.repo.Add(ctx, routine)
	if err != nil {
		log.Errorf("new routine: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}
	h.service.InvalidateToday()

	log.Debugf("new routine added: %d [%s]", added.ID, added.Genero)
	pkg.WriteJSON(w, added, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.update")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	routine, ok := h.decodeRoutine(w, r)
	if !ok {
		return
	}
	routine.ID = id

	updated, err := h.repo.Update(ctx, routine)
	if err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("update routine %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}
	h.service.InvalidateToday()

	pkg.WriteJSONOK(w, updated)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.delete")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("delete routine %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}
	h.service.InvalidateToday()

	log.Debugf("routine deleted: %d", id)
	pkg.WriteJSONMessage(w, msgDeleted)
}

func (h *Handler) HandleDuplicate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.routines.duplicate")
	defer span.End()

	id, err := pkg.ParseIntVar(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, pkg.MsgInvalidID, http.StatusBadRequest)
		return
	}

	var req duplicateRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Tracef("duplicate routine request: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Fecha) == "" {
		pkg.WriteJSONError(w, msgDateRequired, http.StatusBadRequest)
		return
	}
	fecha, err := h.zone.ParseString(req.Fecha)
	if err != nil {
		pkg.WriteJSONError(w, msgInvalidDate, http.StatusBadRequest)
		return
	}

	duplicated, err := h.service.Duplicate(ctx, id, fecha)
	if err != nil {
		if errors.Is(err, ErrRoutineNotFound) {
			pkg.WriteJSONError(w, msgNotFound, http.StatusNotFound)
			return
		}
		log.Errorf("duplicate routine %d: %s", id, err)
		pkg.WriteJSONError(w, pkg.MsgInternalError, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, duplicated, http.StatusCreated)
}

func (h *Handler) decodeRoutine(w http.ResponseWriter, r *http.Request) (gym.RoutineSummary, bool) {
	var req routineRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Tracef("routine request: %s", err)
		pkg.WriteJSONError(w, pkg.MsgInvalidJSON, http.StatusBadRequest)
		return gym.RoutineSummary{}, false
	}

	if strings.TrimSpace(req.Fecha) == "" || strings.TrimSpace(req.Genero) == "" {
		pkg.WriteJSONError(w, msgRequiredFields, http.StatusBadRequest)
		return gym.RoutineSummary{}, false
	}

	fecha, err := h.zone.ParseString(req.Fecha)
	if err != nil {
		pkg.WriteJSONError(w, msgInvalidDate, http.StatusBadRequest)
		return gym.RoutineSummary{}, false
	}

	genero, err := gym.ParseGender(req.Genero)
	if err != nil {
		pkg.WriteJSONError(w, msgInvalidGender, http.StatusBadRequest)
		return gym.RoutineSummary{}, false
	}

	return gym.RoutineSummary{
		Fecha:       fecha,
		Genero:      genero,
		Descripcion: gym.NullIfEmpty(req.Descripcion),
	}, true
}
