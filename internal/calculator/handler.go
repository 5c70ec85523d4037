package calculator

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/pkg"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultPercent = 70

	msgInvalidOneRepMax = "El peso máximo debe ser un número mayor a 0"
	msgInvalidPercent   = "El porcentaje debe estar entre 0 y 100"
	msgInvalidRounding  = "Redondeo inválido, use 0.5, 1 o none"
)

type Response struct {
	Resultado          float64  `json:"resultado"`
	Texto              string   `json:"texto"`
	Porcentaje         int      `json:"porcentaje"`
	Redondeo           Rounding `json:"redondeo"`
	PorcentajesRapidos []int    `json:"porcentajesRapidos"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/calculadora", h.HandleCalculate).Methods("GET").Name("calculator")
}

// HandleCalculate serves GET /calculadora?rm=100&porcentaje=70&redondeo=0.5.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculator.calculate")
	defer span.End()

	query := r.URL.Query()

	// accept both decimal separators
	rawMax := strings.ReplaceAll(strings.TrimSpace(query.Get("rm")), ",", ".")
	oneRepMax, err := strconv.ParseFloat(rawMax, 64)
	if err != nil || oneRepMax <= 0 {
		pkg.WriteJSONError(w, msgInvalidOneRepMax, http.StatusBadRequest)
		return
	}

	percent := defaultPercent
	if rawPercent := query.Get("porcentaje"); rawPercent != "" {
		percent, err = strconv.Atoi(strings.TrimSpace(rawPercent))
		if err != nil {
			pkg.WriteJSONError(w, msgInvalidPercent, http.StatusBadRequest)
			return
		}
	}

	rounding, err := ParseRounding(query.Get("redondeo"))
	if err != nil {
		pkg.WriteJSONError(w, msgInvalidRounding, http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.Float64("one_rep_max", oneRepMax),
		attribute.Int("percent", percent),
		attribute.String("rounding", string(rounding)),
	)

	result, err := Calculate(oneRepMax, percent, rounding)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidOneRepMax):
			pkg.WriteJSONError(w, msgInvalidOneRepMax, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidRounding):
			pkg.WriteJSONError(w, msgInvalidRounding, http.StatusBadRequest)
		default:
			pkg.WriteJSONError(w, msgInvalidPercent, http.StatusBadRequest)
		}
		return
	}

	pkg.WriteJSONOK(w, Response{
		Resultado:          result,
		Texto:              FormatKg(result),
		Porcentaje:         percent,
		Redondeo:           rounding,
		PorcentajesRapidos: QuickPercents,
	})
}
