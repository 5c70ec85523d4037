package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/2beens/rutinas/internal/calculator"
	"github.com/2beens/rutinas/internal/dates"
	"github.com/2beens/rutinas/internal/gym"
	"github.com/2beens/rutinas/internal/gym/routines"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler turns tool arguments into service calls and service answers into MCP results.
type Handler struct {
	service contextService
	zone    *dates.Zone
}

func NewHandler(service contextService, zone *dates.Zone) *Handler {
	if zone == nil {
		zone = dates.Default()
	}
	return &Handler{
		service: service,
		zone:    zone,
	}
}

type NoInput struct{}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetSchemaTool returns the handler for get_rutinas_schema.
func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

type RoutinesRangeInput struct {
	FromDate string `json:"from_date" jsonschema:"Start date (YYYY-MM-DD)"`
	ToDate   string `json:"to_date" jsonschema:"End date (YYYY-MM-DD), inclusive"`
	Genero   string `json:"genero,omitempty" jsonschema:"Filter by gender: hombre or mujer"`
}

// GetRoutinesForDateRangeTool returns the handler for get_routines_for_date_range.
func (h *Handler) GetRoutinesForDateRangeTool() func(context.Context, *mcp.CallToolRequest, RoutinesRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RoutinesRangeInput) (*mcp.CallToolResult, any, error) {
		from, err := h.zone.ParseString(in.FromDate)
		if err != nil {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		to, err := h.zone.ParseString(in.ToDate)
		if err != nil {
			return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
		}

		params := routines.ListParams{
			From: h.zone.StartOfDay(from),
			To:   h.zone.EndOfDay(to),
		}
		if in.Genero != "" {
			genero, err := gym.ParseGender(in.Genero)
			if err != nil {
				return errorResult("Invalid genero: use hombre or mujer"), nil, nil
			}
			params.Genero = genero
		}

		list, err := h.service.ListRoutines(ctx, params)
		if err != nil {
			return errorResult("Error listing routines: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

type TodayInput struct {
	Genero string `json:"genero" jsonschema:"hombre or mujer"`
}

// GetTodayRoutineTool returns the handler for get_today_routine.
func (h *Handler) GetTodayRoutineTool() func(context.Context, *mcp.CallToolRequest, TodayInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in TodayInput) (*mcp.CallToolResult, any, error) {
		genero, err := gym.ParseGender(in.Genero)
		if err != nil {
			return errorResult("Invalid genero: use hombre or mujer"), nil, nil
		}

		routine, err := h.service.TodayRoutine(ctx, genero)
		if err != nil {
			if errors.Is(err, routines.ErrNoRoutineToday) {
				return &mcp.CallToolResult{
					Content: []mcp.Content{&mcp.TextContent{Text: "No routine scheduled for today."}},
				}, nil, nil
			}
			return errorResult("Error fetching today's routine: " + err.Error()), nil, nil
		}
		return jsonResult(routine), nil, nil
	}
}

// GetExercisesTool returns the handler for get_exercises.
func (h *Handler) GetExercisesTool() func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		list, err := h.service.ListExercises(ctx)
		if err != nil {
			return errorResult("Error listing exercises: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

type WeightInput struct {
	OneRepMax  float64 `json:"rm" jsonschema:"One repetition maximum in kg"`
	Porcentaje int     `json:"porcentaje" jsonschema:"Percentage of the 1RM, 0 to 100"`
	Redondeo   string  `json:"redondeo,omitempty" jsonschema:"Rounding: none, 0.5 or 1"`
}

// CalculateWeightTool returns the handler for calculate_weight.
func (h *Handler) CalculateWeightTool() func(context.Context, *mcp.CallToolRequest, WeightInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in WeightInput) (*mcp.CallToolResult, any, error) {
		rounding, err := calculator.ParseRounding(in.Redondeo)
		if err != nil {
			return errorResult("Invalid redondeo: use none, 0.5 or 1"), nil, nil
		}
		res, err := h.service.CalculateWeight(in.OneRepMax, in.Porcentaje, rounding)
		if err != nil {
			return errorResult("Invalid input: " + err.Error()), nil, nil
		}
		return jsonResult(res), nil, nil
	}
}
