// Package mcp exposes read-only routine tools to MCP clients (editors, assistants).
package mcp

import (
	"github.com/2beens/rutinas/internal/dates"
	"github.com/2beens/rutinas/internal/gym/exercises"
	"github.com/2beens/rutinas/internal/gym/routines"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "rutinas-context"
	serverVersion = "1.0.0"
)

// NewServer builds an MCP server with the routine tools: schema, routines by date range,
// today's routine, exercise catalog and the weight calculator.
func NewServer(pool *pgxpool.Pool, zone *dates.Zone, routinesService *routines.Service) *mcp.Server {
	svc := NewContextService(
		NewPoolSchemaRepo(pool),
		routines.NewRepo(pool),
		exercises.NewRepo(pool),
		routinesService,
	)
	return newServer(NewHandler(svc, zone))
}

func newServer(h *Handler) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_rutinas_schema",
		Description: "Returns the DB schema of the routine tables (grupo_muscular, ejercicio, rutina, rutina_ejercicio): columns, types, nullable, default.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_routines_for_date_range",
		Description: "Returns routines with their ordered exercises between two dates (YYYY-MM-DD, inclusive). Optional filter: genero (hombre or mujer).",
	}, h.GetRoutinesForDateRangeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_today_routine",
		Description: "Returns the routine scheduled for today in the gym's timezone for the given genero (hombre or mujer).",
	}, h.GetTodayRoutineTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercises",
		Description: "Returns the exercise catalog with each exercise's muscle group.",
	}, h.GetExercisesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "calculate_weight",
		Description: "Computes the working weight for a percentage of a one repetition maximum. Args: rm (kg), porcentaje (0-100); optional redondeo: none, 0.5 or 1.",
	}, h.CalculateWeightTool())

	return s
}
