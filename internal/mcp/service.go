package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/rutinas/internal/calculator"
	"github.com/2beens/rutinas/internal/gym"
	"github.com/2beens/rutinas/internal/gym/routines"
)

type routinesLister interface {
	List(ctx context.Context, params routines.ListParams) ([]gym.Routine, error)
}

type exercisesLister interface {
	List(ctx context.Context) ([]gym.Exercise, error)
}

type todayProvider interface {
	Today(ctx context.Context, genero gym.Gender) (*gym.Routine, error)
}

// contextService is what the tool handlers need, kept small for tests.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	ListRoutines(ctx context.Context, params routines.ListParams) ([]gym.Routine, error)
	TodayRoutine(ctx context.Context, genero gym.Gender) (*gym.Routine, error)
	ListExercises(ctx context.Context) ([]gym.Exercise, error)
	CalculateWeight(oneRepMax float64, percent int, rounding calculator.Rounding) (*WeightResult, error)
}

type WeightResult struct {
	Resultado  float64 `json:"resultado"`
	Texto      string  `json:"texto"`
	Porcentaje int     `json:"porcentaje"`
}

// ContextService answers the MCP tools from the routine and catalog stores.
type ContextService struct {
	schema    SchemaRepo
	routines  routinesLister
	exercises exercisesLister
	today     todayProvider
}

func NewContextService(
	schemaRepo SchemaRepo,
	routinesRepo routinesLister,
	exercisesRepo exercisesLister,
	today todayProvider,
) *ContextService {
	return &ContextService{
		schema:    schemaRepo,
		routines:  routinesRepo,
		exercises: exercisesRepo,
		today:     today,
	}
}

// GetSchema renders the routine tables as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Rutinas DB Schema\n\nNo routine tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Rutinas DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(schemaTables, ", ") + " (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) ListRoutines(ctx context.Context, params routines.ListParams) ([]gym.Routine, error) {
	return s.routines.List(ctx, params)
}

func (s *ContextService) TodayRoutine(ctx context.Context, genero gym.Gender) (*gym.Routine, error) {
	return s.today.Today(ctx, genero)
}

func (s *ContextService) ListExercises(ctx context.Context) ([]gym.Exercise, error) {
	return s.exercises.List(ctx)
}

func (s *ContextService) CalculateWeight(oneRepMax float64, percent int, rounding calculator.Rounding) (*WeightResult, error) {
	v, err := calculator.Calculate(oneRepMax, percent, rounding)
	if err != nil {
		return nil, err
	}
	return &WeightResult{
		Resultado:  v,
		Texto:      calculator.FormatKg(v),
		Porcentaje: percent,
	}, nil
}
