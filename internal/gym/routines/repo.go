package routines

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/rutinas/internal/gym"
	"github.com/2beens/rutinas/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrRoutineNotFound = errors.New("routine not found")

// ListParams filters routines. Zero values mean no filter.
type ListParams struct {
	From   time.Time
	To     time.Time
	Genero gym.Gender
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// List returns routines newest first, each with its ordered links.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []gym.Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	if params.Genero != "" {
		span.SetAttributes(attribute.String("params.genero", string(params.Genero)))
	}
	if !params.From.IsZero() {
		span.SetAttributes(attribute.String("params.from", params.From.Format(time.RFC3339)))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, fecha, genero, descripcion
			FROM rutina
			WHERE ($1::timestamptz IS NULL OR fecha >= $1)
			  AND ($2::timestamptz IS NULL OR fecha <= $2)
			  AND ($3::text = '' OR genero = $3)
			ORDER BY fecha DESC, id DESC
		`,
		optionalTime(params.From),
		optionalTime(params.To),
		string(params.Genero),
	)
	if err != nil {
		return nil, fmt.Errorf("routines [query]: %w", err)
	}
	defer rows.Close()

	routines := []gym.Routine{}
	var ids []int
	for rows.Next() {
		var routine gym.Routine
		if err := scanRoutineSummary(rows, &routine.RoutineSummary); err != nil {
			return nil, fmt.Errorf("routines [rows scan]: %w", err)
		}
		routine.Ejercicios = []gym.RoutineExercise{}
		routines = append(routines, routine)
		ids = append(ids, routine.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("routines [rows error]: %w", err)
	}

	if len(ids) == 0 {
		return routines, nil
	}

	links, err := r.linksForRoutines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range routines {
		if l, ok := links[routines[i].ID]; ok {
			routines[i].Ejercicios = l
		}
	}

	return routines, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *gym.Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("routine.id", id))

	var routine gym.Routine
	err = scanRoutineSummary(
		r.db.QueryRow(
			ctx,
			`
				SELECT id, fecha, genero, descripcion
				FROM rutina
				WHERE id = $1
			`,
			id,
		),
		&routine.RoutineSummary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoutineNotFound
		}
		return nil, fmt.Errorf("routine [query row]: %w", err)
	}

	links, err := r.linksForRoutines(ctx, []int{id})
	if err != nil {
		return nil, err
	}
	routine.Ejercicios = links[id]
	if routine.Ejercicios == nil {
		routine.Ejercicios = []gym.RoutineExercise{}
	}

	return &routine, nil
}

func (r *Repo) RoutineExists(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM rutina WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("routine exists [query row]: %w", err)
	}

	return exists, nil
}

func (r *Repo) Add(ctx context.Context, routine gym.RoutineSummary) (_ *gym.Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO rutina (fecha, genero, descripcion)
			VALUES ($1, $2, $3)
			RETURNING id
		`,
		routine.Fecha,
		string(routine.Genero),
		routine.Descripcion,
	).Scan(&routine.ID)
	if err != nil {
		return nil, fmt.Errorf("add routine: %w", err)
	}
	routine.Fecha = routine.Fecha.UTC()

	return &gym.Routine{
		RoutineSummary: routine,
		Ejercicios:     []gym.RoutineExercise{},
	}, nil
}

func (r *Repo) Update(ctx context.Context, routine gym.RoutineSummary) (_ *gym.Routine, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("routine.id", routine.ID))

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE rutina
			SET fecha = $2, genero = $3, descripcion = $4
			WHERE id = $1
		`,
		routine.ID,
		routine.Fecha,
		string(routine.Genero),
		routine.Descripcion,
	)
	if err != nil {
		return nil, fmt.Errorf("update routine: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, ErrRoutineNotFound
	}

	return r.Get(ctx, routine.ID)
}

// Delete removes the routine, its links go with it.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("routine.id", id))

	tag, err := r.db.Exec(
		ctx,
		`
			DELETE FROM rutina
			WHERE id = $1
		`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrRoutineNotFound
	}

	return nil
}

func scanRoutineSummary(row pgx.Row, routine *gym.RoutineSummary) error {
	var genero string
	if err := row.Scan(&routine.ID, &routine.Fecha, &genero, &routine.Descripcion); err != nil {
		return err
	}
	routine.Genero = gym.Gender(genero)
	routine.Fecha = routine.Fecha.UTC()
	return nil
}
