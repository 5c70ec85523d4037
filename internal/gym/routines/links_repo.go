package routines

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/rutinas/internal/gym"
	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/pkg"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrLinkNotFound     = errors.New("routine exercise not found")
	ErrLinkExists       = errors.New("routine already lists that exercise")
	ErrExerciseNotFound = errors.New("exercise not found")
)

const (
	constraintLinkRoutineFK  = "rutina_ejercicio_rutina_id_fkey"
	constraintLinkExerciseFK = "rutina_ejercicio_ejercicio_id_fkey"
)

// nulls last, ties by id, so links never reorder between reads
const linksOrderBy = ` ORDER BY re.orden ASC NULLS LAST, re.id ASC`

const selectLinks = `
	SELECT re.id, re.rutina_id, re.ejercicio_id, re.series, re.repeticiones, re.orden,
	       e.id, e.nombre, e.descripcion, e.grupo_muscular_id,
	       g.id, g.nombre,
	       r.id, r.fecha, r.genero, r.descripcion
	FROM rutina_ejercicio re
	JOIN ejercicio e ON e.id = re.ejercicio_id
	JOIN grupo_muscular g ON g.id = e.grupo_muscular_id
	JOIN rutina r ON r.id = re.rutina_id
`

func scanLink(row pgx.Row) (*gym.RoutineExercise, error) {
	var (
		link    gym.RoutineExercise
		ex      gym.Exercise
		group   gym.MuscleGroup
		routine gym.RoutineSummary
		genero  string
	)
	err := row.Scan(
		&link.ID, &link.RutinaID, &link.EjercicioID, &link.Series, &link.Repeticiones, &link.Orden,
		&ex.ID, &ex.Nombre, &ex.Descripcion, &ex.GrupoMuscularID,
		&group.ID, &group.Nombre,
		&routine.ID, &routine.Fecha, &genero, &routine.Descripcion,
	)
	if err != nil {
		return nil, err
	}
	routine.Genero = gym.Gender(genero)
	routine.Fecha = routine.Fecha.UTC()
	ex.GrupoMuscular = &group
	link.Ejercicio = &ex
	link.Rutina = &routine
	return &link, nil
}

// linksForRoutines groups the ordered links of the given routines by routine id.
// Links embedded in a routine do not repeat the routine itself.
func (r *Repo) linksForRoutines(ctx context.Context, routineIDs []int) (_ map[int][]gym.RoutineExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.links_for_routines")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("routines.count", len(routineIDs)))

	rows, err := r.db.Query(ctx, selectLinks+` WHERE re.rutina_id = ANY($1)`+linksOrderBy, routineIDs)
	if err != nil {
		return nil, fmt.Errorf("routine links [query]: %w", err)
	}
	defer rows.Close()

	links := make(map[int][]gym.RoutineExercise, len(routineIDs))
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("routine links [rows scan]: %w", err)
		}
		link.Rutina = nil
		links[link.RutinaID] = append(links[link.RutinaID], *link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("routine links [rows error]: %w", err)
	}

	return links, nil
}

// ListLinks lists all links, or only those of rutinaID when it is set.
func (r *Repo) ListLinks(ctx context.Context, rutinaID int) (_ []gym.RoutineExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.links.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("routine.id", rutinaID))

	rows, err := r.db.Query(ctx, selectLinks+` WHERE ($1::int = 0 OR re.rutina_id = $1)`+linksOrderBy, rutinaID)
	if err != nil {
		return nil, fmt.Errorf("links [query]: %w", err)
	}
	defer rows.Close()

	links := []gym.RoutineExercise{}
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("links [rows scan]: %w", err)
		}
		links = append(links, *link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("links [rows error]: %w", err)
	}

	return links, nil
}

func (r *Repo) GetLink(ctx context.Context, id int) (_ *gym.RoutineExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.links.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("link.id", id))

	link, err := scanLink(r.db.QueryRow(ctx, selectLinks+` WHERE re.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("link [query row]: %w", err)
	}

	return link, nil
}

func (r *Repo) ExerciseExists(ctx context.Context, id int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.exercise_exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ejercicio WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("exercise exists [query row]: %w", err)
	}

	return exists, nil
}

func (r *Repo) LinkExists(ctx context.Context, rutinaID, ejercicioID int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.links.exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM rutina_ejercicio WHERE rutina_id = $1 AND ejercicio_id = $2)`,
		rutinaID,
		ejercicioID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("link exists [query row]: %w", err)
	}

	return exists, nil
}

func (r *Repo) AddLink(ctx context.Context, link gym.RoutineExercise) (_ *gym.RoutineExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.links.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("routine.id", link.RutinaID),
		attribute.Int("exercise.id", link.EjercicioID),
	)

	var id int
	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO rutina_ejercicio (rutina_id, ejercicio_id, series, repeticiones, orden)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
		link.RutinaID,
		link.EjercicioID,
		link.Series,
		link.Repeticiones,
		link.Orden,
	).Scan(&id)
	if err != nil {
		if mapped := mapLinkConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("add link: %w", err)
	}

	return r.GetLink(ctx, id)
}

// UpdateLink overwrites the three optional fields, nil clears them.
func (r *Repo) UpdateLink(ctx context.Context, id int, series, repeticiones, orden *int) (_ *gym.RoutineExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.links.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("link.id", id))

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE rutina_ejercicio
			SET series = $2, repeticiones = $3, orden = $4
			WHERE id = $1
		`,
		id,
		series,
		repeticiones,
		orden,
	)
	if err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, ErrLinkNotFound
	}

	return r.GetLink(ctx, id)
}

func (r *Repo) DeleteLink(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.routines.links.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("link.id", id))

	tag, err := r.db.Exec(
		ctx,
		`
			DELETE FROM rutina_ejercicio
			WHERE id = $1
		`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrLinkNotFound
	}

	return nil
}

func mapLinkConstraintError(err error) error {
	switch {
	case pkg.IsUniqueViolationError(err):
		return ErrLinkExists
	case pkg.IsForeignKeyViolationError(err):
		switch pkg.ConstraintName(err) {
		case constraintLinkRoutineFK:
			return ErrRoutineNotFound
		case constraintLinkExerciseFK:
			return ErrExerciseNotFound
		}
	}
	return nil
}
