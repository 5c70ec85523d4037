package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/rutinas/internal/gym"
	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseNotFound    = errors.New("exercise not found")
	ErrMuscleGroupNotFound = errors.New("muscle group not found")
	ErrExerciseInUse       = errors.New("exercise still referenced by routines")
)

const selectExerciseWithGroup = `
	SELECT e.id, e.nombre, e.descripcion, e.grupo_muscular_id, g.id, g.nombre
	FROM ejercicio e
	JOIN grupo_muscular g ON g.id = e.grupo_muscular_id
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanExercise(row pgx.Row) (*gym.Exercise, error) {
	var (
		e gym.Exercise
		g gym.MuscleGroup
	)
	if err := row.Scan(&e.ID, &e.Nombre, &e.Descripcion, &e.GrupoMuscularID, &g.ID, &g.Nombre); err != nil {
		return nil, err
	}
	e.GrupoMuscular = &g
	return &e, nil
}

func (r *Repo) List(ctx context.Context) (_ []gym.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, selectExerciseWithGroup+` ORDER BY e.nombre ASC, e.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("exercises [query]: %w", err)
	}
	defer rows.Close()

	exercises := []gym.Exercise{}
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("exercises [rows scan]: %w", err)
		}
		exercises = append(exercises, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("exercises [rows error]: %w", err)
	}

	return exercises, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *gym.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", id))

	e, err := scanExercise(r.db.QueryRow(ctx, selectExerciseWithGroup+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("exercise [query row]: %w", err)
	}

	return e, nil
}

func (r *Repo) MuscleGroupExists(ctx context.Context, grupoMuscularID int) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.muscle_group_exists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM grupo_muscular WHERE id = $1)`,
		grupoMuscularID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("muscle group exists [query row]: %w", err)
	}

	return exists, nil
}

func (r *Repo) Add(ctx context.Context, e gym.Exercise) (_ *gym.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id int
	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO ejercicio (nombre, descripcion, grupo_muscular_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`,
		e.Nombre,
		e.Descripcion,
		e.GrupoMuscularID,
	).Scan(&id)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrMuscleGroupNotFound
		}
		return nil, fmt.Errorf("add exercise: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *Repo) Update(ctx context.Context, e gym.Exercise) (_ *gym.Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", e.ID))

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE ejercicio
			SET nombre = $2, descripcion = $3, grupo_muscular_id = $4
			WHERE id = $1
		`,
		e.ID,
		e.Nombre,
		e.Descripcion,
		e.GrupoMuscularID,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrMuscleGroupNotFound
		}
		return nil, fmt.Errorf("update exercise: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, ErrExerciseNotFound
	}

	return r.Get(ctx, e.ID)
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("exercise.id", id))

	tag, err := r.db.Exec(
		ctx,
		`
			DELETE FROM ejercicio
			WHERE id = $1
		`,
		id,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrExerciseInUse
		}
		return fmt.Errorf("delete exercise: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	return nil
}
