package musclegroups

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
	ErrMuscleGroupNotFound = errors.New("muscle group not found")
	ErrMuscleGroupExists   = errors.New("muscle group with that name already exists")
	ErrMuscleGroupInUse    = errors.New("muscle group still referenced by exercises")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context) (_ []gym.MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.musclegroups.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, nombre
			FROM grupo_muscular
			ORDER BY nombre ASC
		`,
	)
	if err != nil {
		return nil, fmt.Errorf("muscle groups [query]: %w", err)
	}
	defer rows.Close()

	groups := []gym.MuscleGroup{}
	for rows.Next() {
		var g gym.MuscleGroup
		if err := rows.Scan(&g.ID, &g.Nombre); err != nil {
			return nil, fmt.Errorf("muscle groups [rows scan]: %w", err)
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("muscle groups [rows error]: %w", err)
	}

	return groups, nil
}

// Get returns the group together with its exercises.
func (r *Repo) Get(ctx context.Context, id int) (_ *gym.MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.musclegroups.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("muscle_group.id", id))

	var g gym.MuscleGroup
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id, nombre
			FROM grupo_muscular
			WHERE id = $1
		`,
		id,
	).Scan(&g.ID, &g.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMuscleGroupNotFound
		}
		return nil, fmt.Errorf("muscle group [query row]: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, nombre, descripcion, grupo_muscular_id
			FROM ejercicio
			WHERE grupo_muscular_id = $1
			ORDER BY nombre ASC
		`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("muscle group exercises [query]: %w", err)
	}
	defer rows.Close()

	g.Ejercicios = []gym.Exercise{}
	for rows.Next() {
		var e gym.Exercise
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Descripcion, &e.GrupoMuscularID); err != nil {
			return nil, fmt.Errorf("muscle group exercises [rows scan]: %w", err)
		}
		g.Ejercicios = append(g.Ejercicios, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("muscle group exercises [rows error]: %w", err)
	}

	return &g, nil
}

func (r *Repo) GetByName(ctx context.Context, nombre string) (_ *gym.MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.musclegroups.get_by_name")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var g gym.MuscleGroup
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id, nombre
			FROM grupo_muscular
			WHERE nombre = $1
		`,
		nombre,
	).Scan(&g.ID, &g.Nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMuscleGroupNotFound
		}
		return nil, fmt.Errorf("muscle group by name [query row]: %w", err)
	}

	return &g, nil
}

func (r *Repo) Add(ctx context.Context, nombre string) (_ *gym.MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.musclegroups.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	g := gym.MuscleGroup{Nombre: nombre}
	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO grupo_muscular (nombre)
			VALUES ($1)
			RETURNING id
		`,
		nombre,
	).Scan(&g.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrMuscleGroupExists
		}
		return nil, fmt.Errorf("add muscle group: %w", err)
	}

	return &g, nil
}

func (r *Repo) Update(ctx context.Context, id int, nombre string) (_ *gym.MuscleGroup, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.musclegroups.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("muscle_group.id", id))

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE grupo_muscular
			SET nombre = $2
			WHERE id = $1
		`,
		id,
		nombre,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrMuscleGroupExists
		}
		return nil, fmt.Errorf("update muscle group: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, ErrMuscleGroupNotFound
	}

	return &gym.MuscleGroup{ID: id, Nombre: nombre}, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.musclegroups.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("muscle_group.id", id))

	tag, err := r.db.Exec(
		ctx,
		`
			DELETE FROM grupo_muscular
			WHERE id = $1
		`,
		id,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrMuscleGroupInUse
		}
		return fmt.Errorf("delete muscle group: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrMuscleGroupNotFound
	}

	return nil
}
