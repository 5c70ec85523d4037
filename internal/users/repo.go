package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/rutinas/internal/telemetry/tracing"
	"github.com/2beens/rutinas/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user with that name already exists")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, nombre
			FROM usuario
			ORDER BY nombre ASC
		`,
	)
	if err != nil {
		return nil, fmt.Errorf("users [query]: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Nombre); err != nil {
			return nil, fmt.Errorf("users [rows scan]: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("users [rows error]: %w", err)
	}

	return users, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	var u User
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id, nombre, password
			FROM usuario
			WHERE id = $1
		`,
		id,
	).Scan(&u.ID, &u.Nombre, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user [query row]: %w", err)
	}

	return &u, nil
}

func (r *Repo) GetByName(ctx context.Context, nombre string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get_by_name")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var u User
	err = r.db.QueryRow(
		ctx,
		`
			SELECT id, nombre, password
			FROM usuario
			WHERE nombre = $1
		`,
		nombre,
	).Scan(&u.ID, &u.Nombre, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user by name [query row]: %w", err)
	}

	return &u, nil
}

func (r *Repo) Add(ctx context.Context, nombre, passwordHash string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	u := User{
		Nombre:       nombre,
		PasswordHash: passwordHash,
	}
	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO usuario (nombre, password)
			VALUES ($1, $2)
			RETURNING id
		`,
		nombre,
		passwordHash,
	).Scan(&u.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("add user: %w", err)
	}

	return &u, nil
}

func (r *Repo) Update(ctx context.Context, id int, nombre, passwordHash string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE usuario
			SET nombre = $2, password = $3
			WHERE id = $1
		`,
		id,
		nombre,
		passwordHash,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, ErrUserNotFound
	}

	return &User{
		ID:           id,
		Nombre:       nombre,
		PasswordHash: passwordHash,
	}, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	tag, err := r.db.Exec(
		ctx,
		`
			DELETE FROM usuario
			WHERE id = $1
		`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}
