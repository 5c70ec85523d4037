// Package testinternals wires integration tests to the postgres and redis
// instances started by docker-compose (or CI services).
package testinternals

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/2beens/rutinas/internal/db"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewTestDBPool connects to the test database and applies the schema.
// The pool is closed when the test ends.
func NewTestDBPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := envOr("POSTGRES_HOST", "localhost")
	t.Logf("using postgres host: %s", host)

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     host,
		DBPort:     envOr("POSTGRES_PORT", "5432"),
		DBName:     envOr("POSTGRES_DB", "rutinas"),
		DBUser:     envOr("POSTGRES_USER", "postgres"),
		DBPassword: os.Getenv("POSTGRES_PASSWORD"),
		MaxConns:   4,
	})
	require.NoError(t, err)
	t.Cleanup(dbPool.Close)

	require.NoError(t, dbPool.Ping(ctx))
	require.NoError(t, db.Migrate(ctx, dbPool))

	return dbPool
}

// NewTestRedisClient connects to the test redis. Set REDIS_PASS for a protected instance.
func NewTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("REDIS_HOST", "localhost")
	t.Logf("using redis host: [%s]", host)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, envOr("REDIS_PORT", "6379")),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0, // use default DB
	})
	t.Cleanup(func() {
		_ = rdb.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, rdb.Ping(ctx).Err())

	return rdb
}

// UniqueName returns a name unlikely to collide with rows left by other test runs.
func UniqueName(prefix string) string {
	return prefix + " " + gofakeit.LetterN(10)
}

// MuscleGroup inserts a muscle group directly and returns its id.
func MuscleGroup(t *testing.T, dbPool *pgxpool.Pool, nombre string) int {
	t.Helper()
	var id int
	err := dbPool.QueryRow(
		context.Background(),
		`INSERT INTO grupo_muscular (nombre) VALUES ($1) RETURNING id`,
		nombre,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// Exercise inserts an exercise directly and returns its id.
func Exercise(t *testing.T, dbPool *pgxpool.Pool, nombre string, grupoMuscularID int) int {
	t.Helper()
	var id int
	err := dbPool.QueryRow(
		context.Background(),
		`INSERT INTO ejercicio (nombre, grupo_muscular_id) VALUES ($1, $2) RETURNING id`,
		nombre, grupoMuscularID,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
