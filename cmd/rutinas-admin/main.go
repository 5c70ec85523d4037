// Command rutinas-admin prepares the database and bootstraps users.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/2beens/rutinas/internal/config"
	"github.com/2beens/rutinas/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "rutinas-admin",
	Short:         "Administrative tasks for the rutinas backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
}

// openPool connects with the same config and secrets the service uses.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, err
	}
	secrets, err := config.LoadSecrets()
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: secrets.PostgresPassword,
		MaxConns:   2,
	})
	if err != nil {
		return nil, err
	}
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return dbPool, nil
}
