// Command rutinas-mcp serves the routine MCP tools over stdio, for local editor use.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/2beens/rutinas/internal/config"
	"github.com/2beens/rutinas/internal/dates"
	"github.com/2beens/rutinas/internal/db"
	"github.com/2beens/rutinas/internal/gym/routines"
	rutinasmcp "github.com/2beens/rutinas/internal/mcp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	secrets, err := config.LoadSecrets()
	if err != nil {
		log.Fatalf("load secrets: %v", err)
	}

	zone, err := dates.NewZone(cfg.Timezone)
	if err != nil {
		log.Fatalf("timezone: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     cfg.PostgresUser,
		DBPassword: secrets.PostgresPassword,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	// no metrics here, the service has no listener to expose them
	routinesService := routines.NewService(routines.NewRepo(dbPool), zone, nil)
	server := rutinasmcp.NewServer(dbPool, zone, routinesService)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
