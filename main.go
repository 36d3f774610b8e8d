package main

import (
	"github.com/wfunc/wordparty/config"
	"github.com/wfunc/wordparty/logger"
	"github.com/wfunc/wordparty/persistence"
	"github.com/wfunc/wordparty/server"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Optional game archive (rooms themselves are memory-only)
	var store persistence.Store
	if cfg.Database.Enabled {
		pg := cfg.Database.Postgres
		switch cfg.Database.Driver {
		case "postgres":
			raw, err := persistence.NewPostgres(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
			if err != nil {
				logger.Log.Fatalf("Failed to connect to database: %v", err)
			}
			store = raw
		default:
			gormStore, err := persistence.NewGormPostgres(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
			if err != nil {
				logger.Log.Fatalf("Failed to connect to database: %v", err)
			}
			store = gormStore
		}
		logger.Log.Info("Database connection successful.")
	}

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg, store)

	// Start Server
	logger.Log.Infof("Starting wordparty server on %s", cfg.Server.HTTPAddress())
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
