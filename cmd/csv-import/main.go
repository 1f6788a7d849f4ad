package main

import (
	"flag"
	"log/slog"
	"os"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/importer"
)

func main() {
	dataDir := flag.String("data", "static/data", "directory containing the CSV dump")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := importer.New(db, logger).Run(*dataDir); err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	logger.Info("database loaded successfully")
}
