package main

import (
	"os"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/api"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/config"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/constants"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/game"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/logging"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/service"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Ability configuration is required. Path may be provided via the
	// IDLERPG_CONFIG env var or defaults to ./idlerpg_config.yaml in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./idlerpg_config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid configuration", err, logging.Fields{
			"config_path": configPath,
			"hint":        "provide an 'abilities' array (id,name,kind,cooldown,mana_cost plus the kind's spec block) and optional server.address / database.path keys",
		})
	}

	// IDLERPG_DB overrides the configured DB path. Default to a data/
	// directory for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = cfg.DatabasePath
	}
	if dbPath == "" {
		dbPath = "./data/idlerpg.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	catalog := game.NewCatalog(cfg.Abilities)
	battles := service.NewBattleService(repo, catalog)
	matchmaker := service.NewMatchmaker(battles)
	handler := api.NewHandler(repo, catalog, battles, matchmaker)

	router := gin.Default()
	handler.RegisterRoutes(router)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
