package main

import (
	"github.com/cppla/dailycheckin/calendar"
	"github.com/cppla/dailycheckin/config"
	"github.com/cppla/dailycheckin/models"
	"github.com/cppla/dailycheckin/routes"
	"github.com/cppla/dailycheckin/services"
	"github.com/cppla/dailycheckin/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db, err := config.OpenDatabase(cfg)
	if err != nil {
		utils.Sugar.Fatalf("database init failed: %v", err)
	}
	if err := config.Migrate(db, &models.CheckIn{}); err != nil {
		utils.Sugar.Fatalf("database migration failed: %v", err)
	}

	store := services.NewCachedStore(services.NewGormStore(db), utils.NewRedis(cfg), cfg.CacheTTL())
	ledger := services.NewLedgerService(store, calendar.SystemClock{Location: cfg.Location()})

	r := routes.SetupRouter(cfg, ledger)

	utils.Sugar.Infow("starting server", "port", cfg.AppPort, "db_driver", cfg.DBDriver, "today", ledger.Today())
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
