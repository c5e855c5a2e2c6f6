package main

import (
	"log"
	"os"

	"techmart/config"
	"techmart/internal/clock"
	"techmart/internal/menu"
	"techmart/internal/service"
	"techmart/internal/store"
	"techmart/internal/util"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.App.Env, cfg.App.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting techmart")

	active := store.NewStore(cfg.Storage.ActiveFile, "active")
	inactive := store.NewStore(cfg.Storage.InactiveFile, "inactive")
	ledgers := store.NewLedgerDir(cfg.Storage.LedgerDir)

	catalog := service.NewCatalog(active, inactive, ledgers, cfg.Money.Step, clock.System{}, logger)

	m := menu.New(catalog, clock.System{}, os.Stdin, os.Stdout)
	if err := m.Run(); err != nil {
		log.Fatalf("Menu error: %v", err)
	}

	logger.Info("Techmart exited")
}
