package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"techmart/internal/money"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Money   MoneyConfig
}

type AppConfig struct {
	Env     string
	LogFile string
}

type StorageConfig struct {
	ActiveFile   string
	InactiveFile string
	LedgerDir    string
}

type MoneyConfig struct {
	Step decimal.Decimal
}

func Load() *Config {
	_ = godotenv.Load()

	step, err := decimal.NewFromString(getEnv("MONEY_STEP", "0.00000001"))
	if err != nil || step.Sign() <= 0 {
		step = money.DefaultStep
	}

	cfg := &Config{
		App: AppConfig{
			Env:     getEnv("ENV", "development"),
			LogFile: getEnv("LOG_FILE", "techmart.log"),
		},
		Storage: StorageConfig{
			ActiveFile:   getEnv("ACTIVE_INVENTORY_FILE", "tech_mart_inventory.csv"),
			InactiveFile: getEnv("INACTIVE_INVENTORY_FILE", "inactive_tech_mart_inventory.csv"),
			LedgerDir:    getEnv("LEDGER_DIR", "inventory"),
		},
		Money: MoneyConfig{
			Step: step,
		},
	}

	log.Printf("Config loaded: env=%s, inventory=%s", cfg.App.Env, cfg.Storage.ActiveFile)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
