package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all environment-driven settings.
type Config struct {
	HTTPPort          string
	DBPath            string
	FleetPath         string
	LowStockThreshold int
	SimEvents         int
	SimSeed           int64
	SimMaxQty         int
	EnableSim         bool
	EnableWatcher     bool
	WebhookURL        string
	Environment       string
}

// MachineSeed is one machine entry in the fleet file.
type MachineSeed struct {
	ID  string `yaml:"id"`
	Qty int    `yaml:"qty"`
}

// FleetFile is the YAML document describing the simulated fleet.
type FleetFile struct {
	Threshold int           `yaml:"threshold"`
	Machines  []MachineSeed `yaml:"machines"`
}

// Load reads configuration from environment and optional .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:          getenv("PORT", "8080"),
		DBPath:            getenv("DB_PATH", "./vendsim.db"),
		FleetPath:         getenv("FLEET_PATH", "./fleet.yaml"),
		LowStockThreshold: clampInt(getenvInt("LOW_STOCK_THRESHOLD", 3), 1, 1000),
		SimEvents:         clampInt(getenvInt("SIM_EVENTS", 20), 0, 100000),
		SimSeed:           int64(getenvInt("SIM_SEED", 0)),
		SimMaxQty:         clampInt(getenvInt("SIM_MAX_QTY", 8), 1, 100),
		EnableSim:         getenvBool("ENABLE_SIM", true),
		EnableWatcher:     getenvBool("ENABLE_WATCHER", true),
		WebhookURL:        getenv("WEBHOOK_URL", ""),
		Environment:       getenv("ENVIRONMENT", "local"),
	}

	log.Printf("config: db=%s fleet=%s threshold=%d sim_events=%d env=%s", cfg.DBPath, cfg.FleetPath, cfg.LowStockThreshold, cfg.SimEvents, cfg.Environment)
	return cfg
}

// LoadFleetFile parses the fleet YAML. A missing file is not an error; the
// simulation then starts with an empty fleet and a default threshold.
func LoadFleetFile(path string) (FleetFile, error) {
	var ff FleetFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ff, nil
		}
		return ff, fmt.Errorf("read fleet file: %w", err)
	}
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return ff, fmt.Errorf("parse fleet file %s: %w", path, err)
	}
	return ff, nil
}

// Now returns the current time; indirection point for stores and journals.
func Now() time.Time { return time.Now() }

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
