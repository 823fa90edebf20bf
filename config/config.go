package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the optional YAML file applied before the environment.
const ConfigFileEnv = "CAFETERIA_CONFIG"

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logger  LoggerConfig  `yaml:"logger"`
	Store   StoreConfig   `yaml:"store"`
	Seed    SeedConfig    `yaml:"seed"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type ServerConfig struct {
	AppEnv string `yaml:"app_env"`
}

type LoggerConfig struct {
	Level             string `yaml:"level"`
	Encoding          string `yaml:"encoding"`
	DisableCaller     bool   `yaml:"disable_caller"`
	DisableStacktrace bool   `yaml:"disable_stacktrace"`
}

type StoreConfig struct {
	DataFile string `yaml:"data_file"`
	// FileMode is an octal permission string such as "0644".
	FileMode string `yaml:"file_mode"`
}

func (c StoreConfig) Mode() (os.FileMode, error) {
	m, err := strconv.ParseUint(c.FileMode, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode %q: %w", c.FileMode, err)
	}
	return os.FileMode(m), nil
}

type SeedConfig struct {
	AdminUsername   string `yaml:"admin_username"`
	AdminPassword   string `yaml:"admin_password"`
	StartingBalance string `yaml:"starting_balance"`
}

func (c SeedConfig) Balance() (decimal.Decimal, error) {
	b, err := decimal.NewFromString(c.StartingBalance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid starting balance %q: %w", c.StartingBalance, err)
	}
	return b, nil
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv: "dev",
		},
		Logger: LoggerConfig{
			Level:             "debug",
			Encoding:          "console",
			DisableCaller:     false,
			DisableStacktrace: true,
		},
		Store: StoreConfig{
			DataFile: "cafeteria_data.json",
			FileMode: "0644",
		},
		Seed: SeedConfig{
			AdminUsername:   "admin",
			AdminPassword:   "admin",
			StartingBalance: "1000",
		},
		Metrics: MetricsConfig{
			Addr: ":9102",
		},
	}
}

// LoadEnv returns the defaults overridden by the environment.
func LoadEnv() *Config {
	cfg := Default()
	applyEnv(cfg)
	return cfg
}

// Load applies, in order, the defaults, the YAML file named by
// CAFETERIA_CONFIG when set, and the environment.
func Load() (*Config, error) {
	cfg := Default()
	if path, ok := os.LookupEnv(ConfigFileEnv); ok && path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	if _, err := cfg.Store.Mode(); err != nil {
		return nil, err
	}
	if _, err := cfg.Seed.Balance(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.AppEnv = getEnv("APP_ENV", cfg.Server.AppEnv)

	cfg.Logger.Level = getEnv("LOGGER_LEVEL", cfg.Logger.Level)
	cfg.Logger.Encoding = getEnv("LOGGER_ENCODING", cfg.Logger.Encoding)
	cfg.Logger.DisableCaller = getEnvBool("LOGGER_DISABLE_CALLER", cfg.Logger.DisableCaller)
	cfg.Logger.DisableStacktrace = getEnvBool("LOGGER_DISABLE_STACKTRACE", cfg.Logger.DisableStacktrace)

	cfg.Store.DataFile = getEnv("CAFETERIA_DATA_FILE", cfg.Store.DataFile)
	cfg.Store.FileMode = getEnv("CAFETERIA_FILE_MODE", cfg.Store.FileMode)

	cfg.Seed.AdminUsername = getEnv("SEED_ADMIN_USERNAME", cfg.Seed.AdminUsername)
	cfg.Seed.AdminPassword = getEnv("SEED_ADMIN_PASSWORD", cfg.Seed.AdminPassword)
	cfg.Seed.StartingBalance = getEnv("SEED_STARTING_BALANCE", cfg.Seed.StartingBalance)

	cfg.Metrics.Addr = getEnv("METRICS_ADDR", cfg.Metrics.Addr)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
