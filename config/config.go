package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	redis_wrapper "github.com/joripage/stockex/pkg/infra/redis"
)

type AppConfig struct {
	ServiceName string                     `yaml:"service_name"`
	HTTPAddr    string                     `yaml:"http_addr"`
	InfoCache   *redis_wrapper.RedisConfig `yaml:"info_cache"`
	Symbols     []SymbolConfig             `yaml:"symbols"`
}

// SymbolConfig seeds one listed symbol with its static reference prices.
type SymbolConfig struct {
	Symbol       string  `yaml:"symbol"`
	Price        float64 `yaml:"price"`
	AveragePrice float64 `yaml:"average_price"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		sugar.Errorf("Invalid config: %v", err)
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}

func (c *AppConfig) validate() error {
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":5000"
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("at least one symbol must be configured")
	}
	for _, s := range c.Symbols {
		if s.Symbol == "" {
			return fmt.Errorf("symbol name must not be empty")
		}
		if s.Price <= 0 || s.AveragePrice <= 0 {
			return fmt.Errorf("symbol %s: seed prices must be positive", s.Symbol)
		}
	}
	return nil
}
