package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"trinity-backtest/internal/analysis"
	"trinity-backtest/internal/model"
	"trinity-backtest/internal/strategy"

	"gopkg.in/yaml.v3"
)

// Trinity study window.
const (
	DefaultStartYear = 1926
	DefaultEndYear   = 1995
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Study     StudyConfig     `yaml:"study"`
	Portfolio PortfolioConfig `yaml:"portfolio"`
	Grid      GridConfig      `yaml:"grid"`
	API       APIConfig       `yaml:"api"`
	Log       LogConfig       `yaml:"log"`
}

type DataConfig struct {
	// Shiller-format CSV with YEAR,P,D,R,RLONG,CPI columns.
	CSV string `yaml:"csv"`
	// PercentRates means R and RLONG are percentages (Shiller's layout).
	// A pointer so an explicit false survives defaulting.
	PercentRates *bool `yaml:"percent_rates"`
}

type StudyConfig struct {
	StartYear int `yaml:"start_year"`
	EndYear   int `yaml:"end_year"`
}

type PortfolioConfig struct {
	InitialBalance  float64 `yaml:"initial_balance"`
	StockAllocation float64 `yaml:"stock_allocation"`
	Years           int     `yaml:"years"`
	WithdrawalRate  float64 `yaml:"withdrawal_rate"`
	Strategy        string  `yaml:"strategy"`
}

type GridConfig struct {
	analysis.Grid `yaml:",inline"`
	Workers       int `yaml:"workers"`
}

type APIConfig struct {
	Port           int           `yaml:"port"`
	Env            string        `yaml:"env"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	// RateLimit is grid scans per second; zero disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console, json or auto
}

// Load reads path (optional when empty), applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	var c Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TRINITY_DATA"); v != "" {
		c.Data.CSV = v
	}
	if v := os.Getenv("API_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("API_PORT: %w", err)
		}
		c.API.Port = port
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.API.Env = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Data.PercentRates == nil {
		t := true
		c.Data.PercentRates = &t
	}
	if c.Study.StartYear == 0 {
		c.Study.StartYear = DefaultStartYear
	}
	if c.Study.EndYear == 0 {
		c.Study.EndYear = DefaultEndYear
	}
	if c.Portfolio.InitialBalance == 0 {
		c.Portfolio.InitialBalance = model.DefaultInitialBalance
	}
	if c.Portfolio.Strategy == "" {
		c.Portfolio.Strategy = strategy.Default().Name()
	}
	def := analysis.DefaultGrid()
	if len(c.Grid.StockAllocations) == 0 {
		c.Grid.StockAllocations = def.StockAllocations
	}
	if len(c.Grid.Years) == 0 {
		c.Grid.Years = def.Years
	}
	if len(c.Grid.WithdrawalRates) == 0 {
		c.Grid.WithdrawalRates = def.WithdrawalRates
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.API.Env == "" {
		c.API.Env = "development"
	}
	if len(c.API.AllowedOrigins) == 0 {
		c.API.AllowedOrigins = []string{"*"}
	}
	if c.API.CacheTTL == 0 {
		c.API.CacheTTL = 10 * time.Minute
	}
	if c.API.RateLimit > 0 && c.API.RateBurst == 0 {
		c.API.RateBurst = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "auto"
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Study.EndYear < c.Study.StartYear {
		return fmt.Errorf("study.end_year %d is before study.start_year %d", c.Study.EndYear, c.Study.StartYear)
	}
	if _, err := strategy.ByName(c.Portfolio.Strategy); err != nil {
		return fmt.Errorf("portfolio.strategy: %w", err)
	}
	if err := c.Portfolio.ToModelParams().Validate(); err != nil {
		return fmt.Errorf("portfolio config invalid: %w", err)
	}
	if c.Portfolio.Years < 0 {
		return errors.New("portfolio.years must be >= 0")
	}
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("grid config invalid: %w", err)
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("api.port %d out of range", c.API.Port)
	}
	if c.API.RateLimit < 0 || c.API.RateBurst < 0 {
		return errors.New("api.rate_limit and api.rate_burst must be >= 0")
	}
	switch c.Log.Format {
	case "auto", "console", "json":
	default:
		return fmt.Errorf("log.format %q must be auto, console or json", c.Log.Format)
	}
	return nil
}

func (p PortfolioConfig) ToModelParams() model.PortfolioParams {
	return model.PortfolioParams{
		InitialBalance:  p.InitialBalance,
		StockAllocation: p.StockAllocation,
		WithdrawalRate:  p.WithdrawalRate,
	}
}

// Inputs bundles loaded market records with the configured portfolio and window.
func (c *Config) Inputs(records []model.MarketRecord) model.SimulationInputs {
	return model.SimulationInputs{
		Records:   records,
		Portfolio: c.Portfolio.ToModelParams(),
		StartYear: c.Study.StartYear,
		EndYear:   c.Study.EndYear,
	}
}

// MergePortfolio overlays non-zero fields from override onto base.
// This is used to apply CLI flags or request fields over the configured portfolio.
func MergePortfolio(base, override PortfolioConfig) PortfolioConfig {
	out := base
	if override.InitialBalance != 0 {
		out.InitialBalance = override.InitialBalance
	}
	// A zero allocation (all bonds) is meaningful, but cannot be told apart
	// from "unset" here; callers pass it explicitly when they mean it.
	if override.StockAllocation != 0 {
		out.StockAllocation = override.StockAllocation
	}
	if override.Years != 0 {
		out.Years = override.Years
	}
	if override.WithdrawalRate != 0 {
		out.WithdrawalRate = override.WithdrawalRate
	}
	if override.Strategy != "" {
		out.Strategy = override.Strategy
	}
	return out
}
