// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/viper"

	"github.com/sarandavies/london-house-buying/internal/cache"
	"github.com/sarandavies/london-house-buying/internal/engine"
	"github.com/sarandavies/london-house-buying/pkg/constants"
	"github.com/sarandavies/london-house-buying/pkg/validation"
)

// Configuration holds all configuration for london-house-buying. The
// property, rent, fee, and market sections feed the engine directly; the
// rest steers scenario selection, presentation, and the server.
type Configuration struct {
	Property       engine.LoanParameters
	Rent           engine.RentParameters
	Fees           engine.FeeParameters
	Market         engine.MarketParameters
	Scenario       string
	ComparisonMode string
	RandomSeed     int64
	Breakeven      BreakevenConfig
	Logging        LoggingConfig
	Output         OutputConfig
	Server         ServerConfig
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format       string `yaml:"format,omitempty"` // pretty, csv
	ShowSchedule bool   `yaml:"showSchedule,omitempty"`
	ShowHistory  bool   `yaml:"showHistory,omitempty"`
}

// BreakevenConfig enables the break-even appreciation solve in one-shot
// runs and bounds its search interval (percent appreciation per year).
type BreakevenConfig struct {
	Enabled    bool    `yaml:"enabled,omitempty"`
	LowerBound float64 `yaml:"lowerBound,omitempty"`
	UpperBound float64 `yaml:"upperBound,omitempty"`
}

// ServerConfig defines runtime parameters for the HTTP server.
type ServerConfig struct {
	Address            string       `yaml:"address"`
	MaxRequestSize     string       `yaml:"maxRequestSize"`
	RateLimitPerMinute int          `yaml:"rateLimitPerMinute"`
	Cache              cache.Config `yaml:"cache"`
	TracingEndpoint    string       `yaml:"tracingEndpoint"`
	requestSizeBytes   int64
}

// RequestSizeBytes returns the configured request body limit in bytes.
func (c *ServerConfig) RequestSizeBytes() int64 {
	return c.requestSizeBytes
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with LHB override
// file values, and documented defaults fill any absent keys.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.normalize(); err != nil {
		return nil, err
	}

	return &configuration, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("property.housePrice", 600000.0)
	v.SetDefault("property.deposit", 100000.0)
	v.SetDefault("property.annualInterestRate", 4.25)
	v.SetDefault("property.termYears", 25)

	v.SetDefault("rent.monthlyRent", 2250.0)
	v.SetDefault("rent.annualGrowthRate", 2.0)
	v.SetDefault("rent.grossYield", 4.5)
	v.SetDefault("rent.netYield", 2.5)

	v.SetDefault("fees.transactionFees", 15000.0)
	v.SetDefault("fees.remortgageCost", 2000.0)
	v.SetDefault("fees.renovationCosts", 0.0)
	v.SetDefault("fees.renovationUplift", 0.0)
	v.SetDefault("fees.annualMaintenanceRate", 1.0)
	v.SetDefault("fees.saleFeeRate", 3.0)

	v.SetDefault("market.saleYear", 5)
	v.SetDefault("market.appreciationRate", 2.6)
	v.SetDefault("market.altInvestmentRate", 5.0)

	v.SetDefault("scenario", "base")
	v.SetDefault("comparisonMode", "investedNetWorth")
	v.SetDefault("randomSeed", 0)

	v.SetDefault("breakeven.enabled", false)
	v.SetDefault("breakeven.lowerBound", constants.DefaultBreakevenLowerBound)
	v.SetDefault("breakeven.upperBound", constants.DefaultBreakevenUpperBound)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.showSchedule", false)
	v.SetDefault("output.showHistory", false)

	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxRequestSize", fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes))
	v.SetDefault("server.rateLimitPerMinute", constants.DefaultRateLimitPerMinute)
	v.SetDefault("server.cache.backend", "memory")
	v.SetDefault("server.cache.redisAddress", "localhost:6379")
	v.SetDefault("server.cache.ttl", "10m")
	v.SetDefault("server.tracingEndpoint", "")
}

func (conf *Configuration) normalize() error {
	conf.Scenario = strings.TrimSpace(conf.Scenario)
	if conf.Scenario == "" {
		conf.Scenario = "base"
	}

	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		return err
	}

	if conf.Breakeven.UpperBound <= conf.Breakeven.LowerBound {
		return fmt.Errorf("breakeven bounds invalid: upper %.2f must exceed lower %.2f",
			conf.Breakeven.UpperBound, conf.Breakeven.LowerBound)
	}

	return conf.Server.normalize()
}

func (c *ServerConfig) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = constants.DefaultRateLimitPerMinute
	}
	if c.Cache.TTL < 0 {
		c.Cache.TTL = 0
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 10 * time.Minute
	}

	sizeStr := strings.TrimSpace(c.MaxRequestSize)
	if sizeStr == "" {
		c.requestSizeBytes = constants.DefaultMaxRequestSizeBytes
		c.MaxRequestSize = fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxRequestSizeBytes
	}
	c.requestSizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxRequestSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	if numPart == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
