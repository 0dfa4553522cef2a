// Package constants provides shared constants for the london-house-buying application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 penny)
	CurrencyTolerance = 0.01

	// MinimumInterestRate is the floor applied to scenario-adjusted mortgage rates
	MinimumInterestRate = 0.5

	// RemortgageIntervalYears is the renewal interval used to count remortgage events
	RemortgageIntervalYears = 5
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// EnvPrefix namespaces the environment variables viper reads
	EnvPrefix = "LHB"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum size for JSON request bodies (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024

	// DefaultRateLimitPerMinute is the default number of requests allowed per client per minute
	DefaultRateLimitPerMinute = 60
)

// Solver budgets
const (
	// MaxSolverIterations caps the IRR and break-even root-finders
	MaxSolverIterations = 50

	// SolverTolerance is the convergence tolerance for root-finders
	SolverTolerance = 1e-9

	// DefaultBreakevenLowerBound is the default lower appreciation bound (% per year)
	DefaultBreakevenLowerBound = -10.0

	// DefaultBreakevenUpperBound is the default upper appreciation bound (% per year)
	DefaultBreakevenUpperBound = 20.0
)
