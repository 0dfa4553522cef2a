package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sarandavies/london-house-buying/internal/breakeven"
	"github.com/sarandavies/london-house-buying/internal/config"
	"github.com/sarandavies/london-house-buying/internal/engine"
	"github.com/sarandavies/london-house-buying/internal/server"
	"github.com/sarandavies/london-house-buying/pkg/constants"
	"github.com/sarandavies/london-house-buying/pkg/history"
	"github.com/sarandavies/london-house-buying/pkg/mortgage"
	"github.com/sarandavies/london-house-buying/pkg/output"
	"github.com/sarandavies/london-house-buying/pkg/validation"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	scenarioFlag := flag.String("scenario", "", "scenario override: base, rateSpikeCrash, rateDropBoom, structuralRepairs, random, all")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serve := flag.Bool("serve", false, "run the HTTP evaluation server instead of a one-shot comparison")
	flag.Parse()

	// Allow a local .env to supply environment overrides before viper reads
	// the config file.
	_ = godotenv.Load()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if *serve {
		srv, err := server.New(logger, conf.Server, version)
		if err != nil {
			logger.Fatal("failed to construct server",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if err := srv.Run(); err != nil {
			logger.Fatal("server terminated",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Resolve the scenario selection, honoring the CLI override. "all"
	// expands to one input per named scenario.
	inputs, err := conf.EngineInputs(*scenarioFlag)
	if err != nil {
		logger.Fatal("failed to resolve scenario selection",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Run the comparison for each selected scenario.
	results := make([]engine.Result, 0, len(inputs))
	for _, input := range inputs {
		result, err := engine.Evaluate(logger, input)
		if err != nil {
			logger.Fatal("failed to evaluate comparison",
				zap.String("op", "main"),
				zap.String("scenario", string(input.Scenario)),
				zap.Error(err),
			)
		}
		for _, warning := range result.Warnings {
			logger.Warn("Input warning: "+warning,
				zap.String("op", "main"),
			)
		}
		results = append(results, result)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	}

	if conf.Output.ShowSchedule && len(results) > 0 {
		first := results[0]
		rows := mortgage.Schedule(first.LoanAmount, first.AdjustedInterestRate, first.MonthlyPayment,
			conf.Property.TermYears*constants.MonthsPerYear)
		fmt.Printf("\n")
		switch outputFormat {
		case constants.OutputFormatPretty:
			output.PrettySchedule(rows)
		case constants.OutputFormatCSV:
			output.CsvSchedule(rows)
		}
	}

	if conf.Output.ShowHistory {
		fmt.Printf("\n")
		switch outputFormat {
		case constants.OutputFormatPretty:
			output.PrettyHistory(history.LondonPeriods())
		case constants.OutputFormatCSV:
			output.CsvHistory(history.LondonPeriods())
		}
	}

	if conf.Breakeven.Enabled && len(inputs) > 0 {
		solution, err := breakeven.Solve(logger, inputs[0], conf.Breakeven.LowerBound, conf.Breakeven.UpperBound)
		if err != nil {
			logger.Fatal("failed to solve break-even appreciation",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		fmt.Printf("\n")
		output.PrettyBreakeven(solution)
	}
}
