package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gagatek/gagatek/internal/pipeline"
	"github.com/gagatek/gagatek/pkg/config"
	"github.com/gagatek/gagatek/pkg/logger"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := &cobra.Command{
		Use:   "gagatek",
		Short: "Gagatek - columnar encoding for delimited text files",
		Long: `Gagatek converts a delimited text file into a compact columnar binary
representation using per-column dictionary encoding and minimal-width
bit-packing. It is the storage core of an embeddable OLAP engine.`,
	}

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Gagatek v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Convert command
	var separator, configFile, logLevel string

	convertCmd := &cobra.Command{
		Use:   "convert <source-file>",
		Short: "Convert a delimited text file to columnar binary form",
		Long: `Convert a delimited text file to columnar binary form.

Produces four files next to the source: the intermediate id stream (.gag),
the packed binary file (.gaga), and the reverse and forward dictionaries
(.gagc, .gagd).

Example:
  gagatek convert -s , data/my_file.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewConfig(args[0])
			if configFile != "" {
				if err := config.Load(configFile, cfg); err != nil {
					return err
				}
			}
			cfg.SourcePath = args[0]
			if cmd.Flags().Changed("separator") || cfg.Separator == "" {
				cfg.Separator = separator
			}
			if cmd.Flags().Changed("log-level") || cfg.Logging.Level == "" {
				cfg.Logging.Level = logLevel
			}
			return runConvert(cfg)
		},
	}
	convertCmd.Flags().StringVarP(&separator, "separator", "s", config.DefaultSeparator, "column separator")
	convertCmd.Flags().StringVar(&configFile, "config", "", "optional YAML configuration file")
	convertCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(convertCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runConvert(cfg *config.Config) error {
	if err := logger.Init(logger.Config{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Encoding,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	// Fail before any output file is touched if the source is unreadable.
	f, err := os.Open(cfg.SourcePath)
	if err != nil {
		return fmt.Errorf("source file does not exist or is not readable: %w", err)
	}
	f.Close()

	logger.Info("starting conversion",
		zap.String("source", cfg.SourcePath),
		zap.String("separator", cfg.Separator))

	converter, err := pipeline.NewConverter(cfg)
	if err != nil {
		return err
	}

	result, err := converter.Convert(context.Background())
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		return err
	}

	logger.Info("conversion completed",
		zap.Int("columns", result.Columns),
		zap.Ints("widths", result.Widths),
		zap.String("packed", result.PackedPath),
		zap.Duration("duration", result.Duration))
	return nil
}
