// Package cmd implements the stayhubctl commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"stayhub/internal/config"
	"stayhub/internal/infrastructure/storage/postgres"
	"stayhub/pkg/logger"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	// Global flags
	outputFormat string
	configPath   string

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "stayhubctl",
	Short: "Administration CLI for stayhub",
	Long: `stayhubctl manages a stayhub deployment directly against its database.

It creates tenants and superusers, applies schema migrations and adjusts
per-tenant document numbering.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}
		if outputFormat != "table" && outputFormat != "json" && outputFormat != "yaml" {
			return fmt.Errorf("invalid output format %q: use table, json or yaml", outputFormat)
		}

		path := configPath
		if path == "" {
			path = os.Getenv("STAYHUB_CONFIG")
		}
		if path == "" {
			path = config.DefaultConfigFile
		}

		var err error
		cfg, err = config.LoadFrom(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err = logger.New(logger.Config{Level: cfg.Logging.Level, Development: true})
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cmd.SetContext(logger.WithLogger(cmd.Context(), log))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $STAYHUB_CONFIG or "+config.DefaultConfigFile+")")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// database is an open pool with its transaction manager.
type database struct {
	pool *postgres.Pool
	txm  *postgres.TxManager
}

func (d *database) Close() { d.pool.Close() }

// openDatabase connects with a small pool; commands are short-lived.
func openDatabase(ctx context.Context) (*database, error) {
	poolCfg := postgres.PoolConfigFrom(cfg.Postgres)
	poolCfg.MaxConns = 2
	poolCfg.MinConns = 0

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &database{pool: pool, txm: postgres.NewTxManager(pool)}, nil
}

// formatOutput handles output formatting based on the --output flag.
// It reports false for table output, which each command renders itself.
func formatOutput(data any) (bool, error) {
	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(data)
	case "yaml":
		// Round-trip through JSON so json tags (and "-" exclusions) apply.
		raw, err := json.Marshal(data)
		if err != nil {
			return true, err
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return true, err
		}
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		defer encoder.Close()
		return true, encoder.Encode(doc)
	default:
		return false, nil
	}
}
