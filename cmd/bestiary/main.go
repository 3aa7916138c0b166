// Package main is the bestiary command: it compiles creature definitions,
// serves them with hot reload, and simulates their loot.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/udisondev/bestiary/internal/config"
)

const DefaultConfigPath = "config/bestiary.yaml"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "bestiary",
	Short: "Creature definition compiler and loot engine",
	Long: `bestiary compiles declarative creature records into templates with
compiled abilities and reward trees, serves them with hot reload and
simulates loot generation.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath, "path to config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(lootCmd)
}

// loadConfig reads .env (if any), the config file and env overrides, then
// installs the slog handler for the configured level.
func loadConfig() (config.Server, error) {
	_ = godotenv.Load()

	path := configPath
	if p := os.Getenv("BESTIARY_CONFIG"); p != "" && !rootCmd.PersistentFlags().Changed("config") {
		path = p
	}

	cfg, err := config.LoadServer(path)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	return cfg, nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
