package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/fiscalpro/internal/logging"
	"github.com/rgehrsitz/fiscalpro/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// logger is built in the root pre-run hook and shared by every command
var logger = zap.NewNop().Sugar()

// closeLog releases the log output opened alongside logger
var closeLog = func() {}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fiscalpro %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// envOr returns the environment variable or the fallback
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var rootCmd = &cobra.Command{
	Use:   "fiscalpro",
	Short: "Brazilian tax regime comparison CLI",
	Long: `Compare the tax burden of a business scenario under Lucro Presumido,
Lucro Real, Simples Nacional and RET, and manage the ICMS and segment rate
tables the comparison reads.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := logging.ConfigFromEnv()
		if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
			cfg.Level = "debug"
		}
		zl, cleanup, err := logging.New(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		closeLog()
		logger, closeLog = zl.Sugar(), cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
		closeLog()
		closeLog = func() {}
	},
}

// openStore opens the catalog store selected by the persistent flags
func openStore(cmd *cobra.Command) (store.Store, error) {
	kind, _ := cmd.Flags().GetString("store")
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = defaultCatalogPath(store.Kind(kind))
	}
	logger.Debugf("opening %s catalog store at %s", kind, path)

	s, err := store.Open(store.Kind(kind), path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog store: %w", err)
	}
	return s, nil
}

func defaultCatalogPath(kind store.Kind) string {
	if kind == store.KindSQLite {
		return "fiscalpro.db"
	}
	return "catalog.yaml"
}

func init() {
	rootCmd.PersistentFlags().String("catalog", envOr("FISCALPRO_CATALOG", ""), "Catalog file or database (default catalog.yaml, or fiscalpro.db for sqlite)")
	rootCmd.PersistentFlags().String("store", envOr("FISCALPRO_STORE", string(store.KindYAML)), "Catalog store (yaml, sqlite)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of every intermediate figure")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(breakEvenCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
