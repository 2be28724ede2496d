package commands

import (
	"reportiq/internal/config"
	"reportiq/internal/dataset"
	"reportiq/internal/engine"
	"reportiq/internal/logging"
	"reportiq/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "reportiq",
	Short: "ReportIQ is a vulnerability report analytics MCP server",
	Long: `An MCP server that ingests vulnerability-scan spreadsheets, normalizes their
schema, applies conjunctive filters, and serves aggregate views (counts,
trends, SLA and resolution-time statistics) for report generation.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("ReportIQ starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("MCP Server starting Stdio loop")

		loader := dataset.NewLoader()
		loader.ExtendAliases(cfg.ExtraAliases())
		eng := engine.New(loader)

		server := mcp.NewServer(cfg, loader, eng)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("Server terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
