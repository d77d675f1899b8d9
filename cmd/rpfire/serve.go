package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/rpfire/internal/api"
	"github.com/rgehrsitz/rpfire/internal/calculation"
	"github.com/rgehrsitz/rpfire/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and the browser form",
	Long: `Serve the JSON API under /api and the HTML input form at /.

Settings come from RPFIRE_PORT, RPFIRE_LOG_LEVEL, RPFIRE_ALLOWED_ORIGINS,
RPFIRE_TAX_RULES and RPFIRE_SHUTDOWN_TIMEOUT; flags override them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := serverConfig(cmd)
		if err != nil {
			return err
		}

		log := logrus.New()
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetOutput(os.Stdout)
		level, _ := cfg.Level()
		log.SetLevel(level)

		rules, err := config.ResolveTaxRules(cfg.TaxRulesPath)
		if err != nil {
			return err
		}
		engine := calculation.NewCalculationEngineWithRules(rules)
		engine.SetLogger(log)

		handler := api.NewHandler(engine, config.NewInputParser(), log)
		router := api.NewRouter(handler, cfg.AllowedOrigins)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return api.NewServer(cfg.Addr(), router, log, cfg.ShutdownTimeout).Run(ctx)
	},
}

// serverConfig loads env settings and applies any flags the user set
func serverConfig(cmd *cobra.Command) (*config.ServerConfig, error) {
	cfg, err := config.NewServerConfig()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetString("port")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("tax-rules") {
		cfg.TaxRulesPath, _ = cmd.Flags().GetString("tax-rules")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on (overrides RPFIRE_PORT)")
	serveCmd.Flags().String("log-level", "info", "Log level (overrides RPFIRE_LOG_LEVEL)")
	serveCmd.Flags().String("tax-rules", "", "Path to a tax rules YAML snapshot (overrides RPFIRE_TAX_RULES)")

	rootCmd.AddCommand(serveCmd)
}
