package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzy/internal/api"
	"github.com/abhisek/quizzy/internal/config"
	"github.com/abhisek/quizzy/internal/quizgen"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quiz HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTPAddr = addr
		}
		logger := cfg.NewLogger(os.Stderr)

		if cfg.DBPath != "" && !cmd.Flags().Changed("db") {
			_ = cmd.Flags().Set("db", cfg.DBPath)
		}
		st, dbPath, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		llmCfg := llmConfig()
		provider := buildProvider(ctx, llmCfg, st.EventRepo(), logger)

		genCfg := quizgen.DefaultConfig()
		genCfg.Logger = logger
		srv := api.NewServer(quizgen.New(provider, genCfg), api.Options{
			CORSOrigins:    cfg.CORSOrigins,
			RequestTimeout: cfg.RequestTimeout,
			Provider: api.ProviderStatus{
				APIKeyConfigured: llmCfg.APIKeyConfigured(),
				Model:            llmCfg.Model(),
			},
			Logger: logger,
		})

		logger.Info("server starting",
			"addr", cfg.HTTPAddr, "provider", llmCfg.Provider, "model", llmCfg.Model(), "db", dbPath)
		return srv.ListenAndServe(ctx, cfg.HTTPAddr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides HTTP_ADDR and PORT)")
}
