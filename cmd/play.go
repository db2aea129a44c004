package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzy/internal/app"
	"github.com/abhisek/quizzy/internal/client"
	"github.com/abhisek/quizzy/internal/config"
	"github.com/abhisek/quizzy/internal/quizgen"
	"github.com/abhisek/quizzy/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take a quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(c *cobra.Command) {
	c.Flags().String("api", "", "Quiz API base URL (overrides QUIZZY_API_BASE)")
	c.Flags().Bool("local", false, "Generate quizzes in-process instead of calling the API")
}

// runPlay opens the store, restores the last session and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := config.FromEnv()

	if cfg.DBPath != "" && !cmd.Flags().Changed("db") {
		_ = cmd.Flags().Set("db", cfg.DBPath)
	}
	st, dbPath, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The TUI owns the terminal, so logs go next to the database.
	var logOut io.Writer = io.Discard
	if f, err := os.OpenFile(filepath.Join(filepath.Dir(dbPath), "quizzy.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		defer f.Close()
		logOut = f
	}
	logger := cfg.NewLogger(logOut)

	var backend session.Backend
	if local, _ := cmd.Flags().GetBool("local"); local {
		provider := buildProvider(ctx, llmConfig(), st.EventRepo(), logger)
		genCfg := quizgen.DefaultConfig()
		genCfg.Logger = logger
		backend = client.NewLocal(quizgen.New(provider, genCfg), logger)
	} else {
		base := cfg.APIBase
		if v, _ := cmd.Flags().GetString("api"); v != "" {
			base = v
		}
		c := client.New(base)
		if err := c.Ping(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "Quiz API not reachable at", base)
			fmt.Fprintln(os.Stderr, "Start it with `quizzy serve` or run `quizzy play --local`.")
			return err
		}
		backend = c
	}

	sess, err := session.Load(ctx, backend, st.StateRepo(), session.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	defer sess.Wait()

	return app.Run(sess)
}
