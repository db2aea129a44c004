package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzy/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the saved quiz session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.StateRepo().Delete(cmd.Context(), session.StateKey); err != nil {
			return err
		}
		fmt.Println("Saved session cleared.")
		return nil
	},
}
