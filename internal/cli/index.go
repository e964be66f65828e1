package cli

import (
	"fmt"
	"log/slog"

	"github.com/chadaustin/gmail-mbox-analyzer/internal/database"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/ingest"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/store"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index <mbox> <db>",
	Short: "Build a sqlite index from an mbox file",
	Long: `Build a sqlite index from an mbox file.

Any previous contents of the index are discarded: indexing is always a
destructive full rebuild, never an incremental merge.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mboxPath, dbPath := args[0], args[1]

		db, err := database.OpenWrite(dbPath)
		if err != nil {
			return fmt.Errorf("open index %s: %w", dbPath, err)
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}

		pipeline := ingest.New(store.New(db), slog.Default())
		if _, err := pipeline.Run(cmd.Context(), mboxPath); err != nil {
			return fmt.Errorf("index %s: %w", mboxPath, err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
