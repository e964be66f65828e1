package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/chadaustin/gmail-mbox-analyzer/internal/api"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/config"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/database"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/report"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/store"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <db>",
	Short: "Serve storage-usage analytics for a previously built index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := args[0]

		cfg, err := config.LoadWithValidation()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg.LogConfig(slog.Default())

		db, err := database.OpenRead(dbPath, cfg.ReadPoolSize)
		if err != nil {
			return fmt.Errorf("open index %s: %w", dbPath, err)
		}
		defer database.Close(db)

		st := store.New(db)

		// The grand total never changes while serving; compute it once.
		grandTotal, err := st.GrandTotal(cmd.Context())
		if err != nil {
			return fmt.Errorf("compute grand total: %w", err)
		}

		slog.Info("serving report",
			slog.String("database", filepath.Base(dbPath)),
			slog.Uint64("grand_total", grandTotal),
			slog.String("addr", cfg.ReportAddr),
		)

		e := api.NewRouter(&api.RouterConfig{
			Store:      st,
			Aggregator: report.NewAggregator(db, grandTotal),
			Database:   filepath.Base(dbPath),
			Logger:     slog.Default(),
		})
		return e.Start(cfg.ReportAddr)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
