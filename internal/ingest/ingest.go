package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chadaustin/gmail-mbox-analyzer/internal/mbox"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/normalize"
	"github.com/chadaustin/gmail-mbox-analyzer/internal/store"
	"github.com/google/uuid"
)

// Summary reports the outcome of one ingestion run
type Summary struct {
	RunID    uuid.UUID
	Indexed  int
	Skipped  int
	Duration time.Duration
}

// Pipeline drives a full index rebuild: mbox entries are split, normalized
// and inserted one at a time inside a single store transaction. Entries whose
// headers cannot be parsed are logged and skipped; archive and storage
// failures abort the run.
type Pipeline struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a new ingestion Pipeline
func New(st store.Store, logger *slog.Logger) *Pipeline {
	return &Pipeline{store: st, logger: logger}
}

// Run rebuilds the index from the mbox file at mboxPath.
func (p *Pipeline) Run(ctx context.Context, mboxPath string) (*Summary, error) {
	summary := &Summary{RunID: uuid.New()}
	start := time.Now()

	p.logger.Info("starting index rebuild",
		slog.String("run_id", summary.RunID.String()),
		slog.String("mbox", mboxPath),
	)

	err := p.store.Rebuild(ctx, func(insert store.InsertFunc) error {
		entry := 0
		return mbox.ScanFile(mboxPath, func(raw []byte) error {
			entry++

			record, err := normalize.Normalize(raw)
			if err != nil {
				if errors.Is(err, normalize.ErrUnparsableEntry) {
					summary.Skipped++
					p.logger.Warn("skipping unparsable entry",
						slog.String("run_id", summary.RunID.String()),
						slog.Int("entry", entry),
						slog.String("error", err.Error()),
					)
					return nil
				}
				return err
			}

			if err := insert(&record.Message, record.Labels); err != nil {
				return err
			}
			summary.Indexed++
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	p.logger.Info("index rebuild complete",
		slog.String("run_id", summary.RunID.String()),
		slog.Int("indexed", summary.Indexed),
		slog.Int("skipped", summary.Skipped),
		slog.Duration("duration", summary.Duration),
	)
	return summary, nil
}
