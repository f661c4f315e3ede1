package main

import (
	"fmt"
	"os"
	"time"

	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var (
		file        string
		out         string
		processedAt string
	)

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Write the normalized form of raw project records",
		Long: `Runs raw records through the pipeline's normalization (without geocoding)
and writes the resulting projects as JSON. --processed-at pins the processed
timestamp so generated fixtures are reproducible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if processedAt != "" {
				ts, err := time.Parse(time.RFC3339, processedAt)
				if err != nil {
					return fmt.Errorf("--processed-at: %w", err)
				}
				domain.SetClock(clockwork.NewFakeClockAt(ts))
				defer domain.SetClock(nil)
			}

			recs, err := loadRecords(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			projects, err := normalizeAll(recs)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				return writeJSON(cmd.OutOrStdout(), projects)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := writeJSON(f, projects); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d projects to %s\n", len(projects), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON array of raw project records (- for stdin)")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output path (- for stdout)")
	cmd.Flags().StringVar(&processedAt, "processed-at", "", "fixed processed_at timestamp (RFC 3339)")
	return cmd
}
