package main

import (
	"fmt"

	kafkaadapter "github.com/couchcryptid/hydra-monitor-service/internal/adapter/kafka"
	"github.com/couchcryptid/hydra-monitor-service/internal/adapter/sqlite"
	"github.com/couchcryptid/hydra-monitor-service/internal/config"
	"github.com/couchcryptid/hydra-monitor-service/internal/observability"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var (
		dbPath   string
		topic    string
		keyField string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Publish the legacy SQLite project table to the raw record topic",
		Long: `Reads every row of the projects table, labels it with the backend's
triage rules, and publishes it as a raw record. Brokers and the default topic
come from the service environment (KAFKA_BROKERS, KAFKA_SOURCE_TOPIC).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if topic != "" {
				cfg.KafkaSourceTopic = topic
			}
			logger := observability.NewLogger(cfg)
			ctx := cmd.Context()

			src, err := sqlite.Open(ctx, dbPath, logger)
			if err != nil {
				return err
			}
			defer src.Close()

			recs, err := src.Records(ctx)
			if err != nil {
				return err
			}

			if dryRun {
				return writeJSON(cmd.OutOrStdout(), recs)
			}

			pub := kafkaadapter.NewPublisher(cfg, logger)
			defer pub.Close()
			if err := pub.Publish(ctx, recs, keyField); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %d records to %s\n", len(recs), cfg.KafkaSourceTopic)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "path to the legacy SQLite database")
	cmd.Flags().StringVar(&topic, "topic", "", "override the raw record topic")
	cmd.Flags().StringVar(&keyField, "key-field", "id", "record field used as the message key")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the records instead of publishing")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}
