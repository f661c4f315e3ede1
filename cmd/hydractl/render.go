package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	"github.com/spf13/cobra"
)

func newRenderOrderCmd() *cobra.Command {
	var (
		file        string
		region      string
		regionsFile string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "render-order",
		Short: "Print map markers in draw order",
		Long: `Groups located projects by severity and prints them in the order the map
draws them: low, then high, then critical, each by descending score.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recs, err := loadRecords(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			projects, err := normalizeAll(recs)
			if err != nil {
				return err
			}
			catalog, err := domain.LoadRegionCatalog(regionsFile)
			if err != nil {
				return err
			}

			filtered := catalog.FilterByRegion(projects, region)
			markers := domain.MapMarkers(filtered)

			if output == "json" {
				return writeJSON(cmd.OutOrStdout(), domain.GroupBySeverity(markers))
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tID\tRISK\tSCORE\tNAME")
			for i, p := range markers {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\n", i+1, p.ID, p.Risk, p.Score, p.Name)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d located, %d without location\n",
				len(markers), len(filtered)-len(markers))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON array of raw project records (- for stdin)")
	cmd.Flags().StringVar(&region, "region", domain.AllRegions, "region name or alias to filter by")
	cmd.Flags().StringVar(&regionsFile, "regions-file", "", "region catalog YAML (default: embedded)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	return cmd
}
