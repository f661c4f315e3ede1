package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/couchcryptid/hydra-monitor-service/internal/domain"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newSliderCmd() *cobra.Command {
	var (
		start, end, date string
		value            float64
		lookback         int
	)

	cmd := &cobra.Command{
		Use:   "slider",
		Short: "Map a date to a timeline slider position or back",
		Long: `Builds the imagery timeline from --start to --end (default today) and
selects either --date or --value. Prints the selected day, its slider
position, and an advisory when the day predates known imagery.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startDate, err := time.Parse(dateLayout, start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endDate := domain.Now().UTC()
			if end != "" {
				if endDate, err = time.Parse(dateLayout, end); err != nil {
					return fmt.Errorf("--end: %w", err)
				}
			}

			dateSet, valueSet := cmd.Flags().Changed("date"), cmd.Flags().Changed("value")
			if dateSet && valueSet {
				return errors.New("--date and --value are mutually exclusive")
			}

			tl := domain.NewTimeline(startDate, endDate, lookback)
			var sel domain.Selection
			switch {
			case dateSet:
				d, err := time.Parse(dateLayout, date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				sel = tl.Select(d)
			case valueSet:
				sel = tl.SelectValue(value)
			default:
				sel = tl.Select(tl.End)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "timeline  %s .. %s\n", tl.Start.Format(dateLayout), tl.End.Format(dateLayout))
			fmt.Fprintf(out, "imagery   from %s\n", tl.ImageryThreshold().Format(dateLayout))
			fmt.Fprintf(out, "selected  %s at %.2f\n", sel.Date.Format(dateLayout), sel.Value)
			if sel.Advisory != nil {
				fmt.Fprintf(out, "advisory  %s\n", sel.Advisory.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "timeline start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "timeline end date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&date, "date", "", "date to select (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&value, "value", 0, "slider position to select (0-100)")
	cmd.Flags().IntVar(&lookback, "lookback-years", domain.DefaultImageryLookbackYears, "years of known imagery before the end date")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}
