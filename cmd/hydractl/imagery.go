package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/hydra-monitor-service/internal/adapter/mapbox"
	"github.com/spf13/cobra"
)

func newImageryCmd() *cobra.Command {
	var (
		lat, lng      float64
		zoom          int
		width, height int
		token         string
		tiles         bool
	)

	cmd := &cobra.Command{
		Use:   "imagery",
		Short: "Build a satellite imagery URL for a coordinate",
		Long: `Prints the Mapbox static satellite URL centered on --lat/--lng, or the
satellite tile layer template with --tiles. The token defaults to
MAPBOX_TOKEN; without one no URL is produced.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				token = os.Getenv("MAPBOX_TOKEN")
			}
			img := mapbox.NewImagery(token, nil)

			var (
				u  string
				ok bool
			)
			if tiles {
				u, ok = img.TileLayerURL()
			} else {
				u, ok = img.StaticMapURL(lat, lng, zoom, width, height)
			}
			if !ok {
				if !img.Enabled() {
					return errors.New("imagery unavailable: no Mapbox token configured")
				}
				return fmt.Errorf("imagery unavailable: invalid coordinates %g, %g", lat, lng)
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	cmd.Flags().IntVar(&zoom, "zoom", 16, "zoom level (0-22)")
	cmd.Flags().IntVar(&width, "width", 600, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 400, "image height in pixels")
	cmd.Flags().StringVar(&token, "token", "", "Mapbox access token (default $MAPBOX_TOKEN)")
	cmd.Flags().BoolVar(&tiles, "tiles", false, "print the tile layer template instead")
	cmd.MarkFlagsRequiredTogether("lat", "lng")
	return cmd
}
