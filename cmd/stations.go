package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkts/navirad/internal/config"
	"github.com/mkts/navirad/internal/repository"
	"github.com/mkts/navirad/internal/session"
)

// stationsCmd represents the stations command
var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Operations on stations already in the database",
}

// stationsListCmd lists the stations stored in the Navidrome database
var stationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List radio stations currently in the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := config.OpenDatabase(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to open Navidrome database: %w", err)
		}
		defer config.CloseDatabase(db)

		repo := repository.NewStationRepository(db)
		controller := session.NewController(nil, repo, cmd.InOrStdin(), cmd.OutOrStdout())

		return controller.ListStations(ctx)
	},
}

func init() {
	stationsCmd.AddCommand(stationsListCmd)
	rootCmd.AddCommand(stationsCmd)
}
