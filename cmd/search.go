package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkts/navirad/internal/config"
	"github.com/mkts/navirad/internal/provider"
	"github.com/mkts/navirad/internal/repository"
	"github.com/mkts/navirad/internal/session"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the radio directory and import stations",
	Long: `Search the Radio-Browser directory and browse the results
interactively. Inside the browser: toggle stations by their number, select a
range with a-b, move with n/p/page, then 'add' to import the selection.`,
}

var searchNameCmd = &cobra.Command{
	Use:   "name [QUERY]",
	Short: "Search stations by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, provider.KindName, args[0])
	},
}

var searchTagCmd = &cobra.Command{
	Use:   "tag [QUERY]",
	Short: "Search stations by genre or tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, provider.KindTag, args[0])
	},
}

var searchCountryCmd = &cobra.Command{
	Use:   "country [QUERY]",
	Short: "Search stations by country",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, provider.KindCountry, args[0])
	},
}

var searchTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Browse the top voted stations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, provider.KindTopVoted, "")
	},
}

// runSearch wires config, database, provider and session together and runs
// one search-and-browse workflow.
func runSearch(cmd *cobra.Command, kind provider.SearchKind, query string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		cfg.TopLimit = limit
	}

	db, err := config.OpenDatabase(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open Navidrome database: %w", err)
	}
	defer config.CloseDatabase(db)

	repo := repository.NewStationRepository(db)
	client := provider.NewRadioBrowserClient(cfg.APIBaseURL, cfg.TopLimit)

	controller := session.NewController(client, repo, cmd.InOrStdin(), cmd.OutOrStdout())

	_, err = controller.SearchAndBrowse(ctx, kind, query)
	return err
}

func init() {
	searchTopCmd.Flags().Int("limit", 0, "How many top voted stations to fetch")

	searchCmd.AddCommand(searchNameCmd)
	searchCmd.AddCommand(searchTagCmd)
	searchCmd.AddCommand(searchCountryCmd)
	searchCmd.AddCommand(searchTopCmd)
	rootCmd.AddCommand(searchCmd)
}
