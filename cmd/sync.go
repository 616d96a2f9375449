package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/farzadkfc/cafetill/internal/menu"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the menu from the configured sheet once and print it",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		st := openStore(cfg)
		defer st.Close()

		ctx := context.Background()
		settings, err := st.GetSettings(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			os.Exit(1)
		}
		if settings.SheetURL == "" {
			fmt.Fprintln(os.Stderr, "No sheet url configured; set googleSheetUrl in settings first")
			os.Exit(1)
		}

		fetcher := menu.NewFetcher(cfg.FetchTimeout)
		items, err := fetcher.FetchMenu(ctx, settings.SheetURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching menu: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%d active menu items\n", len(items))
		for _, item := range items {
			fmt.Printf("  %-12s %-30s %10.0f %s\n", item.Category, item.Name, item.Price, settings.Currency)
		}
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
