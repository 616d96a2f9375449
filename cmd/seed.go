package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/farzadkfc/cafetill/internal/factories"
)

var (
	seedCount int
	seedDays  int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the store with demo invoices for trying the till out",
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

		menu := (&factories.MenuFactory{}).CreateMenu()
		invoices := (&factories.InvoiceFactory{}).CreateInvoices(menu, seedCount, seedDays, settings.VATPercent)

		bar := progressbar.Default(int64(len(invoices)), "seeding invoices")
		for _, inv := range invoices {
			if err := st.SaveInvoice(ctx, inv); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving invoice: %v\n", err)
				os.Exit(1)
			}
			bar.Add(1)
		}
		fmt.Printf("seeded %d invoices over the past %d days\n", len(invoices), seedDays)
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 50, "Number of demo invoices to create")
	seedCmd.Flags().IntVar(&seedDays, "days", 7, "Spread invoices over this many past days")
	rootCmd.AddCommand(seedCmd)
}
