package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/farzadkfc/cafetill/internal/app"
	"github.com/farzadkfc/cafetill/internal/menu"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the till with periodic menu sync until interrupted",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		st := openStore(cfg)
		defer st.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		register := app.NewRegister(st, menu.NewFetcher(cfg.FetchTimeout))
		log.Printf("till running, store at %s", cfg.StorePath)
		if err := register.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error running till: %v\n", err)
			os.Exit(1)
		}
		log.Println("till stopped")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
