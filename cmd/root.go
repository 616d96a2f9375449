package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/farzadkfc/cafetill/internal/models"
	"github.com/farzadkfc/cafetill/internal/store"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cafetill",
	Short: "Offline-first café till with Google Sheets menu sync",
	Long: `cafetill is a point-of-sale tool for small cafés: the menu is pulled
from a published Google Sheet, orders are priced with a flat discount and VAT,
and finalized invoices are kept in a local SQLite store. Reports export to CSV
or parquet and the whole store can be backed up to a file or an S3 bucket.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./cafetill.yaml)")

	rootCmd.PersistentFlags().String("store-path", "cafetill.db", "Path to the SQLite store")
	rootCmd.PersistentFlags().String("export-dir", ".", "Directory for report exports")
	rootCmd.PersistentFlags().String("fetch-timeout", "15s", "HTTP timeout for menu fetches")
	rootCmd.PersistentFlags().String("backup-bucket", "", "S3 bucket for backups (empty keeps backups local)")
	rootCmd.PersistentFlags().String("backup-region", "", "AWS region of the backup bucket")

	viper.BindPFlag("store_path", rootCmd.PersistentFlags().Lookup("store-path"))
	viper.BindPFlag("export_dir", rootCmd.PersistentFlags().Lookup("export-dir"))
	viper.BindPFlag("fetch_timeout", rootCmd.PersistentFlags().Lookup("fetch-timeout"))
	viper.BindPFlag("backup_bucket", rootCmd.PersistentFlags().Lookup("backup-bucket"))
	viper.BindPFlag("backup_region", rootCmd.PersistentFlags().Lookup("backup-region"))
}

// loadConfig and openStore are shared by every subcommand; config file
// resolution and env binding happen inside models.LoadConfig.
func loadConfig() *models.Config {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func openStore(cfg *models.Config) *store.Store {
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	return st
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
