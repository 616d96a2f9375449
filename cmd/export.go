package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/farzadkfc/cafetill/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all invoices as a CSV or parquet report",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		st := openStore(cfg)
		defer st.Close()

		invoices, err := st.ListInvoices(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing invoices: %v\n", err)
			os.Exit(1)
		}

		out := exportOut
		switch exportFormat {
		case "csv":
			if out == "" {
				name := fmt.Sprintf("invoices-export-%s.csv", time.Now().Format("2006-01-02"))
				out = filepath.Join(cfg.ExportDir, name)
			}
			report := export.InvoicesCSV(invoices)
			if err := os.WriteFile(out, []byte(report), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
				os.Exit(1)
			}
		case "parquet":
			if out == "" {
				name := fmt.Sprintf("invoices-export-%s.parquet", time.Now().Format("2006-01-02"))
				out = filepath.Join(cfg.ExportDir, name)
			}
			w, err := export.NewParquetWriter(out)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating parquet writer: %v\n", err)
				os.Exit(1)
			}
			bar := progressbar.Default(int64(len(invoices)), "exporting invoices")
			for _, inv := range invoices {
				if err := w.WriteInvoice(inv); err != nil {
					w.Close()
					fmt.Fprintf(os.Stderr, "Error writing invoice: %v\n", err)
					os.Exit(1)
				}
				bar.Add(1)
			}
			if err := w.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error finalizing report: %v\n", err)
				os.Exit(1)
			}
		default:
			fmt.Fprintf(os.Stderr, "Unknown format %q (want csv or parquet)\n", exportFormat)
			os.Exit(1)
		}

		fmt.Printf("exported %d invoices to %s\n", len(invoices), out)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Report format: csv or parquet")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path (default is a dated file in the export directory)")
	rootCmd.AddCommand(exportCmd)
}
