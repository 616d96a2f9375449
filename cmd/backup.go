package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/farzadkfc/cafetill/internal/backup"
)

var backupDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the whole store to a file or an S3 bucket",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		st := openStore(cfg)
		defer st.Close()

		ctx := context.Background()
		data, err := st.ExportAll(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting store: %v\n", err)
			os.Exit(1)
		}

		var dest backup.Destination
		where := backupDir
		if cfg.BackupBucket != "" {
			s3dest, err := backup.NewS3Destination(ctx, cfg.BackupRegion, cfg.BackupBucket)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error configuring S3 backup: %v\n", err)
				os.Exit(1)
			}
			dest = s3dest
			where = "s3://" + cfg.BackupBucket
		} else {
			dest = &backup.FileDestination{Dir: backupDir}
		}

		name := backup.SnapshotName(time.Now())
		if err := dest.Store(ctx, name, data); err != nil {
			fmt.Fprintf(os.Stderr, "Error storing backup: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("backup %s written to %s\n", name, where)
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <snapshot.json>",
	Short: "Replace store contents from a backup snapshot",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		st := openStore(cfg)
		defer st.Close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading snapshot: %v\n", err)
			os.Exit(1)
		}
		if err := st.ImportAll(context.Background(), data); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("store restored from", args[0])
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupDir, "dir", "backups", "Local directory for backups when no bucket is configured")
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
