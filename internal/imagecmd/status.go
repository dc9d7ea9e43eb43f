package imagecmd

import (
	"fmt"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/scentdex/scentdex-server/internal/imagesync"
)

func newStatusCmd() *cobra.Command {
	var showFailed bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarize the download ledger",
		Long: `Print the outcome of the last download run and the per-status totals
recorded in the ledger. With --failed, list every record whose last attempt failed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ledger, err := imagesync.OpenLedger(cfg.Images.LedgerPath)
			if err != nil {
				return err
			}
			defer ledger.Close()

			out := cmd.OutOrStdout()

			last, err := ledger.LastRun()
			if err != nil {
				return err
			}
			if last == nil {
				fmt.Fprintln(out, "No download run recorded yet.")
				return nil
			}

			fmt.Fprintf(out, "Last run: %s (%s, took %s)\n",
				last.RunID,
				last.FinishedAt.Format("2006-01-02 15:04:05"),
				last.FinishedAt.Sub(last.StartedAt).Round(time.Millisecond),
			)
			fmt.Fprintf(out, "  downloaded %d, failed %d, skipped %d of %d\n",
				last.Downloaded, last.Failed, last.Skipped, last.Total)

			counts, err := ledger.Counts()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Ledger:")
			for _, st := range []imagesync.Status{imagesync.StatusDownloaded, imagesync.StatusExisting, imagesync.StatusFailed} {
				fmt.Fprintf(out, "  %-10s %d\n", st, counts[st])
			}

			if !showFailed || counts[imagesync.StatusFailed] == 0 {
				return nil
			}

			entries, err := ledger.All()
			if err != nil {
				return err
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 80
			tbl.AddRow("INDEX", "NAME", "ERROR")
			for _, e := range entries {
				if e.Status == imagesync.StatusFailed {
					tbl.AddRow(e.Index, e.Name, e.Error)
				}
			}
			fmt.Fprintln(out, "Failed:")
			fmt.Fprintln(out, tbl)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showFailed, "failed", false, "List records whose last download failed")

	return cmd
}
