package imagecmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scentdex/scentdex-server/internal/catalog"
	"github.com/scentdex/scentdex-server/internal/imagesync"
	"github.com/scentdex/scentdex-server/internal/ratelimit"
)

// hostRate paces requests to one host, 100ms apart.
const hostRate = 10 // requests per second per host

func newDownloadCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download every record's image into the images directory",
		Long: `Download the image of every catalog record that has an "Image URL".

Files are named {index}-{slug}.jpg. Files already on disk are not fetched
again. Failed downloads are logged and skipped; they are listed in
failed-downloads.json. The index to public path mapping is written to
image-mapping.json for the rewrite command.`,
		Example: `  # Mirror all images with the configured paths
  scentdex-images download

  # Try the first 10 records only
  scentdex-images download --catalog ./data/fragrancesV2.json --limit 10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			c, err := catalog.LoadFile(cfg.Catalog.DataPath)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			records := c.Records
			if limit > 0 && limit < len(records) {
				records = records[:limit]
			}

			storage, err := imagesync.NewStorage(cfg.Images.Dir)
			if err != nil {
				return err
			}

			ledger, err := imagesync.OpenLedger(cfg.Images.LedgerPath)
			if err != nil {
				return err
			}
			defer ledger.Close()

			limiter := ratelimit.New(hostRate, 1)
			defer limiter.Stop()

			syncLog := log.WithComponent("imagesync").Logger
			syncer := imagesync.NewSyncer(storage, imagesync.NewFetcher(limiter, syncLog), ledger, cfg.Images.PublicPrefix, syncLog)

			report, runErr := syncer.Run(cmd.Context(), records)
			if report == nil {
				return runErr
			}

			mappingPath := filepath.Join(outputDir(cfg), imagesync.MappingFile)
			if err := imagesync.WriteMapping(mappingPath, report.Mapping); err != nil {
				return err
			}
			failuresPath := filepath.Join(outputDir(cfg), imagesync.FailuresFile)
			wroteFailures, err := imagesync.WriteFailures(failuresPath, report.Failures)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Downloaded: %d/%d\n", report.Downloaded, report.Total)
			fmt.Fprintf(out, "Failed: %d\n", report.Failed)
			fmt.Fprintf(out, "Skipped (no image URL): %d\n", report.Skipped)
			fmt.Fprintf(out, "Mapping: %s\n", mappingPath)
			if wroteFailures {
				fmt.Fprintf(out, "Failures: %s\n", failuresPath)
			}

			return runErr
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Only process the first N records (0 for all)")

	return cmd
}
