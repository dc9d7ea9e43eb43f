package imagecmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scentdex/scentdex-server/internal/imagesync"
)

func newRewriteCmd() *cobra.Command {
	var (
		mappingPath string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Point the catalog's image URLs at the downloaded copies",
		Long: `Replace the "Image URL" of every record listed in image-mapping.json
with its local public path. Records without a mapping keep their URL.
The catalog is rewritten in place unless --output is given.`,
		Example: `  # Rewrite the configured catalog in place
  scentdex-images rewrite

  # Write the result to a new file
  scentdex-images rewrite --output ./data/fragrances-local.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			if mappingPath == "" {
				mappingPath = filepath.Join(outputDir(cfg), imagesync.MappingFile)
			}
			mapping, err := imagesync.ReadMapping(mappingPath)
			if err != nil {
				return err
			}

			var result *imagesync.RewriteResult
			if outputPath == "" || outputPath == cfg.Catalog.DataPath {
				outputPath = cfg.Catalog.DataPath
				result, err = imagesync.RewriteFile(cfg.Catalog.DataPath, mapping)
			} else {
				result, err = rewriteTo(cfg.Catalog.DataPath, outputPath, mapping)
			}
			if err != nil {
				return err
			}

			log.Info("catalog rewritten",
				"output", outputPath,
				"updated", result.Updated,
				"skipped", result.Skipped,
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Updated: %d\n", result.Updated)
			fmt.Fprintf(out, "Skipped: %d\n", result.Skipped)
			fmt.Fprintf(out, "Written: %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&mappingPath, "mapping", "", "Path of image-mapping.json (default: next to the images directory)")
	cmd.Flags().StringVar(&outputPath, "output", "", "Write the rewritten catalog here instead of in place")

	return cmd
}

func rewriteTo(src, dst string, mapping map[int]string) (*imagesync.RewriteResult, error) {
	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}

	result, err := imagesync.Rewrite(in, out, mapping)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}
