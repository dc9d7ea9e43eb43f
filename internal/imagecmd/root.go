// Package imagecmd implements the scentdex-images command line: mirroring
// catalog images locally and pointing the catalog at the local copies.
package imagecmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scentdex/scentdex-server/internal/config"
	"github.com/scentdex/scentdex-server/internal/logger"
)

// configFlags are forwarded to config.Load so the usual flag > env > .env
// precedence applies to the tool as well.
var configFlags = []string{"env", "log-level", "catalog", "images-dir", "images-prefix", "images-ledger", "env-file"}

// NewRootCmd builds the scentdex-images command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scentdex-images",
		Short: "Mirror fragrance images locally and rewrite the catalog to use them",
		Long: `scentdex-images downloads the image of every catalog record into the
public images directory, records the outcome in a ledger, and rewrites the
catalog's "Image URL" fields to point at the local copies.

Settings come from flags, then environment variables, then the .env file.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("env", "", "Environment (development, staging, production)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("catalog", "", "Path to the fragrance JSON export (env CATALOG_PATH)")
	flags.String("images-dir", "", "Directory for downloaded images (env IMAGES_DIR)")
	flags.String("images-prefix", "", "Public URL prefix for downloaded images (env IMAGES_PUBLIC_PREFIX)")
	flags.String("images-ledger", "", "Path of the download ledger (env IMAGES_LEDGER_PATH)")
	flags.String("env-file", ".env", "Path to .env file")

	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newRewriteCmd())
	cmd.AddCommand(newStatusCmd())

	return cmd
}

// loadConfig resolves the configuration from the flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var args []string
	for _, name := range configFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || !changedOrDefaulted(f) {
			continue
		}
		args = append(args, "-"+name, f.Value.String())
	}
	return config.Load(args)
}

// changedOrDefaulted reports whether f should be forwarded. env-file always
// is, since config.Load has no notion of the cobra default.
func changedOrDefaulted(f *pflag.Flag) bool {
	return f.Changed || (f.Name == "env-file" && f.Value.String() != "")
}

func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Config{
		Writer:      os.Stderr,
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})
}

// outputDir is where the mapping and failure reports go: next to the images directory.
func outputDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Images.Dir)
}
