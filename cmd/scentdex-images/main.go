// Package main provides the entry point for the scentdex-images tool.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/scentdex/scentdex-server/internal/imagecmd"
)

const version = "0.1.0"

func main() {
	root := imagecmd.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
