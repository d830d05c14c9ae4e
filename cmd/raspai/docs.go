package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/xVc323/raspai/docs"
)

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Show the usage guide",
		Long:  `Render the built-in operator guide: wake word, passive listener, hardware wiring, service management and troubleshooting.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			// RenderUsage falls back to the raw markdown, which still
			// reads fine in a terminal.
			rendered, err := docs.RenderUsage(0)
			if err != nil {
				slog.Debug("glamour rendering failed", "err", err)
			}
			fmt.Print(rendered)
			return nil
		},
	}
}
