package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xVc323/raspai/pkg/globalconfig"
	"github.com/xVc323/raspai/pkg/tui"
	"github.com/xVc323/raspai/pkg/utils"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past deployments, newest first",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := globalconfig.Load()
			if errors.Is(err, globalconfig.ErrNotInitialized) {
				fmt.Println("No deployments yet.")
				fmt.Println(tui.DimStyle.Render("Run raspai deploy to send the assistant to a device."))
				return nil
			}
			if err != nil {
				return err
			}

			if len(cfg.Deployments) == 0 {
				fmt.Println("No deployments yet.")
				return nil
			}

			for _, d := range cfg.Deployments {
				glyph := tui.SuccessStyle.Render("✓")
				if !d.Success {
					glyph = tui.ErrorStyle.Render("✗")
				}

				target := fmt.Sprintf("%s@%s:%s", d.User, d.Host, d.Dir)

				detail := fmt.Sprintf("%d files", d.FilesCopied)
				if d.IncludeLegacy {
					detail += ", legacy"
				}
				if d.RanSetup {
					detail += ", setup"
				}
				if d.Duration != "" {
					detail += ", " + d.Duration
				}

				fmt.Printf("%s %-36s %-14s %s\n", glyph, target,
					utils.FormatTimeAgo(d.StartedAt), tui.DimStyle.Render("("+detail+")"))
			}
			return nil
		},
	}
}
