package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xVc323/raspai/pkg/project"
	"github.com/xVc323/raspai/pkg/session"
)

func newDeployCmd() *cobra.Command {
	var (
		assumeYes bool
		interval  int
		harshness int
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the assistant to a device over SSH",
		Long: `Copy the assistant payload to a Raspberry Pi over SSH.

The session asks for the target, shows a review, copies the files and
can run the device setup afterwards. The last used target becomes the
default for the next run.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDeploy(assumeYes, interval, harshness)
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the review confirmation")
	cmd.Flags().IntVar(&interval, "interval", 0, "Minutes between passive commentaries for the remote setup")
	cmd.Flags().IntVar(&harshness, "harshness", 0, "Passive commentary tone for the remote setup, 1 (mild) to 5 (brutal)")

	return cmd
}

func runDeploy(assumeYes bool, interval, harshness int) error {
	if harshness != 0 && (harshness < 1 || harshness > 5) {
		return fmt.Errorf("harshness must be between 1 and 5")
	}
	if interval < 0 {
		return fmt.Errorf("interval cannot be negative")
	}

	projectRoot, err := project.FindRoot()
	if err != nil {
		return fmt.Errorf("could not find the payload directory: %w", err)
	}

	return session.Run(session.RunOptions{
		ProjectRoot: projectRoot,
		AssumeYes:   assumeYes,
		Interval:    interval,
		Harshness:   harshness,
	})
}
