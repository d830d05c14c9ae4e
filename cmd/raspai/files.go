package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xVc323/raspai/pkg/manifest"
	"github.com/xVc323/raspai/pkg/tui"
	"github.com/xVc323/raspai/pkg/validation"
)

func newFilesCmd() *cobra.Command {
	var (
		verify bool
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the deployment payload",
		Long: `List the files a deployment copies to the device: the essential
set (always) and the legacy set (only when opted in).

With --verify, check the local payload: essential files present, .env
parseable with a usable API key, requirements.txt non-empty.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runFiles(verify, dir)
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Validate the local payload")
	cmd.Flags().StringVar(&dir, "dir", "", "Payload directory (default: the payload directory found from here)")

	return cmd
}

func runFiles(verify bool, dir string) error {
	registry := manifest.Default()

	for _, role := range registry.Roles() {
		fmt.Println(tui.InfoStyle.Bold(true).Render(string(role)))
		for _, f := range registry.ByRole[role] {
			fmt.Printf("  %-22s %s\n", f.Name, tui.DimStyle.Render(f.Description))
		}
		fmt.Println()
	}

	if !verify {
		return nil
	}

	root, err := payloadDir(dir)
	if err != nil {
		return err
	}

	fmt.Printf("Verifying payload in %s:\n", root)
	result := validation.NewValidator(root).ValidateAll()

	for _, issue := range result.Issues {
		prefix := "WARNING"
		if issue.Severity == validation.SeverityError {
			prefix = "ERROR"
		}

		if issue.Field != "" {
			fmt.Printf("[%s] %s: %s (%s)\n", prefix, issue.File, issue.Message, issue.Field)
		} else {
			fmt.Printf("[%s] %s: %s\n", prefix, issue.File, issue.Message)
		}
	}

	if result.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount())
	}

	if len(result.Issues) == 0 {
		fmt.Println(tui.SuccessStyle.Render("Payload complete."))
	} else {
		fmt.Printf("\nPayload complete with %d warning(s).\n", result.WarningCount())
	}

	return nil
}
