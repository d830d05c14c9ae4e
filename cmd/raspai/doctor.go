package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xVc323/raspai/pkg/config"
	"github.com/xVc323/raspai/pkg/doctor"
	"github.com/xVc323/raspai/pkg/project"
	"github.com/xVc323/raspai/pkg/tui"
)

const liveCheckTimeout = 30 * time.Second

func newDoctorCmd() *cobra.Command {
	var (
		fix     bool
		jsonOut bool
		live    bool
		dir     string
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment for the assistant",
		Long: `Check that everything the assistant needs is present: the Python
runtime, audio tools, payload files, configuration and the systemd
service.

With --fix, failed checks with a known fix are repaired (package
installs go through sudo). With --live, one Gemini round-trip verifies
the API key against the real backend.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDoctor(fix, jsonOut, live, dir)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Apply known fixes for failed checks")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Machine-readable output")
	cmd.Flags().BoolVar(&live, "live", false, "Verify the API key with one Gemini request")
	cmd.Flags().StringVar(&dir, "dir", "", "Payload directory (default: the payload directory found from here)")

	return cmd
}

func runDoctor(fix, jsonOut, live bool, dir string) error {
	if dir == "" {
		// Payload checks degrade with a pointer to the project root when
		// nothing is found.
		if root, err := project.FindRoot(); err == nil {
			dir = root
		}
	}

	checker := doctor.NewChecker()
	checker.SetPayloadDir(dir)
	groups := checker.CheckAllAsync()

	if fix {
		fixer := doctor.NewFixer()
		applied, err := fixer.FixAll(groups)
		if applied > 0 {
			fmt.Printf("Applied %d fix(es).\n\n", applied)
		}
		if err != nil {
			return err
		}
		if applied == 0 {
			fmt.Println("Nothing to fix.")
		}
		groups = checker.CheckAllAsync()
	}

	if live {
		ctx, cancel := context.WithTimeout(context.Background(), liveCheckTimeout)
		defer cancel()
		groups = append(groups, doctor.CheckGroup{
			ID:          "live",
			Name:        "Live",
			Description: "Network round-trips",
			Checks:      []doctor.Check{doctor.LiveCheck(ctx, resolveAPIKey(dir))},
		})
	}

	if jsonOut {
		if err := printGroupsJSON(groups); err != nil {
			return err
		}
	} else {
		printGroups(groups)
		printSummary(checker.GetSummary(groups))
	}

	if checker.HasIssues(groups) {
		summary := checker.GetSummary(groups)
		return fmt.Errorf("%d of %d checks failed", summary.Missing+summary.Errors, summary.Total)
	}
	return nil
}

// resolveAPIKey mirrors the api-key check: the payload .env wins, the
// process environment is the fallback.
func resolveAPIKey(dir string) string {
	if dir != "" {
		if cfg, err := config.NewReader(dir).Read(); err == nil && cfg.HasAPIKey() {
			return cfg.APIKey
		}
	}
	return os.Getenv(config.KeyAPIKey)
}

func printGroups(groups []doctor.CheckGroup) {
	for _, group := range groups {
		fmt.Printf("%s %s\n", tui.InfoStyle.Bold(true).Render(group.Name),
			tui.DimStyle.Render("("+group.Description+")"))

		for _, check := range group.Checks {
			fmt.Printf("  %s %-18s %s\n", statusGlyph(check.Status), check.Name,
				tui.DimStyle.Render(check.Message))
			if check.Status != doctor.StatusOK && check.FixCommand != nil {
				fmt.Printf("    %s\n", tui.DimStyle.Render("fix: "+fixCommandLine(check.FixCommand)))
			}
		}
		fmt.Println()
	}
}

func statusGlyph(status doctor.CheckStatus) string {
	switch status {
	case doctor.StatusOK:
		return tui.SuccessStyle.Render("✓")
	case doctor.StatusWarning:
		return tui.WarningStyle.Render("!")
	default:
		return tui.ErrorStyle.Render("✗")
	}
}

func fixCommandLine(fix *doctor.FixCommand) string {
	if fix.Sudo {
		return "sudo " + fix.Command
	}
	return fix.Command
}

func printSummary(s doctor.Summary) {
	line := fmt.Sprintf("%d checks: %d ok", s.Total, s.OK)
	if s.Missing > 0 {
		line += fmt.Sprintf(", %d missing", s.Missing)
	}
	if s.Warnings > 0 {
		line += fmt.Sprintf(", %d warnings", s.Warnings)
	}
	if s.Errors > 0 {
		line += fmt.Sprintf(", %d errors", s.Errors)
	}

	if s.Missing > 0 || s.Errors > 0 {
		fmt.Println(tui.ErrorStyle.Render(line))
		fmt.Println(tui.DimStyle.Render("Run raspai doctor --fix to apply the known fixes."))
	} else if s.Warnings > 0 {
		fmt.Println(tui.WarningStyle.Render(line))
	} else {
		fmt.Println(tui.SuccessStyle.Render(line))
	}
}

// JSON shapes for --json, statuses as strings rather than enum ordinals.
type jsonCheck struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type jsonGroup struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Checks []jsonCheck `json:"checks"`
}

func printGroupsJSON(groups []doctor.CheckGroup) error {
	out := make([]jsonGroup, 0, len(groups))
	for _, group := range groups {
		jg := jsonGroup{ID: group.ID, Name: group.Name}
		for _, check := range group.Checks {
			jg.Checks = append(jg.Checks, jsonCheck{
				ID:      check.ID,
				Name:    check.Name,
				Status:  check.Status.String(),
				Message: check.Message,
			})
		}
		out = append(out, jg)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
