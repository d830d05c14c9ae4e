package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xVc323/raspai/pkg/project"
	"github.com/xVc323/raspai/pkg/service"
	"github.com/xVc323/raspai/pkg/setup"
	"github.com/xVc323/raspai/pkg/tui"
)

func newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the assistant's systemd service",
		Long: `Manage the systemd unit the assistant runs under
(` + service.UnitName + `).

Most verbs shell out to systemctl and need the same privileges
systemctl itself would.`,
	}

	cmd.AddCommand(
		newServiceInstallCmd(),
		newServiceVerbCmd("start", "Start the assistant", "started",
			func(m *service.Manager) error { return m.Start() }),
		newServiceVerbCmd("stop", "Stop the assistant", "stopped",
			func(m *service.Manager) error { return m.Stop() }),
		newServiceVerbCmd("restart", "Restart the assistant", "restarted",
			func(m *service.Manager) error { return m.Restart() }),
		newServiceVerbCmd("enable", "Start the assistant on boot", "enabled",
			func(m *service.Manager) error { return m.Enable() }),
		newServiceVerbCmd("disable", "Do not start the assistant on boot", "disabled",
			func(m *service.Manager) error { return m.Disable() }),
		newServiceStatusCmd(),
		newServiceLogsCmd(),
	)

	return cmd
}

func newServiceInstallCmd() *cobra.Command {
	var (
		dir       string
		user      string
		interval  int
		harshness int
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Write the unit file and reload systemd",
		Long: `Render the systemd unit for this host and install it to
` + service.UnitPath + `. Needs root.

Setup does this as one of its steps; install exists for re-rendering
the unit after moving the payload or changing the listener tuning.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServiceInstall(dir, user, interval, harshness)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Install directory (default: the payload directory found from here)")
	cmd.Flags().StringVar(&user, "user", "", "Account the service runs as (default: the invoking user)")
	cmd.Flags().IntVar(&interval, "interval", 0, "Minutes between passive commentaries (0 keeps the assistant default)")
	cmd.Flags().IntVar(&harshness, "harshness", 0, "Passive commentary tone, 1 (mild) to 5 (brutal)")

	return cmd
}

func runServiceInstall(dir, user string, interval, harshness int) error {
	if dir == "" {
		var err error
		dir, err = project.FindRoot()
		if err != nil {
			return fmt.Errorf("could not find the payload directory: %w (use --dir)", err)
		}
	}
	// systemd does not expand ~, the unit needs a real path.
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	if user == "" {
		user = setup.Options{}.RunUser()
	}

	mgr := service.NewManager()
	if err := mgr.Install(service.UnitConfig{
		User:       user,
		InstallDir: abs,
		Interval:   interval,
		Harshness:  harshness,
	}); err != nil {
		return err
	}

	fmt.Printf("Installed %s for %s in %s.\n", service.UnitName, user, abs)
	fmt.Println(tui.DimStyle.Render("Start it with: raspai service start"))
	return nil
}

func newServiceVerbCmd(verb, short, past string, action func(*service.Manager) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb,
		Short: short,
		RunE: func(_ *cobra.Command, _ []string) error {
			mgr := service.NewManager()
			if !mgr.Installed() {
				return fmt.Errorf("%s is not installed, run raspai setup first", service.UnitName)
			}
			if err := action(mgr); err != nil {
				return err
			}
			fmt.Printf("%s %s.\n", service.UnitName, past)
			return nil
		},
	}
}

func newServiceStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the assistant is running",
		RunE: func(_ *cobra.Command, _ []string) error {
			mgr := service.NewManager()

			if !mgr.Installed() {
				fmt.Println(tui.WarningStyle.Render(service.UnitName + " is not installed."))
				fmt.Println(tui.DimStyle.Render("Install it with: raspai setup"))
				return nil
			}

			active, state := mgr.IsActive()
			enabled, bootState := mgr.IsEnabled()

			fmt.Printf("%s %s (%s)\n", onOffGlyph(active), "running", state)
			fmt.Printf("%s %s (%s)\n", onOffGlyph(enabled), "starts on boot", bootState)

			if output, err := mgr.Status(); err == nil && output != "" {
				fmt.Println()
				fmt.Println(tui.DimStyle.Render(output))
			}
			return nil
		},
	}
}

func onOffGlyph(on bool) string {
	if on {
		return tui.SuccessStyle.Render("✓")
	}
	return tui.ErrorStyle.Render("✗")
}

func newServiceLogsCmd() *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the assistant's recent journal",
		RunE: func(_ *cobra.Command, _ []string) error {
			mgr := service.NewManager()
			output, err := mgr.Logs(lines)
			if err != nil {
				return err
			}
			fmt.Print(output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of journal lines")

	return cmd
}
