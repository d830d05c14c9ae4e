package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xVc323/raspai/pkg/project"
	"github.com/xVc323/raspai/pkg/setup"
	"github.com/xVc323/raspai/pkg/tui"
)

func newSetupCmd() *cobra.Command {
	var (
		dir         string
		user        string
		assumeYes   bool
		dryRun      bool
		skipService bool
		start       bool
		interval    int
		harshness   int
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Provision this device for the assistant",
		Long: `Install everything the assistant needs on the current machine: OS
packages, a Python virtualenv with the payload dependencies, the device
configuration file and optionally the systemd service.

Re-running is safe: satisfied steps are skipped and an existing .env is
never overwritten. The first failing step aborts the run.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSetup(setupFlags{
				dir:         dir,
				user:        user,
				assumeYes:   assumeYes,
				dryRun:      dryRun,
				skipService: skipService,
				start:       start,
				interval:    interval,
				harshness:   harshness,
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Install directory (default: the payload directory found from here)")
	cmd.Flags().StringVar(&user, "user", "", "Account the service runs as (default: the invoking user)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every prompt")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the steps without executing them")
	cmd.Flags().BoolVar(&skipService, "skip-service", false, "Leave the systemd unit alone")
	cmd.Flags().BoolVar(&start, "start", true, "Start the service once installed (with --yes)")
	cmd.Flags().IntVar(&interval, "interval", 0, "Minutes between passive commentaries (0 keeps the assistant default)")
	cmd.Flags().IntVar(&harshness, "harshness", 0, "Passive commentary tone, 1 (mild) to 5 (brutal)")

	return cmd
}

type setupFlags struct {
	dir         string
	user        string
	assumeYes   bool
	dryRun      bool
	skipService bool
	start       bool
	interval    int
	harshness   int
}

func runSetup(flags setupFlags) error {
	if flags.harshness != 0 && (flags.harshness < 1 || flags.harshness > 5) {
		return fmt.Errorf("harshness must be between 1 and 5")
	}
	if flags.interval < 0 {
		return fmt.Errorf("interval cannot be negative")
	}

	dir := flags.dir
	if dir == "" {
		var err error
		dir, err = project.FindRoot()
		if err != nil {
			return fmt.Errorf("could not find the payload directory: %w (use --dir)", err)
		}
	}

	fmt.Println(tui.TitleStyle.Render("RaspAI Setup"))
	fmt.Printf("Install directory: %s\n\n", dir)

	if err := confirmHardware(flags); err != nil {
		return err
	}

	opts := setup.Options{
		Dir:          dir,
		User:         flags.user,
		AssumeYes:    flags.assumeYes,
		DryRun:       flags.dryRun,
		SkipService:  flags.skipService,
		StartService: flags.start,
		Interval:     flags.interval,
		Harshness:    flags.harshness,
	}
	if err := confirmService(flags, &opts); err != nil {
		return err
	}

	runner := setup.NewRunner()
	runner.SetProgress(printStepEvent)

	result, err := runner.Run(context.Background(), opts)
	if err != nil {
		if result.FailedStep == "" {
			return err
		}
		fmt.Println()
		fmt.Println(tui.ErrorStyle.Render("Setup failed."))
		// The failing step already printed the full error
		return fmt.Errorf("setup failed at step %s", result.FailedStep)
	}

	fmt.Println()
	if flags.dryRun {
		fmt.Println(tui.DimStyle.Render("Dry run, nothing was changed."))
		return nil
	}

	fmt.Println(tui.SuccessStyle.Render("Setup complete."))
	fmt.Printf("%d steps run, %d already satisfied, took %s.\n",
		result.Completed, result.Skipped, result.Duration.Round(time.Second))

	fmt.Println()
	if !opts.SkipService && opts.StartService {
		fmt.Println("The assistant is running. Say \"hey raspberry\" to wake it.")
		fmt.Println(tui.DimStyle.Render("Follow the logs with: raspai service logs"))
	} else {
		fmt.Println("Start the assistant with: raspai service start")
	}
	fmt.Println(tui.DimStyle.Render("Check the environment with: raspai doctor"))

	return nil
}

// confirmHardware gates setup on hosts that do not identify as a
// Raspberry Pi. Declining aborts the run.
func confirmHardware(flags setupFlags) error {
	model := setup.DetectModel()
	if setup.IsModelRaspberryPi(model) {
		fmt.Println(tui.DimStyle.Render("Detected: " + model))
		return nil
	}

	desc := "No Raspberry Pi device tree was found on this host."
	if model != "" {
		desc = "This host reports: " + model
	}

	if flags.assumeYes || flags.dryRun {
		fmt.Println(tui.WarningStyle.Render("Unrecognized hardware, continuing anyway."))
		fmt.Println(tui.DimStyle.Render(desc))
		return nil
	}

	ok, err := tui.ConfirmProceed("This does not look like a Raspberry Pi", desc, false)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("cancelled on unrecognized hardware")
	}
	return nil
}

// confirmService resolves the service gates. Flags decide for --yes,
// --skip-service and --dry-run; otherwise the operator is asked.
func confirmService(flags setupFlags, opts *setup.Options) error {
	if flags.skipService || flags.assumeYes || flags.dryRun {
		return nil
	}

	install, err := tui.ConfirmProceed("Install the systemd service?",
		"The assistant starts on boot and restarts on failure", true)
	if err != nil {
		return err
	}
	if !install {
		opts.SkipService = true
		opts.StartService = false
		return nil
	}

	startNow, err := tui.ConfirmProceed("Start the assistant now?", "", true)
	if err != nil {
		return err
	}
	opts.StartService = startNow
	return nil
}

// printStepEvent renders runner progress as plain sequential lines, so
// setup also works on a bare console over serial.
func printStepEvent(e setup.StepEvent) {
	prefix := fmt.Sprintf("[%d/%d]", e.Index, e.Total)
	switch e.Phase {
	case setup.PhaseStarted:
		fmt.Printf("%s %s\n", tui.InfoStyle.Render(prefix), e.Name)
	case setup.PhaseSucceeded:
		detail := ""
		if e.Detail != "" {
			detail = " " + tui.DimStyle.Render(e.Detail)
		}
		fmt.Printf("      %s%s\n", tui.SuccessStyle.Render("done"), detail)
	case setup.PhaseSkipped:
		fmt.Printf("%s %s %s\n", tui.DimStyle.Render(prefix), e.Name,
			tui.DimStyle.Render("(skipped: "+e.Detail+")"))
	case setup.PhaseFailed:
		fmt.Printf("      %s %s\n", tui.ErrorStyle.Render("failed:"), e.Detail)
	case setup.PhaseDryRun:
		fmt.Printf("%s %s\n", tui.DimStyle.Render(prefix), e.Name)
		if e.Detail != "" {
			fmt.Printf("      %s\n", tui.DimStyle.Render(e.Detail))
		}
	}
}
