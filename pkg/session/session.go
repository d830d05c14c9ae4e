// Package session drives the interactive deployment flow: target form,
// review, transfer with live progress, result summary and history.
package session

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/xVc323/raspai/pkg/deploy"
	"github.com/xVc323/raspai/pkg/globalconfig"
	"github.com/xVc323/raspai/pkg/manifest"
	"github.com/xVc323/raspai/pkg/tui"
)

// RunOptions tunes a deployment session.
type RunOptions struct {
	// ProjectRoot is the directory holding the payload files.
	ProjectRoot string

	// AssumeYes skips the confirmation gate after the review.
	AssumeYes bool

	// Interval and Harshness are handed to the device setup when the
	// operator opts into running it after the copy.
	Interval  int
	Harshness int
}

// Run executes the deploy command workflow.
func Run(opts RunOptions) error {
	fmt.Println(titleStyle.Render("RaspAI Deployment"))
	fmt.Println()

	cfg, err := globalconfig.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("load operator config: %w", err)
	}

	// Step 1: collect the target. The last used destination becomes the
	// form defaults.
	form := tui.TargetForm{
		Host: cfg.DefaultTarget.Host,
		User: cfg.DefaultTarget.User,
		Dir:  cfg.DefaultTarget.Dir,
	}
	keys := tui.GetLocalSSHKeys()
	if err := tui.RunDeployForm(&form, keys); err != nil {
		return err
	}

	// Step 2: review and confirm.
	fileCount := len(manifest.Default().ForDeploy(form.IncludeLegacy))
	if !opts.AssumeYes {
		ok, err := confirmDeployment(form, len(keys), fileCount)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("\n" + dimStyle.Render("Deployment cancelled."))
			return nil
		}
	}

	deployOpts := &deploy.Options{
		Target: deploy.Target{Host: form.Host, User: form.User, Dir: form.Dir},
		Auth: deploy.Auth{
			Password: form.Password,
			KeyPaths: keyPaths(keys),
			UseAgent: true,
		},
		IncludeLegacy: form.IncludeLegacy,
		RunSetup:      form.RunSetup,
		Interval:      opts.Interval,
		Harshness:     opts.Harshness,
	}

	// Step 3: run the transfer with the progress UI.
	started := time.Now()
	result, err := runDeployment(deploy.NewSSHDeployer(opts.ProjectRoot), deployOpts)
	if err != nil {
		return err
	}

	// Print final results outside of alt-screen (so they're scrollable
	// in the terminal).
	printResults(result)

	if result == nil {
		return nil
	}

	// Step 4: remember the session. A history write failure is worth a
	// warning but not a failed deployment.
	cfg.RecordDeployment(historyEntry(deployOpts, result, started))
	if err := cfg.Save(); err != nil {
		fmt.Println(warningStyle.Render("  Could not save deployment history: " + err.Error()))
	}

	if !result.Success {
		return result.Error
	}
	return nil
}

// runDeployment runs the deployment with a Bubble Tea progress UI.
func runDeployment(deployer deploy.Deployer, opts *deploy.Options) (*deploy.Result, error) {
	m := newSessionModel(deployer, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("deployment UI error: %w", err)
	}

	model, ok := finalModel.(sessionModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	return model.result, nil
}

// historyEntry converts a finished session into its history record.
func historyEntry(opts *deploy.Options, result *deploy.Result, started time.Time) globalconfig.Deployment {
	return globalconfig.Deployment{
		ID:            uuid.New().String(),
		Host:          opts.Target.Host,
		User:          opts.Target.User,
		Dir:           opts.Target.Dir,
		IncludeLegacy: opts.IncludeLegacy,
		RanSetup:      opts.RunSetup,
		Success:       result.Success,
		FilesCopied:   len(result.Copied),
		StartedAt:     started,
		Duration:      result.Duration.Round(time.Second).String(),
	}
}

func keyPaths(keys []tui.SSHKeyInfo) []string {
	paths := make([]string, len(keys))
	for i, k := range keys {
		paths[i] = k.Path
	}
	return paths
}
