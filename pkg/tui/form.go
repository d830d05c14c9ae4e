package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// RunDeployForm executes the interactive deployment form, filling result.
// Pre-populated fields become the form defaults, which is how the last
// used target gets offered again.
func RunDeployForm(result *TargetForm, keys []SSHKeyInfo) error {
	if result.User == "" {
		result.User = "pi"
	}
	if result.Dir == "" {
		result.Dir = "/home/pi/raspai"
	}

	passwordDescription := "Password for the remote user"
	if len(keys) > 0 {
		passwordDescription = fmt.Sprintf("Leave empty to use your SSH keys (%d found) or agent", len(keys))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Host").
				Description("Hostname or IP address of the Raspberry Pi").
				Placeholder("raspberrypi.local").
				Value(&result.Host).
				Validate(validateHost),

			huh.NewInput().
				Title("Username").
				Description("Login user on the device").
				Placeholder("pi").
				Value(&result.User).
				Validate(validateUsername),

			huh.NewInput().
				Title("Remote Directory").
				Description("Where the assistant files will live").
				Placeholder("/home/pi/raspai").
				Value(&result.Dir).
				Validate(validateRemoteDir),
		).Title("Deployment Target").Description("Where to send the assistant"),

		huh.NewGroup(
			huh.NewInput().
				Title("SSH Password").
				Description(passwordDescription).
				Value(&result.Password).
				EchoMode(huh.EchoModePassword),

			huh.NewConfirm().
				Title("Include legacy scripts?").
				Description("Also copy the older standalone assistant versions").
				Affirmative("Yes").
				Negative("No").
				Value(&result.IncludeLegacy),

			huh.NewConfirm().
				Title("Run setup after copying?").
				Description("Install packages and create the environment on the device").
				Affirmative("Yes").
				Negative("No").
				Value(&result.RunSetup),
		).Title("Options"),
	).WithTheme(Theme()).
		WithShowHelp(true).
		WithShowErrors(true)

	if err := form.Run(); err != nil {
		return fmt.Errorf("form cancelled: %w", err)
	}

	return nil
}

// PromptSecret asks for a single masked value.
func PromptSecret(title, description string) (string, error) {
	var value string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Value(&value).
				EchoMode(huh.EchoModePassword).
				Validate(validateRequired("value")),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("form cancelled: %w", err)
	}

	return value, nil
}

// ConfirmProceed shows a yes/no gate with the given title and returns the
// operator's choice. Used for gates that default to the safe answer.
func ConfirmProceed(title, description string, defaultYes bool) (bool, error) {
	proceed := defaultYes

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&proceed),
		),
	).WithTheme(Theme())

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("form cancelled: %w", err)
	}

	return proceed, nil
}
