package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/xVc323/raspai/pkg/config"
	"github.com/xVc323/raspai/pkg/project"
	"github.com/xVc323/raspai/pkg/tui"
)

func newConfigCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the device configuration (.env)",
		Long: `Manage the assistant's .env file, which holds the Gemini API key.

An existing .env is never overwritten; init only fills the gap when the
file is missing.`,
	}

	cmd.PersistentFlags().StringVar(&dir, "dir", "", "Payload directory (default: the payload directory found from here)")

	cmd.AddCommand(
		newConfigInitCmd(&dir),
		newConfigShowCmd(&dir),
		newConfigSetKeyCmd(&dir),
	)

	return cmd
}

// payloadDir resolves the directory holding the payload, honoring --dir.
func payloadDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	root, err := project.FindRoot()
	if err != nil {
		return "", fmt.Errorf("could not find the payload directory: %w (use --dir)", err)
	}
	return root, nil
}

func newConfigInitCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create .env from the template if missing",
		RunE: func(_ *cobra.Command, _ []string) error {
			root, err := payloadDir(*dir)
			if err != nil {
				return err
			}

			created, err := config.EnsureEnv(root)
			if err != nil {
				return err
			}

			if created {
				fmt.Printf("Created %s in %s.\n", config.EnvFile, root)
				fmt.Println(tui.DimStyle.Render("Set your API key with: raspai config set-key"))
			} else {
				fmt.Printf("%s already exists in %s, left untouched.\n", config.EnvFile, root)
			}
			return nil
		},
	}
}

func newConfigShowCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the device configuration, key masked",
		RunE: func(_ *cobra.Command, _ []string) error {
			root, err := payloadDir(*dir)
			if err != nil {
				return err
			}

			reader := config.NewReader(root)
			if !reader.Exists() {
				fmt.Printf("No %s in %s yet.\n", config.EnvFile, root)
				fmt.Println(tui.DimStyle.Render("Create it with: raspai config init"))
				return nil
			}

			cfg, err := reader.Read()
			if err != nil {
				return err
			}

			switch {
			case !cfg.HasAPIKey():
				fmt.Printf("%s: %s\n", config.KeyAPIKey, tui.WarningStyle.Render("not set"))
			case cfg.IsPlaceholder():
				fmt.Printf("%s: %s\n", config.KeyAPIKey, tui.WarningStyle.Render("placeholder, replace it"))
			default:
				fmt.Printf("%s: %s\n", config.KeyAPIKey, config.Mask(cfg.APIKey))
			}

			extras := make([]string, 0, len(cfg.Extra))
			for key := range cfg.Extra {
				extras = append(extras, key)
			}
			sort.Strings(extras)
			for _, key := range extras {
				fmt.Printf("%s: %s\n", key, cfg.Extra[key])
			}

			return nil
		},
	}
}

func newConfigSetKeyCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set-key [value]",
		Short: "Set the Gemini API key",
		Long: `Set GOOGLE_API_KEY in the device configuration. Without an
argument the key is asked for with masked input, which keeps it out of
the shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root, err := payloadDir(*dir)
			if err != nil {
				return err
			}

			var value string
			if len(args) == 1 {
				value = args[0]
			} else {
				value, err = tui.PromptSecret("Gemini API key",
					"From https://aistudio.google.com/apikey")
				if err != nil {
					return err
				}
			}

			if err := config.SetAPIKey(root, value); err != nil {
				return err
			}

			fmt.Printf("Saved %s to %s.\n", config.KeyAPIKey, root)
			return nil
		},
	}
}
