package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	errEmptyCredential   = errors.New("api key is required")
	errInvalidCredential = errors.New("api key contains invalid characters")
)

func validateCredential(value string) error {
	if strings.TrimSpace(value) == "" {
		return errEmptyCredential
	}

	if strings.ContainsAny(value, " \t\n&?=#") {
		return errInvalidCredential
	}

	return nil
}

// setKey prompts for the api key and saves it to the state file without starting the ui.
func setKey(cmd *cobra.Command, _ []string) error {
	env, errSetup := setup(cmd.Context(), nil)
	if errSetup != nil {
		return errSetup
	}
	defer env.Close()

	credential := env.tracker.Credential()
	confirmed := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Torn API key").
				Description("A public access key is enough, only user profiles are requested").
				EchoMode(huh.EchoModePassword).
				Value(&credential).
				Validate(validateCredential),
			huh.NewConfirm().
				Title(fmt.Sprintf("Save to %s?", env.tracker.Path())).
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	)

	if err := form.RunWithContext(cmd.Context()); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}

		return errors.Join(err, errApp)
	}

	if !confirmed {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled, api key unchanged")

		return nil
	}

	env.tracker.SetCredential(strings.TrimSpace(credential))
	if err := env.tracker.Teardown(); err != nil {
		return errors.Join(err, errApp)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved api key %s\n", maskKey(credential))

	return nil
}

func maskKey(credential string) string {
	credential = strings.TrimSpace(credential)
	if len(credential) <= 4 {
		return strings.Repeat("*", len(credential))
	}

	return strings.Repeat("*", len(credential)-4) + credential[len(credential)-4:]
}
