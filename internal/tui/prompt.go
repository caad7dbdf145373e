package tui

import (
	"context"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Confirm shows a yes/no prompt and returns the answer.
func Confirm(title, description string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)

	err := huh.NewForm(huh.NewGroup(field)).
		WithTheme(currentThemeOrDefault()).
		Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// RunWithSpinner runs action while a spinner titled title is displayed.
// Outside an interactive terminal the action runs without one.
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if !IsInteractive() {
		return action(ctx)
	}

	var actionErr error
	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() { actionErr = action(ctx) }).
		Run()
	if err != nil {
		return err
	}
	return actionErr
}
