package tui

import (
	"context"
	"errors"
	"testing"
)

func TestIsCI(t *testing.T) {
	for _, env := range ciEnvs {
		t.Setenv(env, "")
	}
	if IsCI() {
		t.Fatal("IsCI() = true with no CI variables set")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	if !IsCI() {
		t.Error("IsCI() = false with GITHUB_ACTIONS set")
	}
	if IsInteractive() {
		t.Error("IsInteractive() = true in CI")
	}
}

func TestRunWithSpinner_NonInteractive(t *testing.T) {
	t.Setenv("CI", "true")

	ran := false
	err := RunWithSpinner(context.Background(), "working", func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("RunWithSpinner() error = %v", err)
	}
	if !ran {
		t.Error("action did not run")
	}

	wantErr := errors.New("boom")
	err = RunWithSpinner(context.Background(), "working", func(context.Context) error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("RunWithSpinner() error = %v, want %v", err, wantErr)
	}
}
