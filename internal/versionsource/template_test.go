package versionsource

import (
	"strings"
	"testing"
)

func TestContext_Format(t *testing.T) {
	ctx := Context{CurrentVersion: "1.2.2", NewVersion: "1.2.3"}

	tests := []struct {
		template string
		want     string
		wantErr  string
	}{
		{template: "v{new_version}", want: "v1.2.3"},
		{template: "Bump version {current_version} → {new_version}", want: "Bump version 1.2.2 → 1.2.3"},
		{template: "no placeholders", want: "no placeholders"},
		{template: "{new_version}{new_version}", want: "1.2.31.2.3"},
		{template: "{{literal}} {new_version}", want: "{literal} 1.2.3"},
		{template: "", want: ""},
		{template: "{version}", wantErr: "unknown placeholder {version}"},
		{template: "v{new_version", wantErr: "unmatched '{'"},
		{template: "v}", wantErr: "single '}'"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, err := ctx.Format(tt.template)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Format() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}
