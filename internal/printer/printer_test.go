package printer

import (
	"bytes"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() { SetOutput(nil, nil) })
	return &out, &errOut
}

func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string) string
	}{
		{"Faint", Faint},
		{"Bold", Bold},
		{"Success", Success},
		{"Error", Error},
		{"Warning", Warning},
		{"Info", Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// styling depends on terminal detection, the text must survive either way
			result := tt.function("test text")
			if !strings.Contains(result, "test text") {
				t.Errorf("%s() = %q, want it to contain the input", tt.name, result)
			}
		})
	}
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	for name, fn := range map[string]func(string) string{
		"Success": Success,
		"Error":   Error,
		"Warning": Warning,
		"Info":    Info,
	} {
		if got := fn("plain"); got != "plain" {
			t.Errorf("%s() with colors disabled = %q, want %q", name, got, "plain")
		}
	}
}

func TestPrintFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string)
		toErr    bool
	}{
		{"Println", Println, false},
		{"PrintFaint", PrintFaint, false},
		{"PrintBold", PrintBold, false},
		{"PrintSuccess", PrintSuccess, false},
		{"PrintWarning", PrintWarning, false},
		{"PrintInfo", PrintInfo, false},
		{"PrintError", PrintError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := captureOutput(t)

			tt.function("test text")

			got, other := out.String(), errOut.String()
			if tt.toErr {
				got, other = other, got
			}
			if !strings.Contains(got, "test text") {
				t.Errorf("%s() output = %q, want it to contain the input", tt.name, got)
			}
			if !strings.HasSuffix(got, "\n") {
				t.Errorf("%s() output does not end with newline", tt.name)
			}
			if other != "" {
				t.Errorf("%s() wrote to the wrong stream: %q", tt.name, other)
			}
		})
	}
}

func TestPrintf(t *testing.T) {
	out, _ := captureOutput(t)
	Printf("%s=%d", "n", 3)
	if got := out.String(); got != "n=3" {
		t.Errorf("Printf() output = %q, want %q", got, "n=3")
	}
}
