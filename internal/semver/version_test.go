package semver

import (
	"errors"
	"strings"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    SemVersion
		wantErr bool
	}{
		{input: "1.2.3", want: SemVersion{Major: 1, Minor: 2, Patch: 3}},
		{input: "v0.10.0", want: SemVersion{Minor: 10}},
		{input: " 1.0.0-rc.1 ", want: SemVersion{Major: 1, PreRelease: "rc.1"}},
		{input: "1.0.0-beta+exp.sha.5114f85", want: SemVersion{Major: 1, PreRelease: "beta", Build: "exp.sha.5114f85"}},
		{input: "1.0", wantErr: true},
		{input: "01.0.0", wantErr: true},
		{input: "1.0.0.dev1", wantErr: true},
		{input: "1.0.0-", wantErr: true},
		{input: "1.0.0-" + strings.Repeat("a", maxVersionLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidVersion) {
					t.Fatalf("expected ErrInvalidVersion, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSemVersion_String(t *testing.T) {
	v := SemVersion{Major: 1, Minor: 2, Patch: 3, PreRelease: "alpha.1", Build: "build.7"}
	if got := v.String(); got != "1.2.3-alpha.1+build.7" {
		t.Errorf("String() = %q", got)
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		current string
		labels  []string
		want    string
		wantErr bool
	}{
		{current: "1.2.3", labels: []string{"patch"}, want: "1.2.4"},
		{current: "1.2.3", labels: []string{"minor"}, want: "1.3.0"},
		{current: "1.2.3+meta", labels: []string{"major"}, want: "2.0.0"},
		{current: "1.2.3-rc.2", labels: []string{"release"}, want: "1.2.3"},
		{current: "1.2.3", labels: []string{"rc"}, want: "1.2.4-rc.1"},
		{current: "1.2.4-rc.1", labels: []string{"rc"}, want: "1.2.4-rc.2"},
		{current: "1.2.4-beta.3", labels: []string{"rc"}, want: "1.2.4-rc.1"},
		{current: "1.2.3", labels: []string{"minor", "alpha"}, want: "1.3.0-alpha.1"},
		{current: "1.3.0-alpha.1", labels: []string{"minor", "rc"}, want: "1.4.0-rc.1"},
		{current: "1.2.3", labels: []string{"dev", "dev"}, want: "1.2.4-dev.2"},
		{current: "1.2.3", labels: []string{"huge"}, wantErr: true},
		{current: "1.2.3", labels: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.current+"/"+strings.Join(tt.labels, ","), func(t *testing.T) {
			v, err := ParseVersion(tt.current)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Bump(v, tt.labels...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Bump() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("Bump() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsBumpLabel(t *testing.T) {
	for _, l := range []string{"major", "minor", "patch", "release", "alpha", "beta", "rc", "dev"} {
		if !IsBumpLabel(l) {
			t.Errorf("IsBumpLabel(%q) = false", l)
		}
	}
	for _, l := range []string{"", "1.2.3", "Major", "post"} {
		if IsBumpLabel(l) {
			t.Errorf("IsBumpLabel(%q) = true", l)
		}
	}
}

func TestIncrementPreRelease(t *testing.T) {
	tests := []struct {
		current, base, want string
	}{
		{"", "rc", "rc.1"},
		{"rc", "rc", "rc.1"},
		{"rc.1", "rc", "rc.2"},
		{"rc-9", "rc", "rc-10"},
		{"rc1", "rc", "rc2"},
		{"rcx", "rc", "rc.1"},
		{"beta.4", "rc", "rc.1"},
	}
	for _, tt := range tests {
		if got := IncrementPreRelease(tt.current, tt.base); got != tt.want {
			t.Errorf("IncrementPreRelease(%q, %q) = %q, want %q", tt.current, tt.base, got, tt.want)
		}
	}
}

func TestSemVersion_Compare(t *testing.T) {
	ordered := []string{
		"1.0.0-alpha",
		"1.0.0-alpha.1",
		"1.0.0-alpha.beta",
		"1.0.0-beta",
		"1.0.0-beta.2",
		"1.0.0-beta.11",
		"1.0.0-rc.1",
		"1.0.0",
		"1.0.1",
		"1.1.0",
		"2.0.0",
	}

	for i := 0; i < len(ordered)-1; i++ {
		a, _ := ParseVersion(ordered[i])
		b, _ := ParseVersion(ordered[i+1])
		if got := a.Compare(b); got != -1 {
			t.Errorf("%s.Compare(%s) = %d, want -1", a, b, got)
		}
		if got := b.Compare(a); got != 1 {
			t.Errorf("%s.Compare(%s) = %d, want 1", b, a, got)
		}
	}

	a, _ := ParseVersion("1.0.0+one")
	b, _ := ParseVersion("1.0.0+two")
	if a.Compare(b) != 0 {
		t.Error("build metadata should not affect ordering")
	}
}
