package version

import (
	"regexp"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Platform", Platform},
		{"Frontend", Frontend},
		{"REPL", REPL},
		{"Explorer", Explorer},
		{"GRPC", GRPC},
		{"WebSocket", WebSocket},
		{"History", History},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestServiceVersion(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"frontend", Frontend},
		{"tui", Explorer},
		{"grpc", GRPC},
		{"history", History},
		{"unknown", Platform},
		{"", Platform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ServiceVersion(tt.name); got != tt.expected {
				t.Errorf("ServiceVersion(%q) = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.HasPrefix(info, "monkey "+Platform) {
		t.Errorf("Info() = %q", info)
	}
	if !strings.Contains(info, "commit "+Commit) {
		t.Errorf("Info() = %q, missing commit", info)
	}
}
