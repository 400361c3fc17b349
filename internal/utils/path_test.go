package utils

import (
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/.config/tracker/tracker.db", filepath.Join(home, ".config/tracker/tracker.db")},
		{"/var/lib/tracker.db", "/var/lib/tracker.db"},
		{"relative/~/x.db", "relative/~/x.db"},
		{"postgres://user@localhost/db", "postgres://user@localhost/db"},
	}
	for _, tt := range tests {
		got, err := ExpandHome(tt.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
