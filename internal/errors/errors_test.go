package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"plain error", errors.New("disk full"), "Error: disk full"},
		{
			name:     "wrapped sentinel",
			err:      fmt.Errorf("category %q: %w", "Health", storage.ErrNotFound),
			expected: `Error: category "Health": not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"duplicate", fmt.Errorf("category %q: %w", "Health", storage.ErrDuplicateValue), "this name is already taken"},
		{"not found", fmt.Errorf("tracker x: %w", storage.ErrNotFound), "not found"},
		{"future date", storage.ErrFutureDate, "cannot mark a tracker for a future date"},
		{"category not empty", fmt.Errorf("category %q has 1 tracker(s): %w", "Health", storage.ErrCategoryNotEmpty), "category still has trackers; move or delete them first"},
		{"invalid store", fmt.Errorf("%w: schema too new", storage.ErrInvalidStore), "the tracker database could not be opened; run 'tracker doctor'"},
		{"validation", &models.ValidationError{Field: "name", Message: "must not be empty"}, "must not be empty"},
		{"other", errors.New("disk full"), "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.expected {
				t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

// TestFatal runs Fatal in a helper subprocess, since it exits.
func TestFatal(t *testing.T) {
	switch os.Getenv("TRACKER_TEST_FATAL") {
	case "plain":
		Fatal(errors.New("test error"))
		return
	case "sentinel":
		Fatal(fmt.Errorf("2999-01-01 is after 2024-01-01: %w", storage.ErrFutureDate))
		return
	case "nil":
		Fatal(nil)
		os.Exit(0)
	}

	tests := []struct {
		mode     string
		exitCode int
		want     []string
	}{
		{"plain", 1, []string{"Error: test error"}},
		{"sentinel", 1, []string{"Error: 2999-01-01 is after 2024-01-01", "(cannot mark a tracker for a future date)"}},
		{"nil", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
			cmd.Env = append(os.Environ(), "TRACKER_TEST_FATAL="+tt.mode)
			var stderr bytes.Buffer
			cmd.Stderr = &stderr

			err := cmd.Run()
			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("failed to run helper process: %v", err)
			}
			if code != tt.exitCode {
				t.Errorf("exit code = %d, want %d", code, tt.exitCode)
			}
			for _, want := range tt.want {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr = %q, want to contain %q", stderr.String(), want)
				}
			}
		})
	}
}
