package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/tracker/internal/logger"
	"github.com/julianstephens/tracker/internal/models"
	"github.com/julianstephens/tracker/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Message maps store failures to the short text shown to the user. Errors
// it does not recognise are returned verbatim.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, storage.ErrDuplicateValue):
		return "this name is already taken"
	case stderrors.Is(err, storage.ErrNotFound):
		return "not found"
	case stderrors.Is(err, storage.ErrFutureDate):
		return "cannot mark a tracker for a future date"
	case stderrors.Is(err, storage.ErrCategoryNotEmpty):
		return "category still has trackers; move or delete them first"
	case stderrors.Is(err, storage.ErrInvalidStore):
		return "the tracker database could not be opened; run 'tracker doctor'"
	}

	var verr *models.ValidationError
	if stderrors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

// Fatal logs err, prints it to stderr and exits with status 1. Known
// store failures get the short user-facing message as a hint.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	if msg := Message(err); msg != err.Error() {
		fmt.Fprintf(os.Stderr, "       (%s)\n", msg)
	}
	os.Exit(1)
}
