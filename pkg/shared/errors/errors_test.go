package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewCommandError(t *testing.T) {
	wrapped := NewCommandError(fmt.Errorf("config unreadable"), ExitError)
	if wrapped.ExitCode != ExitError {
		t.Errorf("expected exit code %d, got %d", ExitError, wrapped.ExitCode)
	}
	if wrapped.Error() != "config unreadable" {
		t.Errorf("unexpected message %q", wrapped.Error())
	}
}

func TestNewFindingsError(t *testing.T) {
	err := NewFindingsError(3)
	if err.ExitCode != ExitFindingsPresent {
		t.Errorf("expected exit code %d, got %d", ExitFindingsPresent, err.ExitCode)
	}
	if err.Error() != "scan flagged 3 hidden character finding(s)" {
		t.Errorf("unexpected message %q", err.Error())
	}

	var cmdErr *CommandError
	if !errors.As(error(err), &cmdErr) {
		t.Error("findings error must unwrap as a CommandError")
	}
}
