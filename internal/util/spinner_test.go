package util

import (
	"bytes"
	"errors"
	"testing"
)

func TestWorkingOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	failed := errors.New("export failed")

	calls := 0
	err := Working(&buf, "Exporting", func() error {
		calls++
		return failed
	})

	if !errors.Is(err, failed) {
		t.Errorf("Working error = %v; want %v", err, failed)
	}
	if calls != 1 {
		t.Errorf("fn called %d times; want 1", calls)
	}
	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal; want nothing", buf.String())
	}
}
