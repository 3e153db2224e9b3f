package launcher

import (
	"fmt"

	"github.com/carlmjohnson/exitcode"
)

// DelegateError wraps an error returned by the entry module's main export.
type DelegateError struct {
	Module string
	Export string
	Err    error
}

func (e *DelegateError) Error() string {
	return fmt.Sprintf("entry module '%s': %s failed: %v", e.Module, e.Export, e.Err)
}

func (e *DelegateError) Unwrap() error {
	return e.Err
}

// ExitCode reports the exit code carried by the wrapped error, so a failing
// command export exits the launcher with the child's status.
func (e *DelegateError) ExitCode() int {
	return exitcode.Get(e.Err)
}
