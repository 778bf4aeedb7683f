package cli

import "fmt"

// ExitError signals a specific non-zero exit code for an outcome the
// command has already reported on its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) ExitCode() int {
	return e.Code
}
