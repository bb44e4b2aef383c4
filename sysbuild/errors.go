package sysbuild

import (
	"fmt"
	"strings"
)

// maxErrorOutput caps the tool output carried in an error message. The
// full output stays in BuildResult.Output.
const maxErrorOutput = 40

// ToolError reports a failed external tool step together with the tail
// of what it printed.
type ToolError struct {
	Step   string
	Output []string
	Err    error
}

func (e *ToolError) Error() string {
	var b strings.Builder
	b.WriteString(e.Step + " failed")
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}

	output := e.Output
	if len(output) > maxErrorOutput {
		output = output[len(output)-maxErrorOutput:]
		fmt.Fprintf(&b, "\n\nLast %d lines of output:\n", maxErrorOutput)
	} else if len(output) > 0 {
		b.WriteString("\n\nOutput:\n")
	}
	b.WriteString(strings.Join(output, "\n"))
	return b.String()
}

func (e *ToolError) Unwrap() error { return e.Err }

// BuildError returns a *ToolError for a failed step. The output slice is
// copied, so later appends by the caller do not change the error.
func BuildError(step string, output []string, err error) error {
	return &ToolError{Step: step, Output: append([]string(nil), output...), Err: err}
}
