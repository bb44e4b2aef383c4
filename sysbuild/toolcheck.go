package sysbuild

import (
	"fmt"
	"os/exec"
	"strings"
)

// lookPath resolves tool binaries. Tests replace it.
var lookPath = exec.LookPath

// ToolChecker is implemented by builders that need external tools. The
// configurator calls CheckTools before starting a build.
type ToolChecker interface {
	RequiredTools() []ToolRequirement
	CheckTools() error
}

// ToolRequirement is one tool a build needs. Any of Name or Alternatives
// satisfies it.
type ToolRequirement struct {
	Name         string
	Alternatives []string
	Optional     bool
	Purpose      string // shown when the tool is missing
}

func (r ToolRequirement) String() string {
	if r.Purpose == "" {
		return r.Name
	}
	return fmt.Sprintf("%s (%s)", r.Name, r.Purpose)
}

// Find returns the path of the first candidate found on PATH.
func (r ToolRequirement) Find() (string, bool) {
	for _, name := range append([]string{r.Name}, r.Alternatives...) {
		if path, err := lookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

// CheckRequiredTools returns an error naming every required tool that is
// not on PATH. Optional tools are never reported.
func CheckRequiredTools(requirements []ToolRequirement) error {
	var missing []string
	for _, req := range requirements {
		if _, ok := req.Find(); !ok && !req.Optional {
			missing = append(missing, req.String())
		}
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("%s not found in PATH", missing[0])
	default:
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
}
