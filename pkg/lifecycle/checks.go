package lifecycle

import (
	"fmt"
	"os/exec"
	"strings"
)

// Dependency represents an external binary dependency
type Dependency struct {
	Name        string
	Command     string
	InstallHint string
}

// DependencyChecker handles dependency validation
type DependencyChecker struct {
	dependencies []Dependency
	lookPath     func(string) (string, error)
}

// NewDependencyChecker creates a checker for the node management tool.
func NewDependencyChecker(tool string) *DependencyChecker {
	return &DependencyChecker{
		dependencies: []Dependency{
			{
				Name:        "Tahoe-LAFS",
				Command:     tool,
				InstallHint: "Install with: pip install tahoe-lafs, or pass --tool with the path to the tahoe executable",
			},
		},
		lookPath: exec.LookPath,
	}
}

// CheckAll performs all dependency checks and returns the missing commands
func (dc *DependencyChecker) CheckAll() ([]string, error) {
	var missing []string
	var hints []string

	for _, dep := range dc.dependencies {
		if _, err := dc.lookPath(dep.Command); err != nil {
			missing = append(missing, dep.Command)
			hints = append(hints, fmt.Sprintf("  %s (%s): %s", dep.Name, dep.Command, dep.InstallHint))
		}
	}

	if len(missing) == 0 {
		return nil, nil
	}

	return missing, fmt.Errorf("missing %d required dependencies: %s\n%s",
		len(missing), strings.Join(missing, ", "), strings.Join(hints, "\n"))
}
