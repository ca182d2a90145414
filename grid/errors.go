package grid

import "fmt"

// ConfigurationError reports a grid configuration that cannot serve every
// zoom level. It is raised when configuration is loaded, never on redraw.
type ConfigurationError struct {
	System string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.System == "" {
		return "grid configuration: " + e.Reason
	}
	return fmt.Sprintf("grid configuration for %s: %s", e.System, e.Reason)
}

// DegenerateSpacingError reports an interval that cannot produce lines:
// zero, negative, not a number, infinite, or too fine for the viewport.
type DegenerateSpacingError struct {
	System   System
	Interval float64
	Reason   string
}

func (e *DegenerateSpacingError) Error() string {
	return fmt.Sprintf("%s grid: degenerate spacing %v: %s", e.System, e.Interval, e.Reason)
}
