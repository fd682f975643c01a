package engine

import (
	"fmt"
	"strings"
)

// ParsePriority parses user input to a Priority.
// Supported: low, medium (med), high (important). Empty input yields DefaultPriority.
func ParsePriority(input string) (Priority, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return DefaultPriority, nil
	case "low", "l":
		return PriorityLow, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "high", "h", "important":
		return PriorityHigh, nil
	default:
		return "", ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q (low|medium|high)", input)}
	}
}

// ParseFilter parses a view name. Empty input selects FilterAll.
func ParseFilter(input string) (Filter, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return FilterAll, nil
	}
	f := Filter(s)
	if !f.IsValid() {
		return "", ValidationError{Field: "view", Message: fmt.Sprintf("unknown view %q (all|today|important|planned|assigned)", input)}
	}
	return f, nil
}

// ParseTheme returns the theme named by input, or ok=false.
func ParseTheme(input string) (Theme, bool) {
	t := Theme(strings.TrimSpace(strings.ToLower(input)))
	return t, t.IsValid()
}
