package analyzer

import (
	"context"
	"fmt"
	"strings"
)

// Condition is a tri-state filter option.
type Condition int

const (
	Any Condition = iota
	RequireTrue
	RequireFalse
)

// ParseCondition maps "", "true" and "false" to a Condition.
func ParseCondition(s string) (Condition, error) {
	switch s {
	case "":
		return Any, nil
	case "true":
		return RequireTrue, nil
	case "false":
		return RequireFalse, nil
	}
	return Any, fmt.Errorf("invalid condition %q: want \"true\" or \"false\"", s)
}

func (c Condition) String() string {
	switch c {
	case RequireTrue:
		return "true"
	case RequireFalse:
		return "false"
	}
	return ""
}

func (c Condition) holds(v bool) bool {
	switch c {
	case RequireTrue:
		return v
	case RequireFalse:
		return !v
	}
	return true
}

// thirdPartyMarkers are origin path fragments of installed packages.
var thirdPartyMarkers = []string{"site-packages", "dist-packages"}

// IsStandard reports whether spec looks like a standard library module:
// it resolves, has an origin, and the origin is outside any third-party
// install directory. Packages installed under other paths are misjudged.
func IsStandard(spec ModuleSpec) bool {
	if !spec.Found || spec.Origin == "" {
		return false
	}
	for _, marker := range thirdPartyMarkers {
		if strings.Contains(spec.Origin, marker) {
			return false
		}
	}
	return true
}

// Conditions filters external modules by host state.
type Conditions struct {
	Exist    Condition
	Standard Condition
}

func (c Conditions) IsZero() bool {
	return c.Exist == Any && c.Standard == Any
}

// Allow reports whether every configured condition holds for name.
// The registry is only consulted when a condition is set.
func (c Conditions) Allow(ctx context.Context, registry Registry, name string) bool {
	if c.IsZero() {
		return true
	}
	spec := registry.Lookup(ctx, name)
	return c.Exist.holds(spec.Found) && c.Standard.holds(IsStandard(spec))
}
