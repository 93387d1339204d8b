package extract

import (
	"fmt"
	"strings"

	"github.com/ifcinspect/ifcinspect/pkg/resolver"
	"github.com/ifcinspect/ifcinspect/pkg/step"
)

// formatValue renders a single STEP property value according to the
// deterministic, locale-independent rule in spec 4.4 step 6. Null
// values are signalled by the second return value being false, telling
// the caller to omit the property entirely.
func formatValue(v step.Value) (string, bool) {
	switch v.Kind {
	case step.KindReal:
		suffix := unitSuffix[v.Wrapper]
		return fmt.Sprintf("%.2f%s", v.Real, suffix), true
	case step.KindInteger:
		return fmt.Sprintf("%d", v.Int), true
	case step.KindBoolean:
		if v.Bool {
			return "true", true
		}
		return "false", true
	case step.KindString, step.KindEnum:
		return v.Str, true
	case step.KindNull, step.KindDerived:
		return "", false
	default:
		return "", false
	}
}

// collectProperties walks an IFCPROPERTYSET's property references and
// returns a name -> formatted-value map, keeping only the first
// occurrence of a duplicated property name (spec 4.4 step 6, testable
// property 8.10).
func collectProperties(r *resolver.Resolver, propertySet *step.Entity) map[string]string {
	out := map[string]string{}
	if propertySet == nil {
		return out
	}
	// IFCPROPERTYSET('GlobalId', OwnerHistory, 'Name', 'Description', HasProperties)
	props := r.ResolveList(propertySet.Field(4))
	for _, prop := range props {
		if prop.Type != "IFCPROPERTYSINGLEVALUE" {
			continue
		}
		name, ok := prop.Field(0).AsString()
		if !ok || name == "" {
			continue
		}
		if _, dup := out[name]; dup {
			continue
		}
		formatted, keep := formatValue(prop.Field(2))
		if !keep {
			continue
		}
		out[name] = formatted
	}
	return out
}

// mergeProperties copies src into dst, keeping dst's existing entries
// on name collision (first-write-wins, matching collectProperties'
// own duplicate rule extended across multiple property sets attached
// to the same owner).
func mergeProperties(dst, src map[string]string) {
	for k, v := range src {
		if _, exists := dst[k]; !exists {
			dst[k] = v
		}
	}
}

// globalID reads an entity's GlobalId field (always field 0 for IFC
// root objects) as a string, tolerating its absence per spec invariant
// 6.
func globalID(e *step.Entity) string {
	if e == nil {
		return ""
	}
	s, _ := e.Field(0).AsString()
	return strings.TrimSpace(s)
}

// displayName reads an entity's Name field (field index 2 for
// IfcRoot-derived entities: GlobalId, OwnerHistory, Name, ...).
func displayName(e *step.Entity) string {
	if e == nil {
		return ""
	}
	s, _ := e.Field(2).AsString()
	return s
}
