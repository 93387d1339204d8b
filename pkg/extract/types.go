package extract

import (
	"sort"
	"strings"

	"github.com/ifcinspect/ifcinspect/pkg/resolver"
	"github.com/ifcinspect/ifcinspect/pkg/step"
)

// familyIDs holds the sorted explicit type and instance entity ids
// discovered for one family (spec 4.4 step 3), before type↔instance
// links (step 4) are applied.
type familyIDs struct {
	typeIDs     []uint64
	instanceIDs []uint64
}

// collectFamilies walks every declared family and returns the explicit
// type/instance entity ids it finds in the resolver, in ascending id
// order.
func collectFamilies(r *resolver.Resolver) []familyIDs {
	out := make([]familyIDs, len(families))
	for i, fam := range families {
		out[i].typeIDs = mergeSortedIDs(r, fam.typeTypes)
		out[i].instanceIDs = mergeSortedIDs(r, fam.instanceTypes)
	}
	return out
}

func mergeSortedIDs(r *resolver.Resolver, typeNames []string) []uint64 {
	var ids []uint64
	for _, name := range typeNames {
		ids = append(ids, r.ByType(name)...)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// elementTypeDraft is the mutable record the extractor builds up
// before freezing it into an ifcmodel.ElementType.
type elementTypeDraft struct {
	id            uint64
	globalID      string
	name          string
	categoryName  string
	instanceIDs   []uint64
	properties    map[string]string
}

// buildExplicitTypes creates one draft per explicit *TYPE/*STYLE entity
// in a family, keyed by entity id for later lookup by the type↔instance
// link pass.
func buildExplicitTypes(r *resolver.Resolver, fam family, typeIDs []uint64) map[uint64]*elementTypeDraft {
	drafts := map[uint64]*elementTypeDraft{}
	for _, id := range typeIDs {
		e, _ := r.Entity(id)
		name := displayName(e)
		if name == "" {
			name = e.Type
		}
		drafts[id] = &elementTypeDraft{
			id:           id,
			globalID:     globalID(e),
			name:         name,
			categoryName: fam.category,
		}
	}
	return drafts
}

// syntheticTypeName picks the display name for the synthetic bucket
// that groups a family's unassigned instances (spec 4.4 step 3): the
// sole instance's own Name when there is exactly one, otherwise the
// family's display name.
func syntheticTypeName(r *resolver.Resolver, fam family, instanceIDs []uint64) string {
	if len(instanceIDs) == 1 {
		e, _ := r.Entity(instanceIDs[0])
		if name := displayName(e); name != "" {
			return name
		}
	}
	return fam.category
}

func tagField(e *step.Entity) string {
	s, _ := e.Field(7).AsString()
	return s
}

// caseInsensitiveLess orders two names ascending, case-insensitively —
// the tie-break rule in spec 4.4 step 7 and testable scenario E.
func caseInsensitiveLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
