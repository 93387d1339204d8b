package extract

import (
	"github.com/ifcinspect/ifcinspect/pkg/resolver"
)

// resolveTypeLinks implements spec 4.4 step 4: for each
// IFCRELDEFINESBYTYPE, in ascending entity-id (file) order, map every
// related instance to the relating type. A later relation overwrites an
// earlier one for the same instance (last-writer-wins). Links to a type
// entity outside the known families are ignored, leaving the instance
// to fall back to its family's synthetic type.
func resolveTypeLinks(r *resolver.Resolver, knownTypes map[uint64]*elementTypeDraft) map[uint64]uint64 {
	assigned := map[uint64]uint64{}
	for _, relID := range r.ByType("IFCRELDEFINESBYTYPE") {
		rel, _ := r.Entity(relID)
		relatingType, ok := r.Resolve(rel.Field(5))
		if !ok {
			continue
		}
		if _, known := knownTypes[relatingType.ID]; !known {
			continue
		}
		for _, inst := range r.ResolveList(rel.Field(4)) {
			assigned[inst.ID] = relatingType.ID
		}
	}
	return assigned
}

// resolveStoreyLinks implements spec 4.4 step 5: for each
// IFCRELCONTAINEDINSPATIALSTRUCTURE whose relating structure is a
// storey, record element -> storey for every listed element. Dangling
// references in the related-elements list are silently skipped
// (testable property 8.9); a later relation wins over an earlier one
// for the same element (design note, spec 9).
func resolveStoreyLinks(r *resolver.Resolver) map[uint64]uint64 {
	elementToStorey := map[uint64]uint64{}
	for _, relID := range r.ByType("IFCRELCONTAINEDINSPATIALSTRUCTURE") {
		rel, _ := r.Entity(relID)
		structure, ok := r.Resolve(rel.Field(5))
		if !ok || structure.Type != "IFCBUILDINGSTOREY" {
			continue
		}
		for _, elem := range r.ResolveList(rel.Field(4)) {
			elementToStorey[elem.ID] = structure.ID
		}
	}
	return elementToStorey
}

// resolvePropertySets implements spec 4.4 step 6: for each
// IFCRELDEFINESBYPROPERTIES, follow the relating property definition to
// an IFCPROPERTYSET and apply its formatted properties to every related
// type or instance. typeDrafts and instanceIDs identify which related
// object ids are types versus instances; anything else is ignored.
func resolvePropertySets(
	r *resolver.Resolver,
	typeDrafts map[uint64]*elementTypeDraft,
	instanceIDs map[uint64]bool,
	instanceProps map[uint64]map[string]string,
) {
	for _, relID := range r.ByType("IFCRELDEFINESBYPROPERTIES") {
		rel, _ := r.Entity(relID)
		propertySet, ok := r.Resolve(rel.Field(5))
		if !ok || propertySet.Type != "IFCPROPERTYSET" {
			continue
		}
		props := collectProperties(r, propertySet)
		if len(props) == 0 {
			continue
		}
		for _, obj := range r.ResolveList(rel.Field(4)) {
			if draft, ok := typeDrafts[obj.ID]; ok {
				if draft.properties == nil {
					draft.properties = map[string]string{}
				}
				mergeProperties(draft.properties, props)
				continue
			}
			if instanceIDs[obj.ID] {
				if instanceProps[obj.ID] == nil {
					instanceProps[obj.ID] = map[string]string{}
				}
				mergeProperties(instanceProps[obj.ID], props)
			}
		}
	}
}
