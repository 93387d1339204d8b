// Package extract implements the domain extraction pass (spec 4.4): a
// single, deterministic walk over a parsed and resolved STEP entity
// table that materialises the immutable project graph consumed by the
// dashboard and exporters.
package extract

import (
	"log/slog"
	"sort"

	"github.com/ifcinspect/ifcinspect/pkg/ifcmodel"
	"github.com/ifcinspect/ifcinspect/pkg/resolver"
	"github.com/ifcinspect/ifcinspect/pkg/step"
)

// Options tunes extraction behaviour; the zero value is the documented
// default for every field.
type Options struct {
	// Logger receives structured progress entries. A nil Logger
	// defaults to slog.Default(), matching the teacher pipeline's
	// logger-or-default convention.
	Logger *slog.Logger
}

// Extract builds the immutable project graph from a parsed STEP
// document. It never returns an error today — every documented failure
// mode (missing IFCPROJECT, missing storeys, dangling references) is an
// absent-but-valid result per spec 4.4's Error conditions — but it
// returns one for symmetry with the rest of the pipeline and to leave
// room for future invariant checks.
func Extract(doc *step.Document, sourcePath string, opts Options) (*ifcmodel.Project, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := resolver.New(doc.Entities)
	logger.Debug("extract: resolver built", "entities", len(doc.Entities), "schema", doc.Schema)

	proj := ifcmodel.NewProject(extractProjectName(r), doc.Schema, sourcePath)

	storeys := extractStoreys(r)

	famIDs := collectFamilies(r)

	// Global drafts, combined across families, for step 4/6 lookups.
	globalDrafts := map[uint64]*elementTypeDraft{}
	familyDrafts := make([]map[uint64]*elementTypeDraft, len(families))
	allInstanceIDs := map[uint64]bool{}
	for i, fam := range families {
		drafts := buildExplicitTypes(r, fam, famIDs[i].typeIDs)
		familyDrafts[i] = drafts
		for id, d := range drafts {
			globalDrafts[id] = d
		}
		for _, id := range famIDs[i].instanceIDs {
			allInstanceIDs[id] = true
		}
	}

	instanceType := resolveTypeLinks(r, globalDrafts)
	elementToStorey := resolveStoreyLinks(r)

	instanceProps := map[uint64]map[string]string{}
	resolvePropertySets(r, globalDrafts, allInstanceIDs, instanceProps)

	categories := buildCategories(r, famIDs, familyDrafts, instanceType)
	for _, c := range categories {
		proj.AddCategory(c)
	}

	for i := range families {
		for _, instID := range famIDs[i].instanceIDs {
			e, _ := r.Entity(instID)
			storeyID, hasStorey := elementToStorey[instID]
			typeID, hasType := instanceType[instID]
			el := &ifcmodel.Element{
				ID:       instID,
				GlobalID: globalID(e),
				Name:     displayName(e),
				Tag:      tagField(e),
				TypeID:   typeID,
				HasType:  hasType,
				StoreyID: storeyID,
				HasStory: hasStorey,
			}
			proj.AddElement(el, instanceProps[instID])
		}
	}

	for _, s := range storeys {
		s.ElementCount = countElementsOnStorey(elementToStorey, s.ID)
		proj.AddStorey(s)
	}

	logger.Info("extract: done",
		"categories", len(proj.Categories),
		"types", proj.TotalTypes(),
		"elements", proj.TotalElements(),
		"storeys", len(proj.Storeys),
	)
	return proj, nil
}

// extractProjectName implements spec 4.4 step 1: locate the single
// IFCPROJECT entity and use its Name field. A missing IFCPROJECT is not
// an error — the caller gets an empty name, per spec 4.4's Error
// conditions.
func extractProjectName(r *resolver.Resolver) string {
	ids := r.ByType("IFCPROJECT")
	if len(ids) == 0 {
		return ""
	}
	e, _ := r.Entity(ids[0])
	return displayName(e)
}

// extractStoreys implements spec 4.4 step 2.
func extractStoreys(r *resolver.Resolver) []*ifcmodel.Storey {
	var storeys []*ifcmodel.Storey
	for _, id := range r.ByType("IFCBUILDINGSTOREY") {
		e, _ := r.Entity(id)
		elevation, ok := e.Field(9).AsReal()
		if !ok {
			elevation = 0.0
		}
		storeys = append(storeys, &ifcmodel.Storey{
			ID:        id,
			Name:      displayName(e),
			Elevation: elevation,
		})
	}
	return storeys
}

func countElementsOnStorey(elementToStorey map[uint64]uint64, storeyID uint64) int {
	n := 0
	for _, sid := range elementToStorey {
		if sid == storeyID {
			n++
		}
	}
	return n
}

// buildCategories implements the rest of spec 4.4 step 3 (freezing
// drafts into ElementType records, with the synthetic bucket for
// unassigned instances) and step 7 (aggregation and ordering).
func buildCategories(
	r *resolver.Resolver,
	famIDs []familyIDs,
	familyDrafts []map[uint64]*elementTypeDraft,
	instanceType map[uint64]uint64,
) []*ifcmodel.Category {
	var priorityCats []*ifcmodel.Category
	var nonPriorityCats []*ifcmodel.Category

	for i, fam := range families {
		drafts := familyDrafts[i]
		// Bucket each family's explicit instances into their assigned
		// type, or the family's synthetic type when unassigned.
		var syntheticIDs []uint64
		for _, instID := range famIDs[i].instanceIDs {
			typeID, ok := instanceType[instID]
			if !ok {
				syntheticIDs = append(syntheticIDs, instID)
				continue
			}
			drafts[typeID].instanceIDs = append(drafts[typeID].instanceIDs, instID)
		}

		var types []*ifcmodel.ElementType
		for _, id := range famIDs[i].typeIDs {
			d := drafts[id]
			sort.Slice(d.instanceIDs, func(a, b int) bool { return d.instanceIDs[a] < d.instanceIDs[b] })
			types = append(types, &ifcmodel.ElementType{
				ID:            d.id,
				GlobalID:      d.globalID,
				Name:          d.name,
				CategoryName:  d.categoryName,
				InstanceCount: len(d.instanceIDs),
				InstanceIDs:   d.instanceIDs,
				Properties:    d.properties,
			})
		}
		if len(syntheticIDs) > 0 {
			sort.Slice(syntheticIDs, func(a, b int) bool { return syntheticIDs[a] < syntheticIDs[b] })
			types = append(types, &ifcmodel.ElementType{
				ID:            0,
				Name:          syntheticTypeName(r, fam, syntheticIDs),
				CategoryName:  fam.category,
				InstanceCount: len(syntheticIDs),
				InstanceIDs:   syntheticIDs,
			})
		}
		if len(types) == 0 {
			continue
		}

		sort.SliceStable(types, func(a, b int) bool {
			if types[a].InstanceCount != types[b].InstanceCount {
				return types[a].InstanceCount > types[b].InstanceCount
			}
			return caseInsensitiveLess(types[a].Name, types[b].Name)
		})

		total := 0
		for _, t := range types {
			total += t.InstanceCount
		}
		cat := &ifcmodel.Category{
			Name:       fam.category,
			Priority:   fam.priority,
			Types:      types,
			TotalCount: total,
		}
		if fam.priority {
			priorityCats = append(priorityCats, cat)
		} else {
			nonPriorityCats = append(nonPriorityCats, cat)
		}
	}

	sort.SliceStable(nonPriorityCats, func(a, b int) bool {
		return nonPriorityCats[a].TotalCount > nonPriorityCats[b].TotalCount
	})

	return append(priorityCats, nonPriorityCats...)
}
