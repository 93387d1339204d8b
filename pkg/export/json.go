package export

import (
	"encoding/json"
	"os"

	ifcerrors "github.com/ifcinspect/ifcinspect/internal/errors"
	"github.com/ifcinspect/ifcinspect/pkg/ifcmodel"
)

// structuredDoc mirrors the project graph verbatim (spec 4.6): numeric
// fields stay numeric, strings stay Unicode. It is a render-only view —
// pkg/ifcmodel's Project remains the source of truth.
type structuredDoc struct {
	Name       string              `json:"name"`
	Schema     string              `json:"schema"`
	SourcePath string              `json:"source_path"`
	Storeys    []structuredStorey  `json:"storeys"`
	Categories []structuredCategory `json:"categories"`
}

type structuredStorey struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Elevation    float64 `json:"elevation"`
	ElementCount int     `json:"element_count"`
}

type structuredCategory struct {
	Name       string            `json:"name"`
	Priority   bool              `json:"priority"`
	TotalCount int               `json:"total_count"`
	Types      []structuredType  `json:"types"`
}

type structuredType struct {
	ID            uint64            `json:"id"`
	GlobalID      string            `json:"global_id"`
	Name          string            `json:"name"`
	InstanceCount int               `json:"instance_count"`
	Instances     []structuredInstance `json:"instances"`
	Properties    map[string]string `json:"properties,omitempty"`
}

type structuredInstance struct {
	ID         uint64            `json:"id"`
	GlobalID   string            `json:"global_id"`
	Name       string            `json:"name"`
	Tag        string            `json:"tag,omitempty"`
	StoreyID   uint64            `json:"storey_id,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

func toStructured(proj *ifcmodel.Project) structuredDoc {
	doc := structuredDoc{
		Name:       proj.Name,
		Schema:     proj.Schema,
		SourcePath: proj.SourcePath,
	}
	for _, s := range proj.Storeys {
		doc.Storeys = append(doc.Storeys, structuredStorey{
			ID:           s.ID,
			Name:         s.Name,
			Elevation:    s.Elevation,
			ElementCount: s.ElementCount,
		})
	}
	for _, c := range proj.Categories {
		sc := structuredCategory{Name: c.Name, Priority: c.Priority, TotalCount: c.TotalCount}
		for _, t := range c.Types {
			st := structuredType{
				ID:            t.ID,
				GlobalID:      t.GlobalID,
				Name:          t.Name,
				InstanceCount: t.InstanceCount,
				Properties:    t.Properties,
			}
			for _, instID := range t.InstanceIDs {
				inst := structuredInstance{ID: instID}
				if e, ok := proj.ElementByID(instID); ok {
					inst.GlobalID = e.GlobalID
					inst.Name = e.Name
					inst.Tag = e.Tag
					if e.HasStory {
						inst.StoreyID = e.StoreyID
					}
				}
				inst.Properties = proj.ElementProperties(instID)
				st.Instances = append(st.Instances, inst)
			}
			sc.Types = append(sc.Types, st)
		}
		doc.Categories = append(doc.Categories, sc)
	}
	return doc
}

// WriteJSON renders the project graph as a single structured document
// mirroring categories -> types -> instance ids plus storeys, and
// writes it to path as pretty-printed JSON.
func WriteJSON(proj *ifcmodel.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return ifcerrors.FileCreate(path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toStructured(proj)); err != nil {
		f.Close()
		return ifcerrors.StructuredSerialize(err)
	}
	if err := f.Close(); err != nil {
		return ifcerrors.WriteError(path, err)
	}
	return nil
}
