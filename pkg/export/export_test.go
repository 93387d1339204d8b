package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifcinspect/ifcinspect/pkg/ifcmodel"
)

func buildTestProject() *ifcmodel.Project {
	p := ifcmodel.NewProject("TestProj", "IFC4", "test.ifc")
	p.AddStorey(&ifcmodel.Storey{ID: 2, Name: "Level 0", Elevation: 0, ElementCount: 2})
	p.AddCategory(&ifcmodel.Category{
		Name:     "Walls",
		Priority: true,
		Types: []*ifcmodel.ElementType{
			{ID: 6, GlobalID: "gwt", Name: "Basic 200", InstanceCount: 2, InstanceIDs: []uint64{3, 4}, Properties: map[string]string{"Width": "200.00 mm"}},
		},
		TotalCount: 2,
	})
	p.AddElement(&ifcmodel.Element{ID: 3, GlobalID: "g3", Name: "W-A", StoreyID: 2, HasStory: true, TypeID: 6, HasType: true}, nil)
	p.AddElement(&ifcmodel.Element{ID: 4, GlobalID: "g4", Name: "W-B", StoreyID: 2, HasStory: true, TypeID: 6, HasType: true}, nil)
	return p
}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	p := buildTestProject()
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(p, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Category,Type Name,Instance Count,Global ID")
	assert.Contains(t, content, "Walls,Basic 200,2,gwt")
}

func TestWriteCSV_Idempotent(t *testing.T) {
	p := buildTestProject()
	dir := t.TempDir()
	path1 := filepath.Join(dir, "a.csv")
	path2 := filepath.Join(dir, "b.csv")
	require.NoError(t, WriteCSV(p, path1))
	require.NoError(t, WriteCSV(p, path2))

	a, err := os.ReadFile(path1)
	require.NoError(t, err)
	b, err := os.ReadFile(path2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWriteJSON_MirrorsProjectGraph(t *testing.T) {
	p := buildTestProject()
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(p, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc structuredDoc
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "TestProj", doc.Name)
	assert.Equal(t, "IFC4", doc.Schema)
	require.Len(t, doc.Storeys, 1)
	assert.Equal(t, "Level 0", doc.Storeys[0].Name)

	require.Len(t, doc.Categories, 1)
	require.Len(t, doc.Categories[0].Types, 1)
	wtype := doc.Categories[0].Types[0]
	assert.Equal(t, "Basic 200", wtype.Name)
	require.Len(t, wtype.Instances, 2)
	assert.Equal(t, uint64(3), wtype.Instances[0].ID)
	assert.Equal(t, "g3", wtype.Instances[0].GlobalID)
}

func TestWriteCSV_CreateFailureWrapsError(t *testing.T) {
	p := buildTestProject()
	err := WriteCSV(p, filepath.Join(t.TempDir(), "missing-dir", "out.csv"))
	require.Error(t, err)
}
