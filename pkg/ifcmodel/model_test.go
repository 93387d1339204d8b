package ifcmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestProject() *Project {
	p := NewProject("Test", "IFC4", "test.ifc")
	p.AddStorey(&Storey{ID: 10, Name: "Ground", Elevation: 0})
	p.AddStorey(&Storey{ID: 20, Name: "First", Elevation: 3000})
	p.AddCategory(&Category{
		Name:     "Walls",
		Priority: true,
		Types: []*ElementType{
			{ID: 100, Name: "Basic 200", InstanceCount: 2, InstanceIDs: []uint64{1, 2}},
		},
		TotalCount: 2,
	})
	p.AddElement(&Element{ID: 1, GlobalID: "g1", Name: "W-A", StoreyID: 10, HasStory: true}, map[string]string{"Width": "200.00 mm"})
	p.AddElement(&Element{ID: 2, GlobalID: "g2", Name: "W-B", StoreyID: 10, HasStory: true}, nil)
	return p
}

func TestProject_TotalElementsAndTypes(t *testing.T) {
	p := buildTestProject()
	assert.Equal(t, 2, p.TotalElements())
	assert.Equal(t, 1, p.TotalTypes())
}

func TestProject_StoreysDescendingDoesNotMutateInsertionOrder(t *testing.T) {
	p := buildTestProject()
	descending := p.StoreysDescending()
	require.Len(t, descending, 2)
	assert.Equal(t, "First", descending[0].Name)
	assert.Equal(t, "Ground", descending[1].Name)

	// Insertion-order Storeys is untouched.
	assert.Equal(t, "Ground", p.Storeys[0].Name)
}

func TestProject_TypeByIDIgnoresSyntheticZero(t *testing.T) {
	p := NewProject("T", "IFC4", "x.ifc")
	p.AddCategory(&Category{
		Name: "Walls",
		Types: []*ElementType{
			{ID: 0, Name: "Walls", InstanceCount: 1, InstanceIDs: []uint64{1}},
		},
	})
	_, ok := p.TypeByID(0)
	assert.False(t, ok)
}

func TestProject_InstancesOnStoreySortedAscending(t *testing.T) {
	p := buildTestProject()
	p.AddElement(&Element{ID: 3, GlobalID: "g3", StoreyID: 10, HasStory: true}, nil)
	ids := p.InstancesOnStorey(10)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
}

func TestProject_ElementPropertiesAndGlobalID(t *testing.T) {
	p := buildTestProject()
	assert.Equal(t, map[string]string{"Width": "200.00 mm"}, p.ElementProperties(1))
	assert.Nil(t, p.ElementProperties(2))
	assert.Equal(t, "g1", p.ElementGlobalID(1))
	assert.Equal(t, "", p.ElementGlobalID(999))
}

func TestProject_ElementStoreyAbsentWhenUnmapped(t *testing.T) {
	p := buildTestProject()
	p.AddElement(&Element{ID: 5, GlobalID: "g5"}, nil)
	_, ok := p.ElementStorey(5)
	assert.False(t, ok)
}
