package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifcinspect/ifcinspect/pkg/ifcmodel"
)

func buildTestProject() *ifcmodel.Project {
	p := ifcmodel.NewProject("Test", "IFC4", "t.ifc")
	p.AddStorey(&ifcmodel.Storey{ID: 10, Name: "Ground", Elevation: 0})
	p.AddStorey(&ifcmodel.Storey{ID: 20, Name: "First", Elevation: 3000})
	p.AddCategory(&ifcmodel.Category{
		Name: "Walls",
		Types: []*ifcmodel.ElementType{
			{ID: 100, Name: "Basic 200", InstanceCount: 2, InstanceIDs: []uint64{1, 2}},
		},
	})
	p.AddElement(&ifcmodel.Element{ID: 1, StoreyID: 10, HasStory: true}, nil)
	p.AddElement(&ifcmodel.Element{ID: 2, StoreyID: 20, HasStory: true}, nil)
	return p
}

func TestController_StartsOnDashboardWithCategoriesFocused(t *testing.T) {
	c := New(buildTestProject())
	assert.Equal(t, ViewDashboard, c.View())
	assert.Equal(t, FocusCategories, c.Focus())
}

func TestController_SelectOnCategoryFocusesTypes(t *testing.T) {
	c := New(buildTestProject())
	c.Select()
	assert.Equal(t, FocusTypes, c.Focus())
}

func TestController_SelectOnTypeDrillsIntoDetail(t *testing.T) {
	c := New(buildTestProject())
	c.SetFocus(FocusTypes)
	c.Select()
	assert.Equal(t, ViewTypeDetail, c.View())
	tp, ok := c.SelectedType()
	require.True(t, ok)
	assert.Equal(t, "Basic 200", tp.Name)
}

func TestController_BackUnwindsViewStack(t *testing.T) {
	c := New(buildTestProject())
	c.SetFocus(FocusTypes)
	c.Select()
	c.EnterInstanceBrowser()
	assert.Equal(t, ViewInstanceBrowser, c.View())

	c.Back()
	assert.Equal(t, ViewTypeDetail, c.View())
	c.Back()
	assert.Equal(t, ViewDashboard, c.View())
	c.Back()
	assert.Equal(t, ViewDashboard, c.View())
}

func TestController_StoreyFilterNarrowsVisibleTypes(t *testing.T) {
	c := New(buildTestProject())
	c.SetFocus(FocusLevels)
	c.Select() // selects the storey at cursor 0 (StoreysDescending puts "First" first)

	visible := c.VisibleTypes()
	require.Len(t, visible, 1)
	assert.Equal(t, "Basic 200", visible[0].Name)

	c.ClearStoreyFilter()
	_, hasFilter := c.StoreyFilter()
	assert.False(t, hasFilter)
}

func TestController_MoveCursorClampsAtBounds(t *testing.T) {
	c := New(buildTestProject())
	c.MoveCursor(-5)
	assert.Equal(t, 0, c.CursorIndex())
	c.MoveCursor(50)
	assert.Equal(t, 0, c.CursorIndex()) // only one category
}
