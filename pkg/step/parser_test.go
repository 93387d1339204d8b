package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioADoc = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
FILE_NAME('','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('0abc',$,'TestProj',$,$,$,$,$,$);
#2=IFCBUILDINGSTOREY('0st1',$,'Level 0',$,$,$,$,$,.ELEMENT.,0.);
#3=IFCWALL('0wl1',$,'W-A',$,$,$,$,$,$);
#4=IFCWALL('0wl2',$,'W-B',$,$,$,$,$,$);
#5=IFCRELCONTAINEDINSPATIALSTRUCTURE('0re1',$,$,$,(#3,#4),#2);
ENDSEC;
END-ISO-10303-21;
`

func TestParse_SchemaAndEntityCount(t *testing.T) {
	doc, err := Parse([]byte(scenarioADoc))
	require.NoError(t, err)
	assert.Equal(t, "IFC4", doc.Schema)
	assert.Len(t, doc.Entities, 5)

	project := doc.Entities[1]
	require.NotNil(t, project)
	assert.Equal(t, "IFCPROJECT", project.Type)
	name, ok := project.Field(2).AsString()
	require.True(t, ok)
	assert.Equal(t, "TestProj", name)
}

func TestParse_EmptyDataSection(t *testing.T) {
	src := `ISO-10303-21;
HEADER;
FILE_SCHEMA(('IFC2X3'));
ENDSEC;
DATA;
ENDSEC;
END-ISO-10303-21;
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "IFC2X3", doc.Schema)
	assert.Empty(t, doc.Entities)
}

func TestParse_TypedValueWrapperUnwraps(t *testing.T) {
	src := `ISO-10303-21;
HEADER;
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROPERTYSINGLEVALUE('Height',$,IFCLENGTHMEASURE(2400.0),$);
ENDSEC;
END-ISO-10303-21;
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	val := doc.Entities[1].Field(2)
	assert.Equal(t, KindReal, val.Kind)
	assert.Equal(t, 2400.0, val.Real)
	assert.Equal(t, "IFCLENGTHMEASURE", val.Wrapper)
}

func TestParse_EnumVsBooleanFields(t *testing.T) {
	src := `ISO-10303-21;
HEADER;
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCWALL('g',$,'W',$,$,$,$,$,.T.);
#2=IFCBUILDINGSTOREY('g2',$,'L0',$,$,$,$,$,.ELEMENT.,0.);
ENDSEC;
END-ISO-10303-21;
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	boolField := doc.Entities[1].Field(8)
	assert.Equal(t, KindBoolean, boolField.Kind)
	assert.True(t, boolField.Bool)

	enumField := doc.Entities[2].Field(8)
	assert.Equal(t, KindEnum, enumField.Kind)
	assert.Equal(t, "ELEMENT", enumField.Str)
}

func TestParse_DuplicateEntityIDFails(t *testing.T) {
	src := `ISO-10303-21;
HEADER;
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCWALL('g',$,'A',$,$,$,$,$,$);
#1=IFCWALL('g2',$,'B',$,$,$,$,$,$);
ENDSEC;
END-ISO-10303-21;
`
	_, err := Parse([]byte(src))
	require.Error(t, err)
}

func TestParse_MissingEndSectionFails(t *testing.T) {
	src := `ISO-10303-21;
HEADER;
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCWALL('g',$,'A',$,$,$,$,$,$);
`
	_, err := Parse([]byte(src))
	require.Error(t, err)
}

func TestEntity_FieldOutOfRangeIsNull(t *testing.T) {
	doc, err := Parse([]byte(scenarioADoc))
	require.NoError(t, err)
	f := doc.Entities[1].Field(99)
	assert.True(t, f.IsAbsent())
}
