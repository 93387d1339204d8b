package extract

// family describes one IFC entity family and the category it belongs
// to, per spec 4.4 step 3's priority mapping table. Declaration order
// here is the stable order the extractor walks families in, and the
// order priority categories are displayed in (spec 4.4 step 7).
type family struct {
	// instanceTypes are the upper-case IFC entity type names for
	// instances of this family (e.g. "IFCWALL", "IFCWALLSTANDARDCASE").
	instanceTypes []string
	// typeTypes are the corresponding *TYPE/*STYLE entity type names.
	typeTypes []string
	category  string
	priority  bool
}

// families is the declaration-order list the domain extractor iterates
// to build categories and element types. Walls collapse
// IFCWALL/IFCWALLSTANDARDCASE into one family per the open question in
// spec 9: both share a category and a synthetic type bucket.
var families = []family{
	{
		instanceTypes: []string{"IFCWALL", "IFCWALLSTANDARDCASE"},
		typeTypes:     []string{"IFCWALLTYPE"},
		category:      "Walls",
		priority:      true,
	},
	{
		instanceTypes: []string{"IFCDOOR"},
		typeTypes:     []string{"IFCDOORTYPE", "IFCDOORSTYLE"},
		category:      "Doors",
		priority:      true,
	},
	{
		instanceTypes: []string{"IFCWINDOW"},
		typeTypes:     []string{"IFCWINDOWTYPE", "IFCWINDOWSTYLE"},
		category:      "Windows",
		priority:      true,
	},
	{
		instanceTypes: []string{"IFCFURNISHINGELEMENT"},
		typeTypes:     []string{"IFCFURNISHINGELEMENTTYPE"},
		category:      "Furniture",
		priority:      true,
	},
	{
		instanceTypes: []string{"IFCSANITARYTERMINAL", "IFCFLOWTERMINAL", "IFCFLOWFIXTURE"},
		typeTypes:     []string{"IFCSANITARYTERMINALTYPE", "IFCFLOWTERMINALTYPE", "IFCFLOWFIXTURETYPE"},
		category:      "Fixtures",
		priority:      true,
	},
	{instanceTypes: []string{"IFCSLAB"}, typeTypes: []string{"IFCSLABTYPE"}, category: "Slabs"},
	{instanceTypes: []string{"IFCCOLUMN"}, typeTypes: []string{"IFCCOLUMNTYPE"}, category: "Columns"},
	{instanceTypes: []string{"IFCBEAM"}, typeTypes: []string{"IFCBEAMTYPE"}, category: "Beams"},
	{instanceTypes: []string{"IFCSTAIR"}, typeTypes: []string{"IFCSTAIRTYPE"}, category: "Stairs"},
	{instanceTypes: []string{"IFCRAILING"}, typeTypes: []string{"IFCRAILINGTYPE"}, category: "Railings"},
	{instanceTypes: []string{"IFCROOF"}, typeTypes: []string{"IFCROOFTYPE"}, category: "Roofs"},
	{instanceTypes: []string{"IFCCOVERING"}, typeTypes: []string{"IFCCOVERINGTYPE"}, category: "Coverings"},
	{instanceTypes: []string{"IFCCURTAINWALL"}, typeTypes: []string{"IFCCURTAINWALLTYPE"}, category: "Curtain Walls"},
}

// unitSuffix maps a typed-value wrapper name (spec 4.4 step 6) to the
// display suffix appended to a formatted Real property.
var unitSuffix = map[string]string{
	"IFCLENGTHMEASURE": " mm",
	"IFCAREAMEASURE":   " m²",
	"IFCVOLUMEMEASURE":  " m³",
}
