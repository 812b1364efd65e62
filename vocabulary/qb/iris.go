package qb

// Namespace is the RDF Data Cube vocabulary base IRI.
const Namespace = "http://purl.org/linked-data/cube#"

// Class IRIs.
const (
	Observation             = Namespace + "Observation"
	DataSet                 = Namespace + "DataSet"
	DataStructureDefinition = Namespace + "DataStructureDefinition"
	DimensionProperty       = Namespace + "DimensionProperty"
	MeasureProperty         = Namespace + "MeasureProperty"
	AttributeProperty       = Namespace + "AttributeProperty"
	SliceKey                = Namespace + "SliceKey"
	Slice                   = Namespace + "Slice"
	HierarchicalCodeList    = Namespace + "HierarchicalCodeList"
)

// Property IRIs.
const (
	PropDataSet             = Namespace + "dataSet"
	PropStructure           = Namespace + "structure"
	PropComponent           = Namespace + "component"
	PropComponentProperty   = Namespace + "componentProperty"
	PropComponentRequired   = Namespace + "componentRequired"
	PropComponentAttachment = Namespace + "componentAttachment"
	PropDimension           = Namespace + "dimension"
	PropMeasure             = Namespace + "measure"
	PropAttribute           = Namespace + "attribute"
	PropMeasureType         = Namespace + "measureType"
	PropOrder               = Namespace + "order"
	PropSliceKey            = Namespace + "sliceKey"
	PropSliceStructure      = Namespace + "sliceStructure"
	PropSlice               = Namespace + "slice"
	PropObservation         = Namespace + "observation"
	PropCodeList            = Namespace + "codeList"
	PropHierarchyRoot       = Namespace + "hierarchyRoot"
	PropParentChildProperty = Namespace + "parentChildProperty"
)
