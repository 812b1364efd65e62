package integrity

import (
	"github.com/opendata-cz/cubepipe/rdf"
	"github.com/opendata-cz/cubepipe/vocabulary/core"
	"github.com/opendata-cz/cubepipe/vocabulary/qb"
	"github.com/opendata-cz/cubepipe/vocabulary/skos"
)

// Vocabulary terms the checks match against, built once.
var (
	qbObservation          = rdf.IRI(qb.Observation)
	qbDataSet              = rdf.IRI(qb.DataSet)
	qbDSD                  = rdf.IRI(qb.DataStructureDefinition)
	qbDimensionProperty    = rdf.IRI(qb.DimensionProperty)
	qbMeasureProperty      = rdf.IRI(qb.MeasureProperty)
	qbAttributeProperty    = rdf.IRI(qb.AttributeProperty)
	qbSliceKey             = rdf.IRI(qb.SliceKey)
	qbSlice                = rdf.IRI(qb.Slice)
	qbHierarchicalCodeList = rdf.IRI(qb.HierarchicalCodeList)

	qbPropDataSet             = rdf.IRI(qb.PropDataSet)
	qbPropStructure           = rdf.IRI(qb.PropStructure)
	qbPropComponent           = rdf.IRI(qb.PropComponent)
	qbPropComponentProperty   = rdf.IRI(qb.PropComponentProperty)
	qbPropComponentRequired   = rdf.IRI(qb.PropComponentRequired)
	qbPropDimension           = rdf.IRI(qb.PropDimension)
	qbPropMeasure             = rdf.IRI(qb.PropMeasure)
	qbPropMeasureType         = rdf.IRI(qb.PropMeasureType)
	qbPropSliceKey            = rdf.IRI(qb.PropSliceKey)
	qbPropSliceStructure      = rdf.IRI(qb.PropSliceStructure)
	qbPropSlice               = rdf.IRI(qb.PropSlice)
	qbPropObservation         = rdf.IRI(qb.PropObservation)
	qbPropCodeList            = rdf.IRI(qb.PropCodeList)
	qbPropHierarchyRoot       = rdf.IRI(qb.PropHierarchyRoot)
	qbPropParentChildProperty = rdf.IRI(qb.PropParentChildProperty)

	skosConcept       = rdf.IRI(skos.Concept)
	skosConceptScheme = rdf.IRI(skos.ConceptScheme)
	skosCollection    = rdf.IRI(skos.Collection)
	skosPropInScheme  = rdf.IRI(skos.PropInScheme)
	skosPropMember    = rdf.IRI(skos.PropMember)

	rdfsRange    = rdf.IRI(core.RDFSRange)
	owlInverseOf = rdf.IRI(core.OWLInverseOf)

	boolTrue  = rdf.TypedLiteral("true", core.XSDBoolean)
	boolFalse = rdf.TypedLiteral("false", core.XSDBoolean)
)
