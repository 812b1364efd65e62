package integrity

import "github.com/opendata-cz/cubepipe/rdf"

// Constraint is one well-formedness condition over a data cube graph.
// Check returns true when the graph violates the constraint.
type Constraint struct {
	ID    string
	Name  string
	Check func(g *rdf.Graph) bool
}

// Battery returns the full constraint set in evaluation order. The two
// code-list forms of IC-19 run as separate entries so a report can name
// which one failed.
func Battery() []Constraint {
	return []Constraint{
		{ID: "IC-1", Name: "Unique DataSet", Check: checkUniqueDataSet},
		{ID: "IC-2", Name: "Unique DSD", Check: checkUniqueDSD},
		{ID: "IC-3", Name: "DSD includes measure", Check: checkDSDIncludesMeasure},
		{ID: "IC-4", Name: "Dimensions have range", Check: checkDimensionsHaveRange},
		{ID: "IC-5", Name: "Concept dimensions have code lists", Check: checkConceptDimensionsHaveCodeLists},
		{ID: "IC-6", Name: "Only attributes may be optional", Check: checkOnlyAttributesOptional},
		{ID: "IC-7", Name: "Slice keys must be declared", Check: checkSliceKeysDeclared},
		{ID: "IC-8", Name: "Slice keys consistent with DSD", Check: checkSliceKeysConsistent},
		{ID: "IC-9", Name: "Unique slice structure", Check: checkUniqueSliceStructure},
		{ID: "IC-10", Name: "Slice dimensions complete", Check: checkSliceDimensionsComplete},
		{ID: "IC-11", Name: "All dimensions required", Check: checkAllDimensionsRequired},
		{ID: "IC-12", Name: "No duplicate observations", Check: checkNoDuplicateObservations},
		{ID: "IC-13", Name: "Required attributes", Check: checkRequiredAttributes},
		{ID: "IC-14", Name: "All measures present", Check: checkAllMeasuresPresent},
		{ID: "IC-15", Name: "Measure dimension consistent", Check: checkMeasureDimensionConsistent},
		{ID: "IC-16", Name: "Single measure on measure dimension observation", Check: checkSingleMeasure},
		{ID: "IC-17", Name: "All measures present in measures dimension cube", Check: checkAllMeasuresPresentAtPoint},
		{ID: "IC-18", Name: "Consistent dataset links", Check: checkConsistentDataSetLinks},
		{ID: "IC-19", Name: "Codes from scheme", Check: checkCodesFromScheme},
		{ID: "IC-19b", Name: "Codes from collection", Check: checkCodesFromCollection},
		{ID: "IC-20", Name: "Codes from hierarchy", Check: checkCodesFromHierarchy},
		{ID: "IC-21", Name: "Codes from hierarchy (inverse)", Check: checkCodesFromInvertedHierarchy},
	}
}
