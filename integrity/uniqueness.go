package integrity

import "github.com/opendata-cz/cubepipe/rdf"

// Uniqueness checks: a typed entity must carry exactly one link of a given
// kind. Zero links (missing) and two distinct links (ambiguous) are both
// violations.

// IC-1: every qb:Observation has exactly one qb:dataSet.
func checkUniqueDataSet(g *rdf.Graph) bool {
	for _, obs := range g.SubjectsOfType(qbObservation) {
		if !exactlyOne(g, obs, qbPropDataSet) {
			return true
		}
	}
	return false
}

// IC-2: every qb:DataSet has exactly one qb:structure.
func checkUniqueDSD(g *rdf.Graph) bool {
	for _, ds := range g.SubjectsOfType(qbDataSet) {
		if !exactlyOne(g, ds, qbPropStructure) {
			return true
		}
	}
	return false
}

// IC-9: every qb:Slice has exactly one qb:sliceStructure.
func checkUniqueSliceStructure(g *rdf.Graph) bool {
	for _, slice := range g.SubjectsOfType(qbSlice) {
		if !exactlyOne(g, slice, qbPropSliceStructure) {
			return true
		}
	}
	return false
}

func exactlyOne(g *rdf.Graph, s, p rdf.Term) bool {
	return len(rdf.Distinct(g.Objects(s, p))) == 1
}
