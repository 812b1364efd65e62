package integrity

import "github.com/opendata-cz/cubepipe/rdf"

// Structural completeness checks: universal quantification expressed as
// "fail if some entity lacks a required link".

// IC-3: every qb:DataStructureDefinition declares at least one measure.
func checkDSDIncludesMeasure(g *rdf.Graph) bool {
	for _, dsd := range g.SubjectsOfType(qbDSD) {
		found := false
		for _, comp := range g.Objects(dsd, qbPropComponent) {
			for _, m := range g.Objects(comp, qbPropMeasure) {
				if g.HasType(m, qbMeasureProperty) {
					found = true
				}
			}
		}
		if !found {
			return true
		}
	}
	return false
}

// IC-4: every qb:DimensionProperty has an rdfs:range.
func checkDimensionsHaveRange(g *rdf.Graph) bool {
	for _, dim := range g.SubjectsOfType(qbDimensionProperty) {
		if !g.HasAny(dim, rdfsRange) {
			return true
		}
	}
	return false
}

// IC-5: every dimension with range skos:Concept has a qb:codeList.
func checkConceptDimensionsHaveCodeLists(g *rdf.Graph) bool {
	for _, dim := range g.SubjectsOfType(qbDimensionProperty) {
		if g.Has(dim, rdfsRange, skosConcept) && !g.HasAny(dim, qbPropCodeList) {
			return true
		}
	}
	return false
}

// IC-6: only attributes may be marked optional via qb:componentRequired.
func checkOnlyAttributesOptional(g *rdf.Graph) bool {
	for _, t := range g.Triples() {
		if t.P != qbPropComponent {
			continue
		}
		spec := t.O
		if !g.Has(spec, qbPropComponentRequired, boolFalse) {
			continue
		}
		for _, prop := range g.Objects(spec, qbPropComponentProperty) {
			if !g.HasType(prop, qbAttributeProperty) {
				return true
			}
		}
	}
	return false
}

// IC-7: every qb:SliceKey is attached to every declared
// qb:DataStructureDefinition. This mirrors the cross-product form of the
// published ASK query, which flags any (key, DSD) pair without a
// qb:sliceKey link.
func checkSliceKeysDeclared(g *rdf.Graph) bool {
	keys := g.SubjectsOfType(qbSliceKey)
	for _, dsd := range g.SubjectsOfType(qbDSD) {
		for _, key := range keys {
			if !g.Has(dsd, qbPropSliceKey, key) {
				return true
			}
		}
	}
	return false
}

// IC-8: every component property of a slice key is declared as a
// component of the DSD the key belongs to.
func checkSliceKeysConsistent(g *rdf.Graph) bool {
	for _, key := range g.SubjectsOfType(qbSliceKey) {
		for _, prop := range g.Objects(key, qbPropComponentProperty) {
			for _, dsd := range g.Subjects(qbPropSliceKey, key) {
				declared := false
				for _, comp := range g.Objects(dsd, qbPropComponent) {
					if g.Has(comp, qbPropComponentProperty, prop) || g.Has(comp, qbPropDimension, prop) {
						declared = true
						break
					}
				}
				if !declared {
					return true
				}
			}
		}
	}
	return false
}

// IC-10: every slice has a value for each dimension of its slice
// structure.
func checkSliceDimensionsComplete(g *rdf.Graph) bool {
	for _, slice := range g.SubjectsWithPredicate(qbPropSliceStructure) {
		for _, key := range g.Objects(slice, qbPropSliceStructure) {
			for _, dim := range g.Objects(key, qbPropComponentProperty) {
				if !g.HasAny(slice, dim) {
					return true
				}
			}
		}
	}
	return false
}

// IC-11: every observation has a value for each dimension declared in its
// dataset's structure.
func checkAllDimensionsRequired(g *rdf.Graph) bool {
	for _, obs := range g.SubjectsWithPredicate(qbPropDataSet) {
		for _, dim := range declaredProperties(g, obs) {
			if g.HasType(dim, qbDimensionProperty) && !g.HasAny(obs, dim) {
				return true
			}
		}
	}
	return false
}

// IC-13: every observation has a value for each component marked
// required.
func checkRequiredAttributes(g *rdf.Graph) bool {
	for _, obs := range g.SubjectsWithPredicate(qbPropDataSet) {
		for _, comp := range g.PathObjects(obs, qbPropDataSet, qbPropStructure, qbPropComponent) {
			if !g.Has(comp, qbPropComponentRequired, boolTrue) {
				continue
			}
			for _, attr := range g.Objects(comp, qbPropComponentProperty) {
				if !g.HasAny(obs, attr) {
					return true
				}
			}
		}
	}
	return false
}

// IC-14: in a cube without a measure dimension, every observation has a
// value for every declared measure.
func checkAllMeasuresPresent(g *rdf.Graph) bool {
	for _, obs := range g.SubjectsWithPredicate(qbPropDataSet) {
		for _, dsd := range g.PathObjects(obs, qbPropDataSet, qbPropStructure) {
			props := g.PathObjects(dsd, qbPropComponent, qbPropComponentProperty)
			if containsTerm(props, qbPropMeasureType) {
				continue
			}
			for _, m := range props {
				if g.HasType(m, qbMeasureProperty) && !g.HasAny(obs, m) {
					return true
				}
			}
		}
	}
	return false
}

// declaredProperties returns the component properties of the structure of
// the observation's dataset.
func declaredProperties(g *rdf.Graph, obs rdf.Term) []rdf.Term {
	return g.PathObjects(obs, qbPropDataSet, qbPropStructure, qbPropComponent, qbPropComponentProperty)
}

func containsTerm(terms []rdf.Term, want rdf.Term) bool {
	for _, t := range terms {
		if t == want {
			return true
		}
	}
	return false
}
