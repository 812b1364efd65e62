package integrity

import "github.com/opendata-cz/cubepipe/rdf"

// Code-list checks: dimension values must belong to the code list the
// dimension declares, whether that list is a skos:ConceptScheme, a
// skos:Collection, or a qb:HierarchicalCodeList.

// IC-19: a value of a coded dimension whose code list is a
// skos:ConceptScheme must be a skos:Concept in that scheme.
func checkCodesFromScheme(g *rdf.Graph) bool {
	return violatesCodeList(g, func(g *rdf.Graph, list, v rdf.Term) bool {
		if !g.HasType(list, skosConceptScheme) {
			return false
		}
		return !g.HasType(v, skosConcept) || !g.Has(v, skosPropInScheme, list)
	})
}

// IC-19b: a value of a coded dimension whose code list is a
// skos:Collection must be a skos:Concept reachable through one or more
// skos:member steps.
func checkCodesFromCollection(g *rdf.Graph) bool {
	return violatesCodeList(g, func(g *rdf.Graph, list, v rdf.Term) bool {
		if !g.HasType(list, skosCollection) {
			return false
		}
		return !g.HasType(v, skosConcept) || !memberClosureContains(g, list, v)
	})
}

// IC-20: a value of a coded dimension whose code list is a
// qb:HierarchicalCodeList with a direct (IRI-valued) parent-child
// property must be reachable from a hierarchy root by zero or more
// steps along such a property. Lists without a direct parent-child
// property are out of scope for this check.
func checkCodesFromHierarchy(g *rdf.Graph) bool {
	return violatesCodeList(g, func(g *rdf.Graph, list, v rdf.Term) bool {
		if !g.HasType(list, qbHierarchicalCodeList) {
			return false
		}
		props := directParentChildProperties(g, list)
		if len(props) == 0 {
			return false
		}
		return !inHierarchy(g, list, props, v, false)
	})
}

// IC-21: as IC-20, but for hierarchies whose parent-child property is
// declared inverse (a blank node carrying owl:inverseOf), following the
// named property from child to parent. Lists without an inverse
// declaration are out of scope for this check.
func checkCodesFromInvertedHierarchy(g *rdf.Graph) bool {
	return violatesCodeList(g, func(g *rdf.Graph, list, v rdf.Term) bool {
		if !g.HasType(list, qbHierarchicalCodeList) {
			return false
		}
		props := inverseParentChildProperties(g, list)
		if len(props) == 0 {
			return false
		}
		return !inHierarchy(g, list, props, v, true)
	})
}

type codeListCheck func(g *rdf.Graph, list, v rdf.Term) bool

// violatesCodeList walks every observation value of every coded
// dimension declared by the observation's DSD and applies check to each
// (code list, value) pair.
func violatesCodeList(g *rdf.Graph, check codeListCheck) bool {
	for _, obs := range g.SubjectsWithPredicate(qbPropDataSet) {
		for _, dsd := range g.PathObjects(obs, qbPropDataSet, qbPropStructure) {
			for _, dim := range rdf.Distinct(g.PathObjects(dsd, qbPropComponent, qbPropComponentProperty)) {
				if !g.HasType(dim, qbDimensionProperty) {
					continue
				}
				for _, list := range g.Objects(dim, qbPropCodeList) {
					for _, v := range g.Objects(obs, dim) {
						if check(g, list, v) {
							return true
						}
					}
				}
			}
		}
	}
	return false
}

// memberClosureContains reports whether v is reachable from the
// collection through at least one skos:member step.
func memberClosureContains(g *rdf.Graph, collection, v rdf.Term) bool {
	for _, m := range g.Objects(collection, skosPropMember) {
		if g.Reachable(m, skosPropMember, v) {
			return true
		}
	}
	return false
}

// directParentChildProperties returns the IRI-valued parent-child
// properties a hierarchical code list declares.
func directParentChildProperties(g *rdf.Graph, list rdf.Term) []rdf.Term {
	var props []rdf.Term
	for _, p := range g.Objects(list, qbPropParentChildProperty) {
		if p.IsIRI() {
			props = append(props, p)
		}
	}
	return props
}

// inverseParentChildProperties returns the named properties behind any
// inverse parent-child declarations, each written as a blank node with
// owl:inverseOf pointing at the property to follow backwards.
func inverseParentChildProperties(g *rdf.Graph, list rdf.Term) []rdf.Term {
	var props []rdf.Term
	for _, pcp := range g.Objects(list, qbPropParentChildProperty) {
		if !pcp.IsBlank() {
			continue
		}
		for _, p := range g.Objects(pcp, owlInverseOf) {
			if p.IsIRI() {
				props = append(props, p)
			}
		}
	}
	return props
}

// inHierarchy reports whether v is reachable from some hierarchy root
// along some of the given parent-child properties, with a root itself
// counting as reachable in zero steps.
func inHierarchy(g *rdf.Graph, list rdf.Term, props []rdf.Term, v rdf.Term, inverted bool) bool {
	for _, root := range g.Objects(list, qbPropHierarchyRoot) {
		for _, p := range props {
			if inverted {
				if g.ReachableInverse(root, p, v) {
					return true
				}
			} else if g.Reachable(root, p, v) {
				return true
			}
		}
	}
	return false
}
