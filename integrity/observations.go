package integrity

import "github.com/opendata-cz/cubepipe/rdf"

// Observation-level checks: duplicate detection, measure-dimension
// consistency, and slice back-references.

// IC-12: no two observations in the same dataset share values on every
// declared dimension. An observation pair only counts when at least one
// dimension binds for both; a dataset without dimension declarations
// cannot produce duplicates.
func checkNoDuplicateObservations(g *rdf.Graph) bool {
	for ds, observations := range observationsByDataset(g) {
		dims := datasetDimensions(g, ds)
		if len(dims) == 0 {
			continue
		}
		for i := 0; i < len(observations); i++ {
			for j := i + 1; j < len(observations); j++ {
				if allDimensionsEqual(g, observations[i], observations[j], dims) {
					return true
				}
			}
		}
	}
	return false
}

// IC-15: in a measure-dimension cube, every observation has a value for
// the measure named by its qb:measureType.
func checkMeasureDimensionConsistent(g *rdf.Graph) bool {
	for _, obs := range g.SubjectsWithPredicate(qbPropDataSet) {
		measures := g.Objects(obs, qbPropMeasureType)
		if len(measures) == 0 {
			continue
		}
		for _, dsd := range g.PathObjects(obs, qbPropDataSet, qbPropStructure) {
			if !dsdUsesMeasureType(g, dsd) {
				continue
			}
			for _, m := range measures {
				if !g.HasAny(obs, m) {
					return true
				}
			}
		}
	}
	return false
}

// IC-16: in a measure-dimension cube, an observation carries a value only
// for the measure named by its qb:measureType.
func checkSingleMeasure(g *rdf.Graph) bool {
	for _, obs := range g.SubjectsWithPredicate(qbPropDataSet) {
		measureTypes := g.Objects(obs, qbPropMeasureType)
		if len(measureTypes) == 0 {
			continue
		}
		for _, dsd := range g.PathObjects(obs, qbPropDataSet, qbPropStructure) {
			if !dsdUsesMeasureType(g, dsd) {
				continue
			}
			for _, declared := range g.PathObjects(dsd, qbPropComponent, qbPropComponentProperty) {
				if !g.HasType(declared, qbMeasureProperty) || !g.HasAny(obs, declared) {
					continue
				}
				for _, m := range measureTypes {
					if declared != m {
						return true
					}
				}
			}
		}
	}
	return false
}

// IC-17: in a measure-dimension cube, every point in dimension space that
// has one observation has an observation for each declared measure. For
// each observation, the observations in the same dataset that agree on
// every non-measure dimension are counted (one per bound qb:measureType)
// and the count must equal the number of declared measures.
func checkAllMeasuresPresentAtPoint(g *rdf.Graph) bool {
	for _, dsd := range g.SubjectsWithPredicate(qbPropComponent) {
		numMeasures := 0
		for _, m := range rdf.Distinct(g.PathObjects(dsd, qbPropComponent, qbPropComponentProperty)) {
			if g.HasType(m, qbMeasureProperty) {
				numMeasures++
			}
		}
		if numMeasures == 0 {
			continue
		}
		dims := nonMeasureDimensions(g, dsd)

		for _, ds := range g.Subjects(qbPropStructure, dsd) {
			inDataset := g.Subjects(qbPropDataSet, ds)
			for _, obs1 := range inDataset {
				if !g.HasAny(obs1, qbPropMeasureType) {
					continue
				}
				count := 0
				for _, obs2 := range inDataset {
					m2 := g.Objects(obs2, qbPropMeasureType)
					if len(m2) == 0 {
						continue
					}
					if !dimensionsDisagree(g, obs1, obs2, dims) {
						count += len(m2)
					}
				}
				if count != numMeasures {
					return true
				}
			}
		}
	}
	return false
}

// IC-18: a slice's observations must point back to the dataset the slice
// belongs to.
func checkConsistentDataSetLinks(g *rdf.Graph) bool {
	for _, t := range g.Triples() {
		if t.P != qbPropSlice {
			continue
		}
		ds, slice := t.S, t.O
		for _, obs := range g.Objects(slice, qbPropObservation) {
			if !g.Has(obs, qbPropDataSet, ds) {
				return true
			}
		}
	}
	return false
}

func observationsByDataset(g *rdf.Graph) map[rdf.Term][]rdf.Term {
	out := make(map[rdf.Term][]rdf.Term)
	seen := make(map[rdf.Triple]struct{})
	for _, t := range g.Triples() {
		if t.P != qbPropDataSet {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out[t.O] = append(out[t.O], t.S)
	}
	return out
}

func datasetDimensions(g *rdf.Graph, ds rdf.Term) []rdf.Term {
	var dims []rdf.Term
	for _, prop := range rdf.Distinct(g.PathObjects(ds, qbPropStructure, qbPropComponent, qbPropComponentProperty)) {
		if g.HasType(prop, qbDimensionProperty) {
			dims = append(dims, prop)
		}
	}
	return dims
}

func nonMeasureDimensions(g *rdf.Graph, dsd rdf.Term) []rdf.Term {
	var dims []rdf.Term
	for _, prop := range rdf.Distinct(g.PathObjects(dsd, qbPropComponent, qbPropComponentProperty)) {
		if prop != qbPropMeasureType && g.HasType(prop, qbDimensionProperty) {
			dims = append(dims, prop)
		}
	}
	return dims
}

func dsdUsesMeasureType(g *rdf.Graph, dsd rdf.Term) bool {
	return containsTerm(g.PathObjects(dsd, qbPropComponent, qbPropComponentProperty), qbPropMeasureType)
}

// allDimensionsEqual reports whether every bound value pair agrees on
// every dimension where both observations bind, with at least one such
// binding.
func allDimensionsEqual(g *rdf.Graph, obs1, obs2 rdf.Term, dims []rdf.Term) bool {
	bound := false
	for _, dim := range dims {
		v1s := g.Objects(obs1, dim)
		v2s := g.Objects(obs2, dim)
		for _, v1 := range v1s {
			for _, v2 := range v2s {
				bound = true
				if v1 != v2 {
					return false
				}
			}
		}
	}
	return bound
}

// dimensionsDisagree reports whether some dimension binds differing
// values on the two observations.
func dimensionsDisagree(g *rdf.Graph, obs1, obs2 rdf.Term, dims []rdf.Term) bool {
	for _, dim := range dims {
		for _, v1 := range g.Objects(obs1, dim) {
			for _, v2 := range g.Objects(obs2, dim) {
				if v1 != v2 {
					return true
				}
			}
		}
	}
	return false
}
