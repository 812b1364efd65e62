// Package qb provides IRI constants for the W3C RDF Data Cube vocabulary.
//
// The Data Cube vocabulary models statistical datasets as observations
// described by dimensions, measures, and attributes, organized under a
// data structure definition. The integrity package checks graphs against
// the well-formedness constraints defined for this vocabulary.
package qb
