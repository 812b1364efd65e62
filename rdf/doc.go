// Package rdf provides the in-memory triple model used throughout the
// pipeline: a compact comparable Term type, a Triple, and an indexed
// read-oriented Graph.
//
// Graphs are loaded from Turtle or N-Triples documents via the knakk/rdf
// streaming decoder, or built triple by triple by the cube, provenance,
// and catalog builders. Once built, a Graph is treated as read-only by
// consumers; the integrity checks rely on that.
package rdf
