// Package integrity checks RDF graphs against the W3C RDF Data Cube
// integrity constraints (IC-1 through IC-21, with both forms of IC-19).
//
// Each constraint is a graph-pattern check expressed directly against the
// indexed graph; the battery is a fixed ordered table, evaluated
// independently per constraint. A constraint whose vocabulary terms are
// absent from the graph passes vacuously, so arbitrary RDF documents can
// be validated without preconditions.
//
// Evaluation is three-state per constraint: Satisfied, Violated, or Error.
// Errors (a check panicking on unexpected data) never abort the run and
// never count as a pass or a fail; they are carried on the report so the
// caller can distinguish "no violation found" from "could not be checked".
package integrity
