package rdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	knakk "github.com/knakk/rdf"
)

// Format identifies a supported RDF serialization.
type Format int

const (
	FormatTurtle Format = iota
	FormatNTriples
	FormatRDFXML
)

// FormatForPath guesses the serialization from a file extension,
// defaulting to Turtle.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt", ".ntriples":
		return FormatNTriples
	case ".rdf", ".xml", ".owl":
		return FormatRDFXML
	default:
		return FormatTurtle
	}
}

func (f Format) knakk() knakk.Format {
	switch f {
	case FormatNTriples:
		return knakk.NTriples
	case FormatRDFXML:
		return knakk.RDFXML
	default:
		return knakk.Turtle
	}
}

// Load parses the RDF document at path into a graph. A document that
// cannot be read or parsed is a fatal error for the caller: there is no
// graph to work with.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open RDF document: %w", err)
	}
	defer f.Close()

	g, err := Decode(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return g, nil
}

// Decode parses an RDF document from r into a graph.
func Decode(r io.Reader, format Format) (*Graph, error) {
	dec := knakk.NewTripleDecoder(r, format.knakk())
	g := NewGraph()
	for {
		tr, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode triple: %w", err)
		}
		g.Add(fromKnakk(tr.Subj), fromKnakk(tr.Pred), fromKnakk(tr.Obj))
	}
	return g, nil
}

func fromKnakk(t knakk.Term) Term {
	switch t.Type() {
	case knakk.TermIRI:
		return IRI(t.String())
	case knakk.TermBlank:
		return Blank(strings.TrimPrefix(t.String(), "_:"))
	default:
		lit := t.(knakk.Literal)
		if lang := lit.Lang(); lang != "" {
			return LangLiteral(lit.String(), lang)
		}
		dt := lit.DataType.String()
		// Plain and xsd:string literals collapse to the same term so
		// pattern matching does not depend on which form the source used.
		if dt == "" || dt == "http://www.w3.org/2001/XMLSchema#string" {
			return Literal(lit.String())
		}
		return TypedLiteral(lit.String(), dt)
	}
}
