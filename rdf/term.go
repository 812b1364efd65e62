package rdf

import "fmt"

// Kind discriminates the three RDF term kinds.
type Kind uint8

const (
	KindIRI Kind = iota
	KindBlank
	KindLiteral
)

// Term is a single RDF term. It is a comparable value type so terms can be
// used directly as map keys by the graph indexes.
//
// For IRIs, Value holds the full IRI. For blank nodes, Value holds the
// label without the "_:" prefix. For literals, Value holds the lexical
// form, with Datatype and Lang filled in as applicable.
type Term struct {
	Kind     Kind
	Value    string
	Datatype string
	Lang     string
}

// IRI returns an IRI term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Blank returns a blank node term with the given label.
func Blank(label string) Term {
	return Term{Kind: KindBlank, Value: label}
}

// Literal returns a plain string literal.
func Literal(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// TypedLiteral returns a literal with an explicit datatype IRI.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// LangLiteral returns a language-tagged string literal.
func LangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Lang: lang}
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// IsBlank reports whether the term is a blank node.
func (t Term) IsBlank() bool { return t.Kind == KindBlank }

// IsLiteral reports whether the term is a literal.
func (t Term) IsLiteral() bool { return t.Kind == KindLiteral }

// Zero reports whether the term is the zero value, used as "no term".
func (t Term) Zero() bool { return t == Term{} }

// String renders the term in N-Triples style, for logs and test failures.
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	default:
		switch {
		case t.Lang != "":
			return fmt.Sprintf("%q@%s", t.Value, t.Lang)
		case t.Datatype != "":
			return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
		default:
			return fmt.Sprintf("%q", t.Value)
		}
	}
}

// Triple is a single subject-predicate-object statement.
type Triple struct {
	S, P, O Term
}

// String renders the triple in N-Triples style.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.S, t.P, t.O)
}
