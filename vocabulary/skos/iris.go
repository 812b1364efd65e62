// Package skos provides IRI constants for the SKOS vocabulary, used for
// the code lists that back the cube's dimension values.
package skos

// Namespace is the SKOS core vocabulary base IRI.
const Namespace = "http://www.w3.org/2004/02/skos/core#"

// Class IRIs.
const (
	Concept       = Namespace + "Concept"
	ConceptScheme = Namespace + "ConceptScheme"
	Collection    = Namespace + "Collection"
)

// Property IRIs.
const (
	PropPrefLabel    = Namespace + "prefLabel"
	PropNote         = Namespace + "note"
	PropInScheme     = Namespace + "inScheme"
	PropTopConceptOf = Namespace + "topConceptOf"
	PropMember       = Namespace + "member"
	PropBroader      = Namespace + "broader"
	PropNarrower     = Namespace + "narrower"
)
