// Package core provides IRI constants for the base W3C vocabularies used
// across the pipeline: RDF, RDFS, OWL, XSD, Dublin Core terms, and FOAF.
//
// Domain vocabularies (Data Cube, SKOS, SDMX, PROV-O, DCAT) live in their
// own sibling packages.
package core
