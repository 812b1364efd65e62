// Package sdmx provides IRI constants for the SDMX-RDF companion
// vocabularies (dimension, concept, measure, code) used by the cube
// builder to align with standard statistical metadata terms.
package sdmx

// Namespace prefixes.
const (
	DimensionNamespace = "http://purl.org/linked-data/sdmx/2009/dimension#"
	ConceptNamespace   = "http://purl.org/linked-data/sdmx/2009/concept#"
	MeasureNamespace   = "http://purl.org/linked-data/sdmx/2009/measure#"
	CodeNamespace      = "http://purl.org/linked-data/sdmx/2009/code#"
)

// Measure terms.
const (
	ObsValue = MeasureNamespace + "obsValue"
)

// Code-list terms minted under the sdmx-code namespace for the cube's
// dimensions. Lower case names the concept scheme, upper case the concept
// class, matching the scheme/class pairing in the cube builder.
const (
	CodeDate     = CodeNamespace + "date"
	CodeDistrict = CodeNamespace + "district"
	CodeStation  = CodeNamespace + "station"
	CodeVaccine  = CodeNamespace + "vaccine"

	ClassDate     = CodeNamespace + "Date"
	ClassDistrict = CodeNamespace + "District"
	ClassStation  = CodeNamespace + "Station"
	ClassVaccine  = CodeNamespace + "Vaccine"
)

// Concept terms.
const (
	ConceptStation = ConceptNamespace + "Station"
)
