package core

// Base namespace prefixes.
const (
	RDFNamespace     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace    = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace     = "http://www.w3.org/2002/07/owl#"
	XSDNamespace     = "http://www.w3.org/2001/XMLSchema#"
	DCTermsNamespace = "http://purl.org/dc/terms/"
	FOAFNamespace    = "http://xmlns.com/foaf/0.1/"
)

// RDF core terms.
const (
	RDFType     = RDFNamespace + "type"
	RDFProperty = RDFNamespace + "Property"
)

// RDFS terms.
const (
	RDFSClass         = RDFSNamespace + "Class"
	RDFSLabel         = RDFSNamespace + "label"
	RDFSComment       = RDFSNamespace + "comment"
	RDFSRange         = RDFSNamespace + "range"
	RDFSSubClassOf    = RDFSNamespace + "subClassOf"
	RDFSSubPropertyOf = RDFSNamespace + "subPropertyOf"
	RDFSSeeAlso       = RDFSNamespace + "seeAlso"
)

// OWL terms.
const (
	OWLClass     = OWLNamespace + "Class"
	OWLInverseOf = OWLNamespace + "inverseOf"
)

// XSD datatypes.
const (
	XSDBoolean            = XSDNamespace + "boolean"
	XSDInt                = XSDNamespace + "int"
	XSDInteger            = XSDNamespace + "integer"
	XSDDecimal            = XSDNamespace + "decimal"
	XSDDate               = XSDNamespace + "date"
	XSDDateTime           = XSDNamespace + "dateTime"
	XSDAnyURI             = XSDNamespace + "anyURI"
	XSDNonNegativeInteger = XSDNamespace + "nonNegativeInteger"
	XSDString             = XSDNamespace + "string"
)

// Dublin Core terms.
const (
	DCTitle              = DCTermsNamespace + "title"
	DCDescription        = DCTermsNamespace + "description"
	DCIssued             = DCTermsNamespace + "issued"
	DCModified           = DCTermsNamespace + "modified"
	DCPublisher          = DCTermsNamespace + "publisher"
	DCCreator            = DCTermsNamespace + "creator"
	DCLicense            = DCTermsNamespace + "license"
	DCFormat             = DCTermsNamespace + "format"
	DCType               = DCTermsNamespace + "type"
	DCSpatial            = DCTermsNamespace + "spatial"
	DCTemporal           = DCTermsNamespace + "temporal"
	DCAccessRights       = DCTermsNamespace + "accessRights"
	DCAccrualPeriodicity = DCTermsNamespace + "accrualPeriodicity"
	DCPeriodOfTime       = DCTermsNamespace + "PeriodOfTime"
)

// FOAF terms.
const (
	FOAFPerson    = FOAFNamespace + "Person"
	FOAFName      = FOAFNamespace + "name"
	FOAFGivenName = FOAFNamespace + "givenName"
	FOAFMbox      = FOAFNamespace + "mbox"
	FOAFHomepage  = FOAFNamespace + "homepage"
)
