// Package dcat provides IRI constants for the W3C DCAT vocabulary plus the
// vCard and EU publications authority terms the catalog builder relies on.
package dcat

// Namespace is the DCAT base IRI.
const Namespace = "http://www.w3.org/ns/dcat#"

// Class IRIs.
const (
	Catalog      = Namespace + "Catalog"
	Dataset      = Namespace + "Dataset"
	Distribution = Namespace + "Distribution"
	DataService  = Namespace + "DataService"
)

// Property IRIs.
const (
	PropDataset       = Namespace + "dataset"
	PropDistribution  = Namespace + "distribution"
	PropContactPoint  = Namespace + "contactPoint"
	PropKeyword       = Namespace + "keyword"
	PropTheme         = Namespace + "theme"
	PropStartDate     = Namespace + "startDate"
	PropEndDate       = Namespace + "endDate"
	PropDownloadURL   = Namespace + "downloadURL"
	PropMediaType     = Namespace + "mediaType"
	PropByteSize      = Namespace + "byteSize"
	PropAccessService = Namespace + "accessService"
	PropEndpointURL   = Namespace + "endpointURL"
	PropServesDataset = Namespace + "servesDataset"
)

// vCard terms for contact points.
const (
	VCardNamespace  = "http://www.w3.org/2006/vcard/ns#"
	VCardIndividual = VCardNamespace + "Individual"
	VCardFN         = VCardNamespace + "fn"
	VCardHasEmail   = VCardNamespace + "hasEmail"
)

// EU publications office authority namespaces for controlled values
// (file types, access rights, frequencies, spatial coverage) and EuroVoc
// subject themes.
const (
	EUAuthorityNamespace = "http://publications.europa.eu/resource/authority/"
	EuroVocNamespace     = "http://eurovoc.europa.eu/"
)
