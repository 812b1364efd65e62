// Package provo provides IRI constants for the W3C PROV-O vocabulary,
// used by the provenance document builder.
package provo

// Namespace is the PROV-O base IRI.
const Namespace = "http://www.w3.org/ns/prov#"

// Class IRIs.
const (
	Entity        = Namespace + "Entity"
	Activity      = Namespace + "Activity"
	Agent         = Namespace + "Agent"
	Person        = Namespace + "Person"
	Organization  = Namespace + "Organization"
	SoftwareAgent = Namespace + "SoftwareAgent"
	Association   = Namespace + "Association"
	Role          = Namespace + "Role"
)

// Property IRIs.
const (
	PropWasGeneratedBy       = Namespace + "wasGeneratedBy"
	PropWasDerivedFrom       = Namespace + "wasDerivedFrom"
	PropWasAttributedTo      = Namespace + "wasAttributedTo"
	PropHadPrimarySource     = Namespace + "hadPrimarySource"
	PropWasAssociatedWith    = Namespace + "wasAssociatedWith"
	PropWasInformedBy        = Namespace + "wasInformedBy"
	PropActedOnBehalfOf      = Namespace + "actedOnBehalfOf"
	PropUsed                 = Namespace + "used"
	PropAtLocation           = Namespace + "atLocation"
	PropQualifiedAssociation = Namespace + "qualifiedAssociation"
	PropAgent                = Namespace + "agent"
	PropHadRole              = Namespace + "hadRole"
)
