package model

// ClaimRecord is the structured output of field extraction from a single
// FNOL document. Leaf fields are pointers: nil means the field was absent
// or could not be parsed, which is distinct from an empty value. Section
// structs are always present so the JSON nesting is stable.
type ClaimRecord struct {
	PolicyInformation    PolicyInformation    `json:"policyInformation"`
	IncidentInformation  IncidentInformation  `json:"incidentInformation"`
	InvolvedParties      InvolvedParties      `json:"involvedParties"`
	AssetDetails         AssetDetails         `json:"assetDetails"`
	OtherMandatoryFields OtherMandatoryFields `json:"otherMandatoryFields"`
}

// PolicyInformation holds policy-related fields
type PolicyInformation struct {
	PolicyNumber     *string         `json:"policyNumber"`
	PolicyholderName *string         `json:"policyholderName"`
	EffectiveDates   *EffectiveDates `json:"effectiveDates"`
}

// EffectiveDates is the policy coverage date range; start and end are
// independently optional
type EffectiveDates struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// IncidentInformation holds incident details
type IncidentInformation struct {
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

// InvolvedParties holds the parties involved in the incident.
// ThirdParties distinguishes nil (block not found) from an empty slice
// (block found, no parties listed).
type InvolvedParties struct {
	Claimant       *string         `json:"claimant"`
	ThirdParties   []string        `json:"thirdParties"`
	ContactDetails *ContactDetails `json:"contactDetails"`
}

// ContactDetails holds claimant contact information
type ContactDetails struct {
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// AssetDetails holds information about the damaged asset
type AssetDetails struct {
	AssetType       *string  `json:"assetType"`
	AssetID         *string  `json:"assetId"`
	EstimatedDamage *float64 `json:"estimatedDamage"`
}

// OtherMandatoryFields holds the remaining required fields
type OtherMandatoryFields struct {
	ClaimType       *ClaimType `json:"claimType"`
	Attachments     []string   `json:"attachments"`
	InitialEstimate *float64   `json:"initialEstimate"`
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeAuto     ClaimType = "auto"     // Vehicle/collision claims
	ClaimTypeInjury   ClaimType = "injury"   // Bodily injury/medical claims
	ClaimTypeProperty ClaimType = "property" // Property/structure claims
	ClaimTypeUnknown  ClaimType = "unknown"  // Label found but category unrecognized
)
