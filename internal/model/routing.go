package model

// Route is the terminal workflow classification assigned to a claim
type Route string

const (
	RouteManualReview  Route = "Manual Review"       // Mandatory fields missing
	RouteInvestigation Route = "Investigation Flag"  // Fraud indicators present
	RouteSpecialist    Route = "Specialist Queue"    // Injury claims
	RouteFastTrack     Route = "Fast-track"          // Low damage, clean record
	RouteStandard      Route = "Standard Processing" // No special condition
)

// RoutingResult is the routing decision for a single claim, with the
// generated explanation citing the evidence the matching rule used
type RoutingResult struct {
	Route     Route    `json:"route"`
	Reasoning string   `json:"reasoning"`
	Flags     []string `json:"flags,omitempty"` // Diagnostic tags (e.g. "fraud_indicator")
}

// Decision is the complete processing result for one document.
// Key names and nesting are the output compatibility contract; downstream
// consumers parse these exact fields.
type Decision struct {
	ExtractedFields  *ClaimRecord `json:"extractedFields"`
	MissingFields    []string     `json:"missingFields"`
	RecommendedRoute Route        `json:"recommendedRoute"`
	Reasoning        string       `json:"reasoning"`
}
