package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkovalev/fnoltriage/internal/model"
)

// Renderer writes triage decisions as JSON files and human-readable
// stdout summaries
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// JSON renders a decision as indented JSON. Absent fields serialize as
// null and missingFields as an array, matching the output contract.
func (r *Renderer) JSON(d *model.Decision) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal decision: %w", err)
	}
	return data, nil
}

// RenderJSON writes the decision JSON to a file, creating parent
// directories as needed
func (r *Renderer) RenderJSON(d *model.Decision, path string) error {
	data, err := r.JSON(d)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write decision: %w", err)
	}

	return nil
}

// RenderSummary prints a readable triage summary to stdout
func (r *Renderer) RenderSummary(d *model.Decision) {
	fmt.Println()
	fmt.Println(strings.Repeat("═", 60))
	fmt.Println("  Triage Result")
	fmt.Println(strings.Repeat("═", 60))
	fmt.Println()

	fmt.Printf("Recommended Route: %s\n", d.RecommendedRoute)
	fmt.Printf("\nReasoning:\n  %s\n", d.Reasoning)

	if len(d.MissingFields) > 0 {
		fmt.Printf("\nMissing Fields: %s\n", strings.Join(d.MissingFields, ", "))
	} else {
		fmt.Printf("\nAll mandatory fields present\n")
	}

	if rec := d.ExtractedFields; rec != nil {
		fmt.Println("\nExtracted Fields:")
		fmt.Printf("  Policy:          %s\n", orNA(rec.PolicyInformation.PolicyNumber))
		fmt.Printf("  Policyholder:    %s\n", orNA(rec.PolicyInformation.PolicyholderName))
		fmt.Printf("  Incident Date:   %s\n", orNA(rec.IncidentInformation.Date))
		fmt.Printf("  Location:        %s\n", orNA(rec.IncidentInformation.Location))
		fmt.Printf("  Claimant:        %s\n", orNA(rec.InvolvedParties.Claimant))
		fmt.Printf("  Asset Type:      %s\n", orNA(rec.AssetDetails.AssetType))
		if rec.AssetDetails.EstimatedDamage != nil {
			fmt.Printf("  Est. Damage:     $%.2f\n", *rec.AssetDetails.EstimatedDamage)
		}
		if rec.OtherMandatoryFields.ClaimType != nil {
			fmt.Printf("  Claim Type:      %s\n", *rec.OtherMandatoryFields.ClaimType)
		}
		if rec.OtherMandatoryFields.InitialEstimate != nil {
			fmt.Printf("  Initial Est.:    $%.2f\n", *rec.OtherMandatoryFields.InitialEstimate)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("═", 60))
	fmt.Println()
}

// orNA renders an optional string field for the summary
func orNA(s *string) string {
	if s == nil {
		return "N/A"
	}
	return *s
}
