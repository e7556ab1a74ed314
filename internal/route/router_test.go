package route

import (
	"errors"
	"strings"
	"testing"

	"github.com/dkovalev/fnoltriage/internal/model"
)

func strp(s string) *string { return &s }

func f64p(v float64) *float64 { return &v }

func ctp(c model.ClaimType) *model.ClaimType { return &c }

func newTestRouter() *Router {
	return New(model.DefaultConfig().Routing)
}

// completeRecord returns a record with every mandatory field present, a
// clean description, and damage below the fast-track threshold
func completeRecord() *model.ClaimRecord {
	rec := &model.ClaimRecord{}
	rec.PolicyInformation.PolicyNumber = strp("POL-2024-001234")
	rec.PolicyInformation.PolicyholderName = strp("John Doe")
	rec.IncidentInformation.Date = strp("2024-11-15")
	rec.IncidentInformation.Location = strp("123 Main St, Springfield")
	rec.IncidentInformation.Description = strp("Rear-ended at a stop light on the way to work.")
	rec.InvolvedParties.Claimant = strp("John Doe")
	rec.AssetDetails.AssetType = strp("Vehicle")
	rec.AssetDetails.EstimatedDamage = f64p(4500)
	rec.OtherMandatoryFields.ClaimType = ctp(model.ClaimTypeAuto)
	rec.OtherMandatoryFields.InitialEstimate = f64p(4200)
	return rec
}

func TestRouter_NilRecord(t *testing.T) {
	r := newTestRouter()

	_, err := r.Route(nil, nil)
	if err == nil {
		t.Fatal("expected error for nil record, got nil")
	}
	if !errors.Is(err, ErrNilRecord) {
		t.Errorf("expected ErrNilRecord, got %v", err)
	}
}

func TestRouter_MissingFieldsManualReview(t *testing.T) {
	r := newTestRouter()
	rec := completeRecord()
	rec.PolicyInformation.PolicyNumber = nil
	missing := []string{"policyInformation.policyNumber", "incidentInformation.date"}

	result, err := r.Route(rec, missing)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Route != model.RouteManualReview {
		t.Errorf("expected route %q, got %q", model.RouteManualReview, result.Route)
	}
	for _, path := range missing {
		if !strings.Contains(result.Reasoning, path) {
			t.Errorf("expected reasoning to cite %q, got %q", path, result.Reasoning)
		}
	}
	if len(result.Flags) != 1 || result.Flags[0] != "missing_fields" {
		t.Errorf("expected flags [missing_fields], got %v", result.Flags)
	}
}

func TestRouter_MissingFieldsWinsOverEverything(t *testing.T) {
	r := newTestRouter()

	// Fraud keywords and an injury claim type are both present, but an
	// incomplete record must still go to manual review
	rec := completeRecord()
	rec.IncidentInformation.Description = strp("The damage appears staged and fraudulent.")
	rec.OtherMandatoryFields.ClaimType = ctp(model.ClaimTypeInjury)
	rec.IncidentInformation.Date = nil

	result, err := r.Route(rec, []string{"incidentInformation.date"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Route != model.RouteManualReview {
		t.Errorf("expected route %q, got %q", model.RouteManualReview, result.Route)
	}
}

func TestRouter_FraudInvestigation(t *testing.T) {
	r := newTestRouter()
	rec := completeRecord()
	rec.IncidentInformation.Description = strp("Damage appears STAGED and the account is inconsistent.")

	result, err := r.Route(rec, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Route != model.RouteInvestigation {
		t.Errorf("expected route %q, got %q", model.RouteInvestigation, result.Route)
	}
	// Matching is case-insensitive; the reasoning cites keyword and field
	if !strings.Contains(result.Reasoning, "'staged' in incidentInformation.description") {
		t.Errorf("expected reasoning to cite staged keyword, got %q", result.Reasoning)
	}
	if !strings.Contains(result.Reasoning, "'inconsistent' in incidentInformation.description") {
		t.Errorf("expected reasoning to cite inconsistent keyword, got %q", result.Reasoning)
	}
	if len(result.Flags) != 1 || result.Flags[0] != "fraud_indicator" {
		t.Errorf("expected flags [fraud_indicator], got %v", result.Flags)
	}
}

func TestRouter_FraudInLocation(t *testing.T) {
	r := newTestRouter()
	rec := completeRecord()
	rec.IncidentInformation.Location = strp("Reported at a suspicious address")

	result, err := r.Route(rec, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Route != model.RouteInvestigation {
		t.Errorf("expected route %q, got %q", model.RouteInvestigation, result.Route)
	}
	if !strings.Contains(result.Reasoning, "'suspicious' in incidentInformation.location") {
		t.Errorf("expected reasoning to cite the location hit, got %q", result.Reasoning)
	}
}

func TestRouter_StructuredFieldsNeverScanned(t *testing.T) {
	r := newTestRouter()

	// "FALSE" and "FAKE" inside identifiers are data, not fraud evidence
	rec := completeRecord()
	rec.PolicyInformation.PolicyNumber = strp("FALSE-2024-001")
	rec.AssetDetails.AssetID = strp("FAKE-999")

	result, err := r.Route(rec, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Route == model.RouteInvestigation {
		t.Errorf("structured identifiers must not trigger investigation, got %q with reasoning %q",
			result.Route, result.Reasoning)
	}
}

func TestRouter_InjurySpecialistQueue(t *testing.T) {
	r := newTestRouter()

	// Low damage would qualify for fast-track, but injury takes priority
	rec := completeRecord()
	rec.OtherMandatoryFields.ClaimType = ctp(model.ClaimTypeInjury)
	rec.AssetDetails.EstimatedDamage = f64p(500)

	result, err := r.Route(rec, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Route != model.RouteSpecialist {
		t.Errorf("expected route %q, got %q", model.RouteSpecialist, result.Route)
	}
	if !strings.Contains(result.Reasoning, "injury") {
		t.Errorf("expected reasoning to mention injury, got %q", result.Reasoning)
	}
}

func TestRouter_FastTrackThreshold(t *testing.T) {
	tests := []struct {
		damage float64
		want   model.Route
	}{
		{4500, model.RouteFastTrack},
		{24999.99, model.RouteFastTrack},
		{25000, model.RouteStandard}, // equal to threshold does not qualify
		{25000.01, model.RouteStandard},
		{100000, model.RouteStandard},
	}
	r := newTestRouter()
	for _, tt := range tests {
		rec := completeRecord()
		rec.AssetDetails.EstimatedDamage = f64p(tt.damage)

		result, err := r.Route(rec, nil)
		if err != nil {
			t.Fatalf("expected no error for damage %v, got %v", tt.damage, err)
		}
		if result.Route != tt.want {
			t.Errorf("expected route %q for damage %v, got %q", tt.want, tt.damage, result.Route)
		}
	}
}

func TestRouter_FastTrackReasoningCitesAmounts(t *testing.T) {
	r := newTestRouter()
	rec := completeRecord()
	rec.AssetDetails.EstimatedDamage = f64p(24999.99)

	result, err := r.Route(rec, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(result.Reasoning, "$24,999.99") {
		t.Errorf("expected reasoning to cite the damage amount, got %q", result.Reasoning)
	}
	if !strings.Contains(result.Reasoning, "$25,000") {
		t.Errorf("expected reasoning to cite the threshold, got %q", result.Reasoning)
	}
}

func TestRouter_InitialEstimateFallback(t *testing.T) {
	r := newTestRouter()
	rec := completeRecord()
	rec.AssetDetails.EstimatedDamage = nil
	rec.OtherMandatoryFields.InitialEstimate = f64p(10000)

	result, err := r.Route(rec, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Route != model.RouteFastTrack {
		t.Errorf("expected fast-track via initial estimate fallback, got %q", result.Route)
	}
	if !strings.Contains(result.Reasoning, "$10,000") {
		t.Errorf("expected reasoning to cite the fallback amount, got %q", result.Reasoning)
	}
}

func TestRouter_NoDamageStandardProcessing(t *testing.T) {
	r := newTestRouter()

	// Caller vouches for completeness; with no damage amount at all the
	// fast-track rule is skipped, not treated as zero damage
	rec := completeRecord()
	rec.AssetDetails.EstimatedDamage = nil
	rec.OtherMandatoryFields.InitialEstimate = nil

	result, err := r.Route(rec, []string{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Route != model.RouteStandard {
		t.Errorf("expected route %q, got %q", model.RouteStandard, result.Route)
	}
	if !strings.Contains(result.Reasoning, "No special conditions") {
		t.Errorf("unexpected reasoning %q", result.Reasoning)
	}
}

func TestRouter_ConfigurableThreshold(t *testing.T) {
	cfg := model.DefaultConfig().Routing
	cfg.FastTrackThreshold = 1000
	r := New(cfg)

	rec := completeRecord() // damage 4500
	result, err := r.Route(rec, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Route != model.RouteStandard {
		t.Errorf("expected standard processing with lowered threshold, got %q", result.Route)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{500, "500"},
		{4500, "4,500"},
		{25000, "25,000"},
		{24999.99, "24,999.99"},
		{1234567, "1,234,567"},
		{0.5, "0.50"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
