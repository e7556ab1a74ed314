package route

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dkovalev/fnoltriage/internal/model"
)

// ErrNilRecord signals a precondition violation: routing a record that
// was never extracted. Missing or malformed fields are data, not faults,
// and never produce an error.
var ErrNilRecord = errors.New("route: nil claim record")

// rule is one entry in the ordered routing policy. Evaluation is
// first-match-wins; eval returns whether the rule fires and the
// generated reasoning citing the evidence used.
type rule struct {
	name  string
	route model.Route
	flag  string
	eval  func(in *input) (bool, string)
}

// input carries everything a rule may inspect
type input struct {
	rec     *model.ClaimRecord
	missing []string
	cfg     *model.RoutingConfig
}

// Router evaluates the routing policy against extracted claim records.
// It is a pure function over its inputs; the record is never mutated.
type Router struct {
	cfg   model.RoutingConfig
	rules []rule
}

// New creates a router with the given routing configuration
func New(cfg model.RoutingConfig) *Router {
	return &Router{
		cfg:   cfg,
		rules: defaultRules(),
	}
}

// Route maps a claim record and its missing-field list to exactly one
// route. Rules are evaluated in priority order and the first match wins;
// the final rule always matches, so every valid record gets a route.
func (r *Router) Route(rec *model.ClaimRecord, missing []string) (model.RoutingResult, error) {
	if rec == nil {
		return model.RoutingResult{}, ErrNilRecord
	}

	in := &input{rec: rec, missing: missing, cfg: &r.cfg}
	for _, rule := range r.rules {
		matched, reasoning := rule.eval(in)
		if !matched {
			continue
		}
		return model.RoutingResult{
			Route:     rule.route,
			Reasoning: reasoning,
			Flags:     []string{rule.flag},
		}, nil
	}

	// Unreachable: the standard-processing rule matches unconditionally
	return model.RoutingResult{}, errors.New("route: no rule matched")
}

// defaultRules returns the routing policy, highest priority first
func defaultRules() []rule {
	return []rule{
		{
			name:  "missing-mandatory-fields",
			route: model.RouteManualReview,
			flag:  "missing_fields",
			eval:  evalMissingFields,
		},
		{
			name:  "fraud-indicators",
			route: model.RouteInvestigation,
			flag:  "fraud_indicator",
			eval:  evalFraudIndicators,
		},
		{
			name:  "injury-claim",
			route: model.RouteSpecialist,
			flag:  "injury_claim",
			eval:  evalInjuryClaim,
		},
		{
			name:  "fast-track-threshold",
			route: model.RouteFastTrack,
			flag:  "low_value",
			eval:  evalFastTrack,
		},
		{
			name:  "standard-processing",
			route: model.RouteStandard,
			flag:  "standard",
			eval:  evalStandard,
		},
	}
}

// evalMissingFields fires when any mandatory field is absent. This always
// wins over fraud or injury signals.
func evalMissingFields(in *input) (bool, string) {
	if len(in.missing) == 0 {
		return false, ""
	}
	return true, fmt.Sprintf(
		"Missing mandatory fields: %s. Claim requires manual review to complete information.",
		strings.Join(in.missing, ", "))
}

// evalFraudIndicators scans the designated free-text fields for fraud
// keywords, case-insensitively. Structured identifiers (policy numbers,
// asset IDs) are never scanned.
func evalFraudIndicators(in *input) (bool, string) {
	hits := scanFraudKeywords(in.rec, in.cfg)
	if len(hits) == 0 {
		return false, ""
	}
	return true, fmt.Sprintf(
		"Potential fraud indicators detected: %s. Claim flagged for investigation.",
		strings.Join(hits, ", "))
}

// evalInjuryClaim fires when the claim type is the injury category
func evalInjuryClaim(in *input) (bool, string) {
	ct := in.rec.OtherMandatoryFields.ClaimType
	if ct == nil || *ct != model.ClaimTypeInjury {
		return false, ""
	}
	return true, "Claim type identified as 'injury'. Routing to specialist queue for medical review and assessment."
}

// evalFastTrack fires when a damage amount is present and strictly below
// the threshold. An amount equal to the threshold does not qualify, and
// an absent amount skips this rule entirely.
func evalFastTrack(in *input) (bool, string) {
	damage, ok := estimatedDamage(in.rec)
	if !ok || damage >= in.cfg.FastTrackThreshold {
		return false, ""
	}
	return true, fmt.Sprintf(
		"Estimated damage ($%s) is below the $%s threshold. All mandatory fields present and no fraud indicators detected. Eligible for fast-track processing.",
		formatAmount(damage), formatAmount(in.cfg.FastTrackThreshold))
}

// evalStandard is the unconditional fallback
func evalStandard(in *input) (bool, string) {
	if damage, ok := estimatedDamage(in.rec); ok {
		return true, fmt.Sprintf(
			"Estimated damage ($%s) meets or exceeds the $%s fast-track threshold. Routing to standard processing workflow for full assessment.",
			formatAmount(damage), formatAmount(in.cfg.FastTrackThreshold))
	}
	return true, "All mandatory fields present. No special conditions detected. Routing to standard processing workflow."
}

// estimatedDamage returns the damage amount used by the threshold rule:
// the asset damage estimate when present, otherwise the initial estimate
func estimatedDamage(rec *model.ClaimRecord) (float64, bool) {
	if rec.AssetDetails.EstimatedDamage != nil {
		return *rec.AssetDetails.EstimatedDamage, true
	}
	if rec.OtherMandatoryFields.InitialEstimate != nil {
		return *rec.OtherMandatoryFields.InitialEstimate, true
	}
	return 0, false
}

// scanFraudKeywords returns one entry per keyword/field hit, in keyword
// order, formatted as evidence for the reasoning string
func scanFraudKeywords(rec *model.ClaimRecord, cfg *model.RoutingConfig) []string {
	var hits []string
	for _, keyword := range cfg.FraudKeywords {
		kw := strings.ToLower(keyword)
		for _, path := range cfg.FraudScanFields {
			value := freeTextValue(rec, path)
			if value == "" {
				continue
			}
			if strings.Contains(strings.ToLower(value), kw) {
				hits = append(hits, fmt.Sprintf("'%s' in %s", keyword, path))
			}
		}
	}
	return hits
}

// freeTextValue resolves a dotted path to a scannable free-text field.
// Only fields listed here may ever be scanned; everything else resolves
// to empty.
func freeTextValue(rec *model.ClaimRecord, path string) string {
	var v *string
	switch path {
	case "incidentInformation.description":
		v = rec.IncidentInformation.Description
	case "incidentInformation.location":
		v = rec.IncidentInformation.Location
	case "assetDetails.assetType":
		v = rec.AssetDetails.AssetType
	}
	if v == nil {
		return ""
	}
	return *v
}

// formatAmount renders a dollar amount with thousands separators, two
// decimals for fractional values and none otherwise
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimSuffix(s, ".00")

	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return b.String() + fracPart
}
