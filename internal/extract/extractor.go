package extract

import (
	"regexp"
	"strings"

	"github.com/dkovalev/fnoltriage/internal/model"
)

// datePat matches ISO (YYYY-MM-DD) and US (MM/DD/YYYY) date formats
const datePat = `\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}`

// amountPat captures a monetary amount with optional currency symbol and
// thousands separators
const amountPat = `[$€£]?\s*(-?[\d,]+(?:\.\d+)?)`

// namePat matches a capitalized personal name without crossing newlines
const namePat = `([A-Z][a-z]+(?: [A-Z][a-z]+)+)`

var (
	policyNumberRe   = regexp.MustCompile(`\b(?i:policy\s*(?:number|no\.?|#))[\s:]*([A-Z0-9][A-Z0-9-]+)`)
	policyholderRe   = regexp.MustCompile(`(?i:policyholder(?:\s+name)?)[\s:]*` + namePat)
	effectiveRangeRe = regexp.MustCompile(`(?i:effective\s+dates?)[\s:]*(` + datePat + `)\s+(?:to|through)\s+(` + datePat + `)`)
	startDateRe      = regexp.MustCompile(`(?i:(?:policy\s+)?start\s+date)[\s:]*(` + datePat + `)`)
	endDateRe        = regexp.MustCompile(`(?i:(?:policy\s+)?end\s+date)[\s:]*(` + datePat + `)`)
	incidentDateRe   = regexp.MustCompile(`(?i:(?:incident|accident|loss)\s+date)[\s:]*(` + datePat + `)`)
	incidentTimeRe   = regexp.MustCompile(`(?i:(?:incident|accident)\s+time)[\s:]*(\d{1,2}:\d{2}(?:\s*[AaPp]\.?[Mm]\.?)?)`)
	locationRe       = regexp.MustCompile(`(?i:(?:incident\s+)?location)[\s:]*([^\n]+)`)
	descriptionRe    = regexp.MustCompile(`(?i:(?:incident\s+)?description)[\s:]*`)
	claimantRe       = regexp.MustCompile(`(?i:claimant(?:\s+name)?)[\s:]*` + namePat)
	thirdPartyRe     = regexp.MustCompile(`(?i:third\s+part(?:y|ies))[\s:]*([^\n]*)`)
	phoneRe          = regexp.MustCompile(`\b(?i:phone|tel|contact)\b[\s:]*(\+?[\d(][\d\s()-]{6,})`)
	emailRe          = regexp.MustCompile(`\b(?i:e-?mail)\b[\s:]*([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	assetTypeRe      = regexp.MustCompile(`(?i:asset\s+type)[\s:]*([A-Za-z][A-Za-z ]*)`)
	assetIDRe        = regexp.MustCompile(`\b(?i:asset\s+id|vin|serial\s+number)\b[\s:]*([A-Z0-9-]+)`)
	estDamageRe      = regexp.MustCompile(`(?i:estimated\s+damage)[\s:]*` + amountPat)
	initEstimateRe   = regexp.MustCompile(`(?i:initial\s+(?:damage\s+)?estimate)[\s:]*` + amountPat)
	claimTypeRe      = regexp.MustCompile(`(?i:claim\s+type)[\s:]*([A-Za-z][A-Za-z ]*)`)
	attachmentsRe    = regexp.MustCompile(`(?i:attachments?)[\s:]*([^\n]*)`)
)

// fieldRule locates and assigns a single field. Rules are independent:
// each scans the full text on its own and a failure leaves its field nil
// without affecting any other rule.
type fieldRule struct {
	path  string
	apply func(rec *model.ClaimRecord, text string)
}

// Extractor extracts a structured claim record from FNOL document text
type Extractor struct {
	rules     []fieldRule
	mandatory []string
}

// New creates an extractor with the given extraction configuration
func New(cfg model.ExtractionConfig) *Extractor {
	return &Extractor{
		rules:     defaultRules(),
		mandatory: cfg.MandatoryFields,
	}
}

// Extract applies every field rule to the document text and returns a
// fully-formed record. It is total: malformed or empty input yields a
// record whose fields are all absent, never an error.
func (e *Extractor) Extract(text string) *model.ClaimRecord {
	rec := &model.ClaimRecord{}
	for _, rule := range e.rules {
		rule.apply(rec, text)
	}
	return rec
}

// MissingFields returns the dotted paths of mandatory fields that are
// absent in the record. The result is derived, never stored: it is
// recomputed from the record against the configured checklist.
func (e *Extractor) MissingFields(rec *model.ClaimRecord) []string {
	missing := []string{}
	if rec == nil {
		return append(missing, e.mandatory...)
	}
	for _, path := range e.mandatory {
		check, ok := presenceChecks[path]
		if !ok || !check(rec) {
			// Unknown checklist paths are reported missing rather than
			// silently passing: a misconfigured checklist must fail
			// toward manual review.
			missing = append(missing, path)
		}
	}
	return missing
}

// presenceChecks maps dotted field paths to presence predicates. It covers
// every extractable leaf so alternate mandatory checklists work unchanged.
var presenceChecks = map[string]func(*model.ClaimRecord) bool{
	"policyInformation.policyNumber":       func(r *model.ClaimRecord) bool { return r.PolicyInformation.PolicyNumber != nil },
	"policyInformation.policyholderName":   func(r *model.ClaimRecord) bool { return r.PolicyInformation.PolicyholderName != nil },
	"incidentInformation.date":             func(r *model.ClaimRecord) bool { return r.IncidentInformation.Date != nil },
	"incidentInformation.time":             func(r *model.ClaimRecord) bool { return r.IncidentInformation.Time != nil },
	"incidentInformation.location":         func(r *model.ClaimRecord) bool { return r.IncidentInformation.Location != nil },
	"incidentInformation.description":      func(r *model.ClaimRecord) bool { return r.IncidentInformation.Description != nil },
	"involvedParties.claimant":             func(r *model.ClaimRecord) bool { return r.InvolvedParties.Claimant != nil },
	"assetDetails.assetType":               func(r *model.ClaimRecord) bool { return r.AssetDetails.AssetType != nil },
	"assetDetails.assetId":                 func(r *model.ClaimRecord) bool { return r.AssetDetails.AssetID != nil },
	"assetDetails.estimatedDamage":         func(r *model.ClaimRecord) bool { return r.AssetDetails.EstimatedDamage != nil },
	"otherMandatoryFields.claimType":       func(r *model.ClaimRecord) bool { return r.OtherMandatoryFields.ClaimType != nil },
	"otherMandatoryFields.initialEstimate": func(r *model.ClaimRecord) bool { return r.OtherMandatoryFields.InitialEstimate != nil },
}

// defaultRules returns the ordered field rule set. Order only controls
// extraction sequence for readability; no rule depends on another.
func defaultRules() []fieldRule {
	return []fieldRule{
		{path: "policyInformation.policyNumber", apply: func(rec *model.ClaimRecord, text string) {
			rec.PolicyInformation.PolicyNumber = firstMatch(policyNumberRe, text)
		}},
		{path: "policyInformation.policyholderName", apply: func(rec *model.ClaimRecord, text string) {
			rec.PolicyInformation.PolicyholderName = firstMatch(policyholderRe, text)
		}},
		{path: "policyInformation.effectiveDates", apply: extractEffectiveDates},
		{path: "incidentInformation.date", apply: func(rec *model.ClaimRecord, text string) {
			rec.IncidentInformation.Date = firstDate(incidentDateRe, text)
		}},
		{path: "incidentInformation.time", apply: func(rec *model.ClaimRecord, text string) {
			rec.IncidentInformation.Time = firstMatch(incidentTimeRe, text)
		}},
		{path: "incidentInformation.location", apply: func(rec *model.ClaimRecord, text string) {
			rec.IncidentInformation.Location = firstMatch(locationRe, text)
		}},
		{path: "incidentInformation.description", apply: func(rec *model.ClaimRecord, text string) {
			rec.IncidentInformation.Description = extractDescription(text)
		}},
		{path: "involvedParties.claimant", apply: func(rec *model.ClaimRecord, text string) {
			rec.InvolvedParties.Claimant = firstMatch(claimantRe, text)
		}},
		{path: "involvedParties.thirdParties", apply: func(rec *model.ClaimRecord, text string) {
			rec.InvolvedParties.ThirdParties = extractThirdParties(text)
		}},
		{path: "involvedParties.contactDetails", apply: extractContactDetails},
		{path: "assetDetails.assetType", apply: func(rec *model.ClaimRecord, text string) {
			rec.AssetDetails.AssetType = firstMatch(assetTypeRe, text)
		}},
		{path: "assetDetails.assetId", apply: func(rec *model.ClaimRecord, text string) {
			rec.AssetDetails.AssetID = firstMatch(assetIDRe, text)
		}},
		{path: "assetDetails.estimatedDamage", apply: func(rec *model.ClaimRecord, text string) {
			rec.AssetDetails.EstimatedDamage = firstAmount(estDamageRe, text)
		}},
		{path: "otherMandatoryFields.claimType", apply: func(rec *model.ClaimRecord, text string) {
			rec.OtherMandatoryFields.ClaimType = extractClaimType(text)
		}},
		{path: "otherMandatoryFields.attachments", apply: func(rec *model.ClaimRecord, text string) {
			rec.OtherMandatoryFields.Attachments = extractAttachments(text)
		}},
		{path: "otherMandatoryFields.initialEstimate", apply: func(rec *model.ClaimRecord, text string) {
			rec.OtherMandatoryFields.InitialEstimate = firstAmount(initEstimateRe, text)
		}},
	}
}

// firstMatch returns the first capture group of the first match, trimmed,
// or nil if the pattern does not match
func firstMatch(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	s := strings.TrimSpace(m[1])
	if s == "" {
		return nil
	}
	return &s
}

// firstDate extracts and normalizes a date; unparseable date text
// degrades to absent
func firstDate(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	iso, ok := normalizeDate(m[1])
	if !ok {
		return nil
	}
	return &iso
}

// firstAmount extracts a monetary amount; a value that fails numeric
// parsing or is negative degrades to absent, never to zero
func firstAmount(re *regexp.Regexp, text string) *float64 {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, ok := parseAmount(m[1])
	if !ok {
		return nil
	}
	return &v
}

// extractEffectiveDates looks for a date range first, then independent
// start/end labels. Start and end are independently optional.
func extractEffectiveDates(rec *model.ClaimRecord, text string) {
	if m := effectiveRangeRe.FindStringSubmatch(text); m != nil {
		dates := &model.EffectiveDates{}
		if iso, ok := normalizeDate(m[1]); ok {
			dates.Start = &iso
		}
		if iso, ok := normalizeDate(m[2]); ok {
			dates.End = &iso
		}
		if dates.Start != nil || dates.End != nil {
			rec.PolicyInformation.EffectiveDates = dates
		}
		return
	}

	start := firstDate(startDateRe, text)
	end := firstDate(endDateRe, text)
	if start != nil || end != nil {
		rec.PolicyInformation.EffectiveDates = &model.EffectiveDates{Start: start, End: end}
	}
}

// extractContactDetails populates phone and email; the contact block is
// present if either was found
func extractContactDetails(rec *model.ClaimRecord, text string) {
	phone := firstMatch(phoneRe, text)
	email := firstMatch(emailRe, text)
	if phone != nil {
		trimmed := strings.TrimSpace(*phone)
		phone = &trimmed
	}
	if phone != nil || email != nil {
		rec.InvolvedParties.ContactDetails = &model.ContactDetails{Phone: phone, Email: email}
	}
}

// extractDescription captures the incident description, which may span
// multiple lines. RE2 has no lookahead, so the continuation is a line
// scan: lines are consumed until a blank line or a "Label:"-shaped line.
func extractDescription(text string) *string {
	loc := descriptionRe.FindStringIndex(text)
	if loc == nil {
		return nil
	}

	rest := text[loc[1]:]
	lines := strings.Split(rest, "\n")

	var parts []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if i == 0 {
				continue // Label on its own line; description starts below
			}
			break
		}
		if i > 0 && labelLineRe.MatchString(trimmed) {
			break
		}
		parts = append(parts, trimmed)
	}

	if len(parts) == 0 {
		return nil
	}
	desc := collapseWhitespace(strings.Join(parts, " "))
	return &desc
}

// labelLineRe recognizes the start of the next labeled field, e.g.
// "Claim Type:" or "Estimated Damage:"
var labelLineRe = regexp.MustCompile(`^[A-Z][A-Za-z #.]{0,40}:`)

// extractThirdParties returns nil when the block header is absent and an
// empty slice when the header is present with no usable names
func extractThirdParties(text string) []string {
	m := thirdPartyRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return splitParties(m[1])
}

// extractAttachments returns nil when the label is absent and an empty
// slice when it is present with no filenames
func extractAttachments(text string) []string {
	m := attachmentsRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	items := []string{}
	for _, part := range strings.FieldsFunc(m[1], func(r rune) bool { return r == ',' || r == ';' }) {
		if s := strings.TrimSpace(part); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// extractClaimType extracts the claim type label and normalizes it to a
// fixed category; an unrecognized value is still present, as "unknown"
func extractClaimType(text string) *model.ClaimType {
	raw := firstMatch(claimTypeRe, text)
	if raw == nil {
		return nil
	}
	ct := normalizeClaimType(*raw)
	return &ct
}

// normalizeClaimType maps free-text claim type labels onto the claim
// type categories. "Bodily Injury" and "Medical" count as injury claims.
func normalizeClaimType(raw string) model.ClaimType {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "injury"), strings.Contains(s, "bodily"), strings.Contains(s, "medical"):
		return model.ClaimTypeInjury
	case strings.Contains(s, "auto"), strings.Contains(s, "vehicle"), strings.Contains(s, "collision"):
		return model.ClaimTypeAuto
	case strings.Contains(s, "property"), strings.Contains(s, "home"), strings.Contains(s, "fire"), strings.Contains(s, "water"):
		return model.ClaimTypeProperty
	default:
		return model.ClaimTypeUnknown
	}
}
