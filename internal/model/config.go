package model

import "time"

// Config is the complete runtime configuration.
// Policy knobs (mandatory checklist, fraud keywords, threshold) are data,
// not code, so alternate policies can be exercised without rebuilds.
type Config struct {
	Extraction  ExtractionConfig  `yaml:"extraction" json:"extraction" mapstructure:"extraction"`
	Routing     RoutingConfig     `yaml:"routing" json:"routing" mapstructure:"routing"`
	Cache       CacheConfig       `yaml:"cache" json:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output" mapstructure:"output"`
}

// ExtractionConfig controls field extraction
type ExtractionConfig struct {
	// MandatoryFields lists the dotted paths whose absence routes a claim
	// to manual review
	MandatoryFields []string `yaml:"mandatory_fields" json:"mandatory_fields" mapstructure:"mandatory_fields"`
	// MaxDocumentBytes caps how much of a document the loader reads
	MaxDocumentBytes int64 `yaml:"max_document_bytes" json:"max_document_bytes" mapstructure:"max_document_bytes"`
}

// RoutingConfig controls the routing rule set
type RoutingConfig struct {
	// FastTrackThreshold is the strict upper bound for fast-track damage
	FastTrackThreshold float64 `yaml:"fast_track_threshold" json:"fast_track_threshold" mapstructure:"fast_track_threshold"`
	// FraudKeywords are matched case-insensitively as substrings
	FraudKeywords []string `yaml:"fraud_keywords" json:"fraud_keywords" mapstructure:"fraud_keywords"`
	// FraudScanFields are the dotted paths of free-text fields scanned for
	// fraud keywords; structured identifiers are never scanned
	FraudScanFields []string `yaml:"fraud_scan_fields" json:"fraud_scan_fields" mapstructure:"fraud_scan_fields"`
}

// CacheConfig controls decision caching for batch reprocessing
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" json:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" json:"ttl" mapstructure:"ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers" mapstructure:"workers"`
	// DocsPerSecond throttles batch throughput; 0 disables throttling
	DocsPerSecond float64 `yaml:"docs_per_second" json:"docs_per_second" mapstructure:"docs_per_second"`
	Burst         int     `yaml:"burst" json:"burst" mapstructure:"burst"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose  bool `yaml:"verbose" json:"verbose" mapstructure:"verbose"`
	JSONOnly bool `yaml:"json_only" json:"json_only" mapstructure:"json_only"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			MandatoryFields: []string{
				"policyInformation.policyNumber",
				"policyInformation.policyholderName",
				"incidentInformation.date",
				"incidentInformation.location",
				"involvedParties.claimant",
				"assetDetails.assetType",
				"otherMandatoryFields.claimType",
				"otherMandatoryFields.initialEstimate",
			},
			MaxDocumentBytes: 2_000_000,
		},
		Routing: RoutingConfig{
			FastTrackThreshold: 25000,
			FraudKeywords: []string{
				"fraud", "fraudulent", "inconsistent", "staged",
				"suspicious", "fabricated", "false", "fake",
			},
			FraudScanFields: []string{
				"incidentInformation.description",
				"incidentInformation.location",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:       4,
			DocsPerSecond: 0,
			Burst:         5,
		},
		Output: OutputConfig{
			Verbose:  false,
			JSONOnly: false,
		},
	}
}
