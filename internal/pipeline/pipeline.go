package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dkovalev/fnoltriage/internal/cache"
	"github.com/dkovalev/fnoltriage/internal/extract"
	"github.com/dkovalev/fnoltriage/internal/model"
	"github.com/dkovalev/fnoltriage/internal/route"
)

// Pipeline orchestrates the complete triage of a claim notice:
// load, extract, derive missing fields, route
type Pipeline struct {
	loader    *Loader
	extractor *extract.Extractor
	router    *route.Router
	cache     cache.Cache // nil when caching is disabled
	cfg       *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var c cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = defaultCacheDir()
		}
		if dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
		}
	}

	return &Pipeline{
		loader:    NewLoader(cfg.Extraction.MaxDocumentBytes),
		extractor: extract.New(cfg.Extraction),
		router:    route.New(cfg.Routing),
		cache:     c,
		cfg:       cfg,
	}
}

// Process runs extraction and routing over pre-decoded document text.
// It is deterministic and side-effect free: identical text always yields
// an identical decision. Missing or malformed fields are data, not
// errors; the only error path is the nil-record precondition inside the
// router, which Process cannot trigger.
func (p *Pipeline) Process(text string) (*model.Decision, error) {
	// 1. Extract fields
	rec := p.extractor.Extract(text)

	// 2. Derive missing mandatory fields
	missing := p.extractor.MissingFields(rec)

	// 3. Route the claim
	result, err := p.router.Route(rec, missing)
	if err != nil {
		return nil, fmt.Errorf("route claim: %w", err)
	}

	return &model.Decision{
		ExtractedFields:  rec,
		MissingFields:    missing,
		RecommendedRoute: result.Route,
		Reasoning:        result.Reasoning,
	}, nil
}

// ProcessFile loads a document and triages it, consulting the decision
// cache by content hash so unchanged documents are not re-extracted
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*model.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 1. Load document text
	text, err := p.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	// 2. Cache lookup keyed by document content
	key := cache.ContentKey(text)
	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var d model.Decision
			if err := json.Unmarshal(data, &d); err == nil {
				return &d, nil
			}
			// Corrupt entry: fall through and recompute
			_ = p.cache.Delete(key)
		}
	}

	// 3. Extract and route
	d, err := p.Process(text)
	if err != nil {
		return nil, err
	}

	// 4. Store the decision; cache failures never fail the run
	if p.cache != nil {
		if data, err := json.Marshal(d); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}

	return d, nil
}

// defaultCacheDir places the decision cache under the user cache root
func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "fnoltriage")
}
