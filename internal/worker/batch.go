package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dkovalev/fnoltriage/internal/model"
)

// Processor triages a single document file
type Processor interface {
	ProcessFile(ctx context.Context, path string) (*model.Decision, error)
}

// TriageJob processes one document through the pipeline
type TriageJob struct {
	Path      string
	Processor Processor
	Throttle  *Throttle
}

// Execute runs the triage job
func (j *TriageJob) Execute(ctx context.Context) Result {
	if err := j.Throttle.Wait(ctx); err != nil {
		return &TriageResult{Path: j.Path, Error: err}
	}

	decision, err := j.Processor.ProcessFile(ctx, j.Path)
	return &TriageResult{Path: j.Path, Decision: decision, Error: err}
}

// TriageResult is the outcome of triaging one document
type TriageResult struct {
	Path     string
	Decision *model.Decision
	Error    error
}

// GetError returns the error from the triage result
func (r *TriageResult) GetError() error {
	return r.Error
}

// BatchProcessor triages multiple documents concurrently
type BatchProcessor struct {
	processor   Processor
	concurrency int
	throttle    *Throttle
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(processor Processor, concurrency int, docsPerSecond float64, burst int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
		throttle:    NewThrottle(docsPerSecond, burst),
	}
}

// ProcessPaths triages the given document paths concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*TriageResult {
	if len(paths) == 0 {
		return []*TriageResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&TriageJob{
			Path:      path,
			Processor: b.processor,
			Throttle:  b.throttle,
		})
	}

	results := pool.Wait()

	triageResults := make([]*TriageResult, len(results))
	for i, result := range results {
		triageResults[i] = result.(*TriageResult)
	}

	return triageResults
}

// ProcessDir triages every supported document in a directory
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*TriageResult, error) {
	paths, err := CollectDocuments(dir)
	if err != nil {
		return nil, fmt.Errorf("collect documents: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ProcessList reads document paths from a list file and triages them
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string) ([]*TriageResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// supportedExt lists the document formats the loader accepts
var supportedExt = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".html": true,
	".htm":  true,
}

// CollectDocuments returns the supported document paths in a directory,
// sorted by name
func CollectDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExt[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	return paths, nil
}

// ReadPathsFromFile reads document paths from a file (one per line),
// skipping blanks and comments and dropping duplicates
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
