package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/dkovalev/fnoltriage/internal/pipeline"
	"github.com/dkovalev/fnoltriage/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	docsRate     float64
	batchNoCache bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list-file>",
	Short: "Triage multiple claim notices in parallel",
	Long: `Batch processes claim notice documents concurrently:
- Accept a directory of documents, or a file listing one path per line
- Triage documents in parallel with a configurable worker count
- Write one decision JSON per document
- Optionally throttle throughput for downstream intake systems

Example:
  fnoltriage batch ./intake
  fnoltriage batch ./intake --concurrency 8 --output-dir ./decisions
  fnoltriage batch notices.txt --rate 5 --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./fnol-decisions", "output directory for decision files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&docsRate, "rate", 0, "max documents per second (0 = unlimited)")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the decision cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  FNOL Batch Triage\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s\n", input)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	if docsRate > 0 {
		fmt.Fprintf(os.Stderr, "  Rate:         %.1f docs/s\n", docsRate)
	}
	fmt.Fprintf(os.Stderr, "\n")

	cfg := loadConfig()
	cfg.Cache.Enabled = !batchNoCache
	cfg.Concurrency.Workers = concurrency
	cfg.Concurrency.DocsPerSecond = docsRate
	cfg.Output.Verbose = verbose

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency, docsRate, cfg.Concurrency.Burst)

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}

	var results []*worker.TriageResult
	if info.IsDir() {
		results, err = processor.ProcessDir(ctx, input)
	} else {
		results, err = processor.ProcessList(ctx, input)
	}
	if err != nil {
		return fmt.Errorf("process batch: %w", err)
	}

	fmt.Fprintf(os.Stderr, "⚙️  Processed %d documents with %d workers\n", len(results), concurrency)
	fmt.Fprintf(os.Stderr, "\n")

	renderer := pipeline.NewRenderer()
	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++

		jsonPath := filepath.Join(outputDir, decisionFilename(result.Path))
		if err := renderer.RenderJSON(result.Decision, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s → %s\n", filepath.Base(result.Path), result.Decision.RecommendedRoute)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// decisionFilename derives the output filename for a document's decision
func decisionFilename(docPath string) string {
	base := filepath.Base(docPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		base = "decision"
	}
	return base + "_decision.json"
}
