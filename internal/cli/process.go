package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dkovalev/fnoltriage/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON  string
	jsonOnly bool
	noCache  bool
	timeout  time.Duration
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Triage a single claim notice document",
	Long: `Process extracts structured fields from one FNOL document and
routes the claim:
- Load the document (txt, pdf, or html)
- Extract fields with the pattern rule set
- Report mandatory fields that could not be found
- Apply the routing rules and explain the decision

Example:
  fnoltriage process notice.txt
  fnoltriage process notice.pdf --json decision.json
  fnoltriage process notice.txt --json-only`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	processCmd.Flags().BoolVar(&jsonOnly, "json-only", false, "print JSON to stdout without the readable summary")

	processCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the decision cache")
	processCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "processing timeout")
}

func runProcess(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := loadConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.JSONOnly = jsonOnly

	p := pipeline.NewPipeline(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Processing: %s\n", file)
	}

	decision, err := p.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Route: %s\n", decision.RecommendedRoute)
		if len(decision.MissingFields) > 0 {
			fmt.Fprintf(os.Stderr, "⚠ Missing fields: %d\n", len(decision.MissingFields))
		}
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer()

	if outJSON != "" {
		if err := renderer.RenderJSON(decision, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if jsonOnly {
		data, err := renderer.JSON(decision)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	renderer.RenderSummary(decision)
	return nil
}
