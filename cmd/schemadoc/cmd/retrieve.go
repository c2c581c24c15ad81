package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/schemadoc/schemadoc/internal/retriever"
)

// retrieveOptions holds CLI flags for retrieve.
type retrieveOptions struct {
	topK      int
	threshold float64
	format    string
}

func newRetrieveCmd() *cobra.Command {
	var opts retrieveOptions

	cmd := &cobra.Command{
		Use:   "retrieve <corpus> <query>...",
		Short: "Retrieve relevant documentation chunks for a query",
		Long: `Retrieve the documentation chunks of a corpus most relevant to a query.

The corpus is a directory of markdown files under the documentation root.

Examples:
  schemadoc retrieve billing "where do we store refund totals"
  schemadoc retrieve billing "users email" --top-k 3
  schemadoc retrieve billing "order status" --format json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args[1:], " ")
			return runRetrieve(cmd.Context(), cmd, args[0], query, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.topK, "top-k", "n", 0, "Maximum number of results (0 = configured default)")
	cmd.Flags().Float64VarP(&opts.threshold, "threshold", "t", -1, "Relevance threshold (negative = configured default)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")

	return cmd
}

func runRetrieve(ctx context.Context, cmd *cobra.Command, corpusID, query string, opts retrieveOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	reqOpts := &retriever.Options{TopK: opts.topK}
	if opts.threshold >= 0 {
		reqOpts.Threshold = &opts.threshold
	}

	results, err := engine.Retrieve(ctx, corpusID, query, reqOpts)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No relevant documentation found.")
		return nil
	}

	for i, r := range results {
		marker := ""
		if r.Related {
			marker = " (related table)"
		}
		fmt.Fprintf(out, "%d. [%.3f] %s / %s%s\n", i+1, r.Score, r.Chunk.Table, r.Chunk.Type, marker)
		if r.Chunk.Column != "" {
			fmt.Fprintf(out, "   column: %s\n", r.Chunk.Column)
		}
		if len(r.MatchedTerms) > 0 {
			fmt.Fprintf(out, "   matched: %s\n", strings.Join(r.MatchedTerms, ", "))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, indent(r.Chunk.Content, "   "))
	}
	return nil
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
