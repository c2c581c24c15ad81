package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChunksCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "chunks <corpus>",
		Short: "Show the parsed chunks of a corpus",
		Long: `Parse a documentation corpus and print its chunks.

Useful for verifying how documents are split before querying them.

Examples:
  schemadoc chunks billing
  schemadoc chunks billing --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}

			chunks, err := engine.Chunks(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(chunks)
			}

			out := cmd.OutOrStdout()
			if len(chunks) == 0 {
				fmt.Fprintln(out, "No documentation found.")
				return nil
			}
			for i, c := range chunks {
				fmt.Fprintf(out, "%d. %s / %s", i+1, c.Table, c.Type)
				if c.Column != "" {
					fmt.Fprintf(out, " (%s)", c.Column)
				}
				fmt.Fprintf(out, " ~%d tokens\n", c.TokenEstimate)
				if len(c.RelatedTables) > 0 {
					fmt.Fprintf(out, "   related: %s\n", strings.Join(c.RelatedTables, ", "))
				}
				if len(c.Keywords) > 0 {
					fmt.Fprintf(out, "   keywords: %s\n", strings.Join(c.Keywords, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json")

	return cmd
}
