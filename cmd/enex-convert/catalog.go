// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/enex-convert/internal/catalog"
	"github.com/pdiddy/enex-convert/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [title]",
	Short: "List extracted attachments recorded in the catalog",
	Long: `Catalog queries <dest>/catalog.db, written by convert, for attachments
by archive, year, title substring, content hash, or status (written,
unchanged, collision, skipped, failed). Use --summary for counts per status.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	addCatalogFlags(catalogCmd)
	rootCmd.AddCommand(catalogCmd)
}

func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().String("archive", "", "filter by archive file name or notebook folder")
	cmd.Flags().String("year", "", "filter by note year (YYYY)")
	cmd.Flags().String("hash", "", "filter by content hash")
	cmd.Flags().String("status", "", "filter by status: written, unchanged, collision, skipped, failed")
	cmd.Flags().Int("max-results", 50, "maximum number of results")
	cmd.Flags().Bool("json", false, "output results as JSON")
	cmd.Flags().Bool("summary", false, "print attachment counts per status")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	opts, err := catalogQueryFromFlags(cmd, args)
	if err != nil {
		return err
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	store, err := catalog.OpenExisting(types.CatalogConfig{
		DestDir:    viper.GetString("dest_dir"),
		MaxResults: maxResults,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		counts, err := store.StatusCounts(cmd.Context())
		if err != nil {
			return err
		}
		printStatusCounts(os.Stdout, counts)
		return nil
	}

	results, err := store.Resources(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalogOutput(os.Stdout, results, jsonOutput)
}

func catalogQueryFromFlags(cmd *cobra.Command, args []string) (catalog.QueryOptions, error) {
	archive, _ := cmd.Flags().GetString("archive")
	year, _ := cmd.Flags().GetString("year")
	hash, _ := cmd.Flags().GetString("hash")
	status, _ := cmd.Flags().GetString("status")

	st, err := types.ParseResourceStatus(status)
	if err != nil {
		return catalog.QueryOptions{}, err
	}

	opts := catalog.QueryOptions{
		Archive: archive,
		Year:    year,
		Hash:    hash,
		Status:  st,
	}
	if len(args) > 0 {
		opts.Title = args[0]
	}
	return opts, nil
}

func formatCatalogOutput(w io.Writer, results []catalog.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if results == nil {
			results = []catalog.Result{}
		}
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No attachments found.")
		return nil
	}

	fmt.Fprintf(w, "%-10s  %-20s  %-40s  %-6s  %-9s  %s\n",
		"Date", "Notebook", "Title", "Hash", "Status", "Path")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, r := range results {
		fmt.Fprintf(w, "%-10s  %-20s  %-40s  %-6s  %-9s  %s\n",
			r.Date, clip(r.Base, 20), clip(r.Title, 40), r.Hash, r.Status, r.Path)
	}
	return nil
}

func printStatusCounts(w io.Writer, counts map[types.ResourceStatus]int) {
	statuses := make([]string, 0, len(counts))
	total := 0
	for s, n := range counts {
		statuses = append(statuses, string(s))
		total += n
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		fmt.Fprintf(w, "%-10s %d\n", s, counts[types.ResourceStatus(s)])
	}
	fmt.Fprintf(w, "%-10s %d\n", "total", total)
}

// clip shortens s to n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
