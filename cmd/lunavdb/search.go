package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find the nearest entries to a query vector",
		Long: `Search prints the k entries nearest to QUERY, a comma-separated list of
floats, ranked by squared Euclidean distance.

Examples:
  lunavdb search --index docs.lvdb --k 5 0.1,0.2,0.3
  lunavdb search --json 0.1,0.2,0.3`,
		Args: cobra.ExactArgs(1),
		RunE: a.runSearch,
	}

	cmd.Flags().Int("k", 5, "number of neighbors")
	cmd.Flags().Bool("json", false, "print results as JSON")
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, args []string) error {
	k, _ := cmd.Flags().GetInt("k")
	asJSON, _ := cmd.Flags().GetBool("json")

	query, err := parseVector(args[0])
	if err != nil {
		return err
	}

	db, _, _, err := a.open(cmd)
	if err != nil {
		return err
	}

	results, err := db.Search(query, k)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		type hit struct {
			ID       string  `json:"id"`
			Distance float32 `json:"distance"`
		}
		hits := make([]hit, len(results))
		for i, r := range results {
			hits[i] = hit{ID: r.ID, Distance: r.Distance}
		}
		return json.NewEncoder(out).Encode(hits)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tDISTANCE")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%g\n", i+1, r.ID, r.Distance)
	}
	return tw.Flush()
}

func parseVector(s string) ([]float32, error) {
	fields := strings.Split(s, ",")
	vec := make([]float32, 0, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, fmt.Errorf("query value %d: %w", i+1, err)
		}
		vec = append(vec, float32(v))
	}
	return vec, nil
}
