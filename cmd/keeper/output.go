package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"searchops/keeper/pkg/document"
	"searchops/keeper/pkg/keeper"
)

// listing is the structured-output shape of one listed entity.
type listing struct {
	Name        string            `json:"name" yaml:"name"`
	LastUpdated string            `json:"last_updated,omitempty" yaml:"last_updated,omitempty"`
	Document    document.Document `json:"document" yaml:"document"`
}

func listings(entities []keeper.Entity) []listing {
	out := make([]listing, 0, len(entities))
	for _, ent := range entities {
		l := listing{Name: ent.Name, Document: ent.Document}
		if ent.LastUpdated > 0 {
			l.LastUpdated = formatTimestamp(ent.LastUpdated)
		}
		out = append(out, l)
	}
	return out
}

// formatTimestamp renders a unix-seconds timestamp in UTC.
func formatTimestamp(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04:05")
}

func renderTemplateTable(w io.Writer, entities []keeper.Entity) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINDEX PATTERNS\tPRIORITY")
	for _, ent := range entities {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ent.Name, indexPatterns(ent.Document), priority(ent.Document))
	}
	return tw.Flush()
}

func renderPolicyTable(w io.Writer, entities []keeper.Entity) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLAST UPDATED")
	for _, ent := range entities {
		updated := "-"
		if ent.LastUpdated > 0 {
			updated = formatTimestamp(ent.LastUpdated)
		}
		fmt.Fprintf(tw, "%s\t%s\n", ent.Name, updated)
	}
	return tw.Flush()
}

func indexPatterns(doc document.Document) string {
	patterns, ok := doc["index_patterns"].([]any)
	if !ok {
		return "-"
	}
	parts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ", ")
}

func priority(doc document.Document) string {
	p, ok := doc["priority"]
	if !ok {
		return "-"
	}
	return fmt.Sprint(p)
}

// printResults reports the per-entity outcome of a publish batch.
func printResults(w io.Writer, results []keeper.Result) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s: %s: %v\n", res.Name, res.Outcome, res.Err)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", res.Name, res.Outcome)
	}
}

// printSummary reports aggregate counts after a publish batch.
func printSummary(w io.Writer, s keeper.Summary) {
	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "  created: %d, updated: %d, unchanged: %d, declined: %d, failed: %d\n",
		s.Created, s.Updated, s.SkippedNoChange, s.SkippedDeclined, s.Failed)
	for _, name := range s.FailedNames {
		fmt.Fprintf(w, "  failed: %s\n", name)
	}
}
