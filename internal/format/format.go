// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders project records for terminal and file output.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gtr/pkg/gtr"
)

const dateFmt = "2006-01-02"

// Table writes projects as a fixed-width table to w.
func Table(projects []gtr.Project, w io.Writer) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-58s  %-12s  %-5s  %s\n",
		"Rank", "Title", "Funding", "Start", "Id")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, p := range projects {
		funding := ""
		if v, ok := p.FundValuePounds(); ok {
			funding = fmt.Sprintf("£%.0f", v)
		}
		start := ""
		if ms, ok := p.FundStart(); ok {
			start = millisToDate(ms).Format("2006")
		}
		fmt.Fprintf(w, "%-4d  %-58s  %-12s  %-5s  %s\n",
			i+1, truncate(p.Title(), 58), funding, start, p.ID())
	}

	fmt.Fprintf(w, "\n%d projects\n", len(projects))
}

// Summary writes the envelope's pagination line.
func Summary(env gtr.Envelope, w io.Writer) {
	fmt.Fprintf(w, "page %d of %d, %d matching projects\n",
		env.Page(), env.TotalPages(), env.TotalSize())
}

// List writes projects as numbered entries with abstract and funding details.
func List(projects []gtr.Project, w io.Writer) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects found.")
		return
	}

	for i, p := range projects {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Title())
		fmt.Fprintf(w, "   ID: %s\n", p.ID())
		if a := p.AbstractText(); a != "" {
			fmt.Fprintf(w, "   Abstract: %s\n", truncate(a, 200))
		}
		fmt.Fprintf(w, "   Funding: %s\n", fundLine(p))
		fmt.Fprintln(w)
	}
}

// Detail writes one record in full.
func Detail(p gtr.Project, w io.Writer) {
	fmt.Fprintf(w, "Title:    %s\n", p.Title())
	fmt.Fprintf(w, "ID:       %s\n", p.ID())
	if s := p.Status(); s != "" {
		fmt.Fprintf(w, "Status:   %s\n", s)
	}
	fmt.Fprintf(w, "Funding:  %s\n", fundLine(p))
	if a := p.AbstractText(); a != "" {
		fmt.Fprintf(w, "\n%s\n", a)
	}
}

// JSON writes v as indented JSON to w.
func JSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML to w.
func YAML(v any, w io.Writer) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func fundLine(p gtr.Project) string {
	v, ok := p.FundValuePounds()
	if !ok {
		return "unknown"
	}
	line := fmt.Sprintf("£%.0f", v)

	start, sok := p.FundStart()
	end, eok := p.FundEnd()
	if sok && eok {
		line += fmt.Sprintf(" (%s to %s)",
			millisToDate(start).Format(dateFmt), millisToDate(end).Format(dateFmt))
	}
	return line
}

func millisToDate(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
