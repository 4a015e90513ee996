// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package queryfile saves a search and its results to a YAML file. A saved
// search can be re-read later, fed to the catalog, or shared, without
// re-querying the API.
package queryfile

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/gtr/pkg/gtr"
)

// QueryFile is the on-disk representation of one search and its results.
type QueryFile struct {
	Query    string        `yaml:"query"`
	Options  Options       `yaml:"options"`
	Summary  Summary       `yaml:"summary"`
	Projects []gtr.Project `yaml:"projects"`
}

// Options stores the search options in serializable form.
type Options struct {
	Page     int      `yaml:"page"`
	PageSize int      `yaml:"page_size"`
	Fields   []string `yaml:"fields,omitempty"`
	SortBy   string   `yaml:"sort_by,omitempty"`
	Order    string   `yaml:"order,omitempty"`
}

// Summary stores result statistics and the save timestamp.
type Summary struct {
	TotalMatching int       `yaml:"total_matching"`
	Returned      int       `yaml:"returned"`
	SavedAt       time.Time `yaml:"saved_at"`
}

// FromSearch assembles a QueryFile from a finished search.
func FromSearch(query string, opts gtr.SearchOptions, env gtr.Envelope) QueryFile {
	o := Options{
		Page:     opts.Page,
		PageSize: opts.PageSize,
		SortBy:   string(opts.SortBy),
		Order:    string(opts.Order),
	}
	for _, f := range opts.Fields {
		o.Fields = append(o.Fields, string(f))
	}

	projects := env.Projects()
	return QueryFile{
		Query:   query,
		Options: o,
		Summary: Summary{
			TotalMatching: env.TotalSize(),
			Returned:      len(projects),
			SavedAt:       time.Now().UTC(),
		},
		Projects: projects,
	}
}

// Write saves the query file as YAML.
func (qf QueryFile) Write(path string) error {
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads a previously saved query file.
func Read(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
