// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gtr

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// SearchField restricts which project attributes a search matches. The
// values are the upstream field codes.
type SearchField string

const (
	FieldProjectReference SearchField = "pro.gr"
	FieldTitle            SearchField = "pro.t"
	FieldAbstract         SearchField = "pro.a"
	FieldORCID            SearchField = "pro.orcidId"
	FieldResearchTopics   SearchField = "pro.rt"
	FieldHealthActivities SearchField = "pro.ha"
	FieldRCUKProgrammes   SearchField = "pro.rcukp"
	FieldLeadFunder       SearchField = "pro.lf"
)

var searchFields = map[SearchField]bool{
	FieldProjectReference: true,
	FieldTitle:            true,
	FieldAbstract:         true,
	FieldORCID:            true,
	FieldResearchTopics:   true,
	FieldHealthActivities: true,
	FieldRCUKProgrammes:   true,
	FieldLeadFunder:       true,
}

// SortField orders search results. The values are the upstream sort codes.
type SortField string

const (
	SortStartDate   SortField = "pro.sd"
	SortEndDate     SortField = "pro.ed"
	SortFundedValue SortField = "pro.am"
	SortScore       SortField = "score"
)

var sortFields = map[SortField]bool{
	SortStartDate:   true,
	SortEndDate:     true,
	SortFundedValue: true,
	SortScore:       true,
}

// SortOrder is the direction of a sorted search.
type SortOrder string

const (
	Ascending  SortOrder = "A"
	Descending SortOrder = "D"
)

// Page size bounds accepted by the API.
const (
	MinPageSize     = 10
	MaxPageSize     = 100
	DefaultPageSize = 10
)

// PageOptions selects one page of a listing. A nil *PageOptions means page 1
// with DefaultPageSize records.
type PageOptions struct {
	// Page is 1-based.
	Page int

	// PageSize is the record count per page, between MinPageSize and
	// MaxPageSize.
	PageSize int
}

func (o *PageOptions) withDefaults() PageOptions {
	out := PageOptions{Page: 1, PageSize: DefaultPageSize}
	if o == nil {
		return out
	}
	if o.Page != 0 {
		out.Page = o.Page
	}
	if o.PageSize != 0 {
		out.PageSize = o.PageSize
	}
	return out
}

func (o PageOptions) validate() error {
	if o.Page < 1 {
		return newValidationError("page", "must be >= 1, got %d", o.Page)
	}
	if o.PageSize < MinPageSize || o.PageSize > MaxPageSize {
		return newValidationError("page size", "must be between %d and %d, got %d",
			MinPageSize, MaxPageSize, o.PageSize)
	}
	return nil
}

// SearchOptions tunes SearchProjects. A nil *SearchOptions searches every
// indexed field with the API's default ordering, page 1, DefaultPageSize
// records.
type SearchOptions struct {
	PageOptions

	// Fields restricts matching to the given attributes. Empty means the
	// API default, which searches all indexed fields.
	Fields []SearchField

	// SortBy orders the results by the given attribute. Empty keeps the
	// API's default order.
	SortBy SortField

	// Order is the sort direction, sent only when SortBy is set. Defaults
	// to Descending.
	Order SortOrder
}

func (o *SearchOptions) withDefaults() SearchOptions {
	out := SearchOptions{
		PageOptions: PageOptions{Page: 1, PageSize: DefaultPageSize},
		Order:       Descending,
	}
	if o == nil {
		return out
	}
	out.PageOptions = o.PageOptions.withDefaults()
	out.Fields = o.Fields
	out.SortBy = o.SortBy
	if o.Order != "" {
		out.Order = o.Order
	}
	return out
}

func (o SearchOptions) validate() error {
	if err := o.PageOptions.validate(); err != nil {
		return err
	}
	if o.Order != Ascending && o.Order != Descending {
		return newValidationError("sort order", "must be %q or %q, got %q",
			Ascending, Descending, o.Order)
	}
	for _, f := range o.Fields {
		if !searchFields[f] {
			return newValidationError("search field", "unknown code %q", f)
		}
	}
	if o.SortBy != "" && !sortFields[o.SortBy] {
		return newValidationError("sort field", "unknown code %q", o.SortBy)
	}
	return nil
}

// SearchProjects runs a keyword search over funded projects and returns the
// paged envelope exactly as the API sent it. Parameters are validated before
// any request goes out.
func (c *Client) SearchProjects(ctx context.Context, query string, opts *SearchOptions) (Envelope, error) {
	if strings.TrimSpace(query) == "" {
		return nil, newValidationError("query", "must not be empty")
	}
	o := opts.withDefaults()
	if err := o.validate(); err != nil {
		return nil, err
	}

	params := url.Values{
		"q": {query},
		"p": {strconv.Itoa(o.Page)},
		"s": {strconv.Itoa(o.PageSize)},
	}
	for _, f := range o.Fields {
		params.Add("f", string(f))
	}
	if o.SortBy != "" {
		params.Set("sf", string(o.SortBy))
		params.Set("so", string(o.Order))
	}

	var env Envelope
	if err := c.get(ctx, "/projects", params, &env); err != nil {
		return nil, err
	}
	return env, nil
}

// GetTopResults searches by relevance and returns the first limit records.
// It makes one request: a limit above MaxPageSize is capped at a single page
// of MaxPageSize records, and a limit below MinPageSize still requests the
// minimum legal page size before truncating locally.
func (c *Client) GetTopResults(ctx context.Context, query string, limit int, fields ...SearchField) ([]Project, error) {
	if limit < 1 {
		return nil, newValidationError("limit", "must be >= 1, got %d", limit)
	}

	size := limit
	if size < MinPageSize {
		size = MinPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	env, err := c.SearchProjects(ctx, query, &SearchOptions{
		PageOptions: PageOptions{Page: 1, PageSize: size},
		Fields:      fields,
		SortBy:      SortScore,
		Order:       Descending,
	})
	if err != nil {
		return nil, err
	}

	projects := env.Projects()
	if len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}
