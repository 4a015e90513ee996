// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gtr

import "encoding/json"

// Envelope is the paged response body, verbatim. The accessors read the
// pagination keys; the map itself keeps everything the API sent, including
// fields this package knows nothing about.
type Envelope map[string]any

// Projects returns the page's records. A page holding a single record
// arrives as a bare JSON object rather than an array; both shapes come back
// as a slice.
func (e Envelope) Projects() []Project {
	switch v := e["project"].(type) {
	case map[string]any:
		return []Project{Project(v)}
	case []any:
		out := make([]Project, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, Project(m))
			}
		}
		return out
	}
	return nil
}

// Page returns the 1-based page number of this envelope.
func (e Envelope) Page() int { return intField(e, "page") }

// Size returns the page size the API applied.
func (e Envelope) Size() int { return intField(e, "size") }

// TotalPages returns the number of pages matching the request.
func (e Envelope) TotalPages() int { return intField(e, "totalPages") }

// TotalSize returns the total count of matching records.
func (e Envelope) TotalSize() int { return intField(e, "totalSize") }

// Project is one project record, verbatim. The accessors read the handful
// of fields the CLI and catalog display; everything else stays reachable
// through the map.
type Project map[string]any

// ID returns the project identifier, or "".
func (p Project) ID() string { return stringField(p, "id") }

// Title returns the project title, or "".
func (p Project) Title() string { return stringField(p, "title") }

// AbstractText returns the project abstract, or "".
func (p Project) AbstractText() string { return stringField(p, "abstractText") }

// PotentialImpact returns the impact statement, or "".
func (p Project) PotentialImpact() string { return stringField(p, "potentialImpact") }

// GrantReference returns the funder's grant reference, or "".
func (p Project) GrantReference() string { return stringField(p, "grantReference") }

// Status returns the project status, or "".
func (p Project) Status() string { return stringField(p, "status") }

// Fund returns the nested fund object, or nil.
func (p Project) Fund() map[string]any {
	m, _ := p["fund"].(map[string]any)
	return m
}

// FundValuePounds returns fund.valuePounds and whether it was present.
func (p Project) FundValuePounds() (float64, bool) {
	return numberField(p.Fund(), "valuePounds")
}

// FundStart returns fund.start as epoch milliseconds and whether it was
// present.
func (p Project) FundStart() (int64, bool) {
	f, ok := numberField(p.Fund(), "start")
	return int64(f), ok
}

// FundEnd returns fund.end as epoch milliseconds and whether it was present.
func (p Project) FundEnd() (int64, bool) {
	f, ok := numberField(p.Fund(), "end")
	return int64(f), ok
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// intField tolerates the numeric types JSON and YAML decoding produce.
func intField(m map[string]any, key string) int {
	f, _ := numberField(m, key)
	return int(f)
}

func numberField(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}
