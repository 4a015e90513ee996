// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gtr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"
)

const sampleProjectJSON = `{
  "id": "04A966FF-B47E-4C5D-A9E6-92B04F74EF1C",
  "title": "Graphene-based supercapacitor electrodes",
  "status": "Active",
  "abstractText": "We investigate layered graphene electrodes for grid-scale storage.",
  "grantCategory": "Research Grant",
  "grantReference": "EP/S024921/1",
  "fund": {"valuePounds": 748921, "start": 1580515200000, "end": 1675123200000}
}`

// --- get by id ---

func TestGetProject(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, sampleProjectJSON)
	})

	p, err := client.GetProject(context.Background(), "04A966FF-B47E-4C5D-A9E6-92B04F74EF1C")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}

	if path != "/projects/04A966FF-B47E-4C5D-A9E6-92B04F74EF1C" {
		t.Errorf("path = %q", path)
	}
	if p.ID() != "04A966FF-B47E-4C5D-A9E6-92B04F74EF1C" {
		t.Errorf("ID() = %q", p.ID())
	}
	if p.Title() != "Graphene-based supercapacitor electrodes" {
		t.Errorf("Title() = %q", p.Title())
	}
	// The full record passes through, accessor or not.
	if p["grantCategory"] != "Research Grant" {
		t.Errorf("grantCategory = %v, record should be verbatim", p["grantCategory"])
	}
}

func TestGetProjectNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such project", http.StatusNotFound)
	})

	_, err := client.GetProject(context.Background(), "unknown-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("err = %v, want *APIError carrying 404", err)
	}
}

func TestGetProjectEscapesID(t *testing.T) {
	var rawPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		fmt.Fprint(w, "{}")
	})

	if _, err := client.GetProject(context.Background(), "odd/id"); err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if rawPath != "/projects/odd%2Fid" {
		t.Errorf("escaped path = %q", rawPath)
	}
}

// --- id validation ---

func TestEmptyIdentifiersRejected(t *testing.T) {
	client := newTestClient(t, envelopeHandler(sampleEnvelopeJSON))
	ctx := context.Background()

	tests := []struct {
		name string
		do   func() error
	}{
		{"project", func() error { _, err := client.GetProject(ctx, ""); return err }},
		{"person", func() error { _, err := client.GetPersonProjects(ctx, " ", nil); return err }},
		{"organisation", func() error { _, err := client.GetOrganisationProjects(ctx, "", nil); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *ValidationError
			if err := tt.do(); !errors.As(err, &verr) {
				t.Errorf("err = %v, want *ValidationError", err)
			}
		})
	}
}

// --- path disambiguation ---

func TestPersonAndOrganisationPathsDiffer(t *testing.T) {
	var paths []string
	var params []url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		params = append(params, r.URL.Query())
		fmt.Fprint(w, sampleEnvelopeJSON)
	})
	ctx := context.Background()

	const id = "5A1B2C3D-0000-1111-2222-333344445555"
	opts := &PageOptions{Page: 2, PageSize: 20}

	if _, err := client.GetPersonProjects(ctx, id, opts); err != nil {
		t.Fatalf("GetPersonProjects: %v", err)
	}
	if _, err := client.GetOrganisationProjects(ctx, id, opts); err != nil {
		t.Fatalf("GetOrganisationProjects: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("server saw %d requests, want 2", len(paths))
	}
	if paths[0] != "/persons/"+id+"/projects" {
		t.Errorf("person path = %q", paths[0])
	}
	if paths[1] != "/organisations/"+id+"/projects" {
		t.Errorf("organisation path = %q", paths[1])
	}
	if paths[0] == paths[1] {
		t.Error("person and organisation requests must hit distinct endpoints")
	}

	for i, got := range params {
		if got.Get("p") != "2" || got.Get("s") != "20" {
			t.Errorf("request %d params = %v, want p=2 s=20", i, got)
		}
	}
}

func TestListProjectsPageSizeValidated(t *testing.T) {
	client := newTestClient(t, envelopeHandler(sampleEnvelopeJSON))

	_, err := client.GetPersonProjects(context.Background(), "P-1", &PageOptions{PageSize: 7})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if verr.Field != "page size" {
		t.Errorf("Field = %q, want %q", verr.Field, "page size")
	}
}
