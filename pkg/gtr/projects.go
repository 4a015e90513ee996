// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gtr

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// GetProject fetches a single project by identifier. Identifiers are passed
// through without format checks; an unknown id surfaces as an APIError
// wrapping ErrNotFound.
func (c *Client) GetProject(ctx context.Context, projectID string) (Project, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, newValidationError("project id", "must not be empty")
	}

	var p Project
	if err := c.get(ctx, "/projects/"+url.PathEscape(projectID), nil, &p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPersonProjects lists the projects a person is involved in, one page at
// a time.
func (c *Client) GetPersonProjects(ctx context.Context, personID string, opts *PageOptions) (Envelope, error) {
	if strings.TrimSpace(personID) == "" {
		return nil, newValidationError("person id", "must not be empty")
	}
	return c.listProjects(ctx, "/persons/"+url.PathEscape(personID)+"/projects", opts)
}

// GetOrganisationProjects lists the projects funded through an organisation,
// one page at a time.
func (c *Client) GetOrganisationProjects(ctx context.Context, organisationID string, opts *PageOptions) (Envelope, error) {
	if strings.TrimSpace(organisationID) == "" {
		return nil, newValidationError("organisation id", "must not be empty")
	}
	return c.listProjects(ctx, "/organisations/"+url.PathEscape(organisationID)+"/projects", opts)
}

func (c *Client) listProjects(ctx context.Context, path string, opts *PageOptions) (Envelope, error) {
	o := opts.withDefaults()
	if err := o.validate(); err != nil {
		return nil, err
	}

	params := url.Values{
		"p": {strconv.Itoa(o.Page)},
		"s": {strconv.Itoa(o.PageSize)},
	}

	var env Envelope
	if err := c.get(ctx, path, params, &env); err != nil {
		return nil, err
	}
	return env, nil
}
