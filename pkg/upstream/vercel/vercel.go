// Package vercel lists Vercel projects and their domains.
package vercel

import (
	"context"
	"net/url"

	"mercator-hq/callisto/pkg/upstream"
)

// DefaultBaseURL is the public Vercel API.
const DefaultBaseURL = "https://api.vercel.com"

// Project is a Vercel project.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AccountID string `json:"accountId"`
	// Framework is empty when no preset is configured.
	Framework string `json:"framework"`
	// UpdatedAt is a Unix timestamp in milliseconds.
	UpdatedAt int64 `json:"updatedAt"`
}

// DashboardURL is the project page on vercel.com.
func (p Project) DashboardURL() string {
	return "https://vercel.com/" + p.AccountID + "/" + p.Name
}

// Domain is a domain assigned to a project.
type Domain struct {
	Name string `json:"name"`
}

// AppURL is the HTTPS URL of the domain.
func (d Domain) AppURL() string {
	return "https://" + d.Name
}

// Client calls the Vercel API with a caller-supplied token.
type Client struct {
	base *upstream.Client
}

// New returns a client sending requests through base.
func New(base *upstream.Client) *Client {
	return &Client{base: base}
}

// Projects lists the projects visible to token.
func (c *Client) Projects(ctx context.Context, token string) ([]Project, error) {
	var resp struct {
		Projects []Project `json:"projects"`
	}
	if err := c.base.GetJSON(ctx, "/v8/projects/", upstream.Bearer(token), &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// Project looks a project up by ID.
func (c *Client) Project(ctx context.Context, token, id string) (*Project, error) {
	var project Project
	if err := c.base.GetJSON(ctx, "/v8/projects/"+url.PathEscape(id), upstream.Bearer(token), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Domains lists the domains of a project.
func (c *Client) Domains(ctx context.Context, token, id string) ([]Domain, error) {
	var resp struct {
		Domains []Domain `json:"domains"`
	}
	if err := c.base.GetJSON(ctx, "/v8/projects/"+url.PathEscape(id)+"/domains", upstream.Bearer(token), &resp); err != nil {
		return nil, err
	}
	return resp.Domains, nil
}
