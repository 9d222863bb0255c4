// Package npms searches npm packages through the npms.io v2 API.
package npms

import (
	"context"
	"net/url"
	"time"

	"mercator-hq/callisto/pkg/upstream"
)

// DefaultBaseURL is the public npms.io API.
const DefaultBaseURL = "https://api.npms.io/v2"

// Package is package metadata as returned by search and package lookups.
type Package struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Links       Links     `json:"links"`
}

// Links are the package's external URLs. Only NPM is always present.
type Links struct {
	NPM        string `json:"npm"`
	Homepage   string `json:"homepage"`
	Repository string `json:"repository"`
	Bugs       string `json:"bugs"`
}

// Info is the full analysis of a package.
type Info struct {
	Collected Collected `json:"collected"`
	Score     Score     `json:"score"`
}

// Collected holds the data npms gathered about a package.
type Collected struct {
	Metadata Package `json:"metadata"`
	// GitHub is nil when the package has no GitHub repository.
	GitHub *GitHub `json:"github"`
}

// GitHub holds repository statistics.
type GitHub struct {
	StarsCount int `json:"starsCount"`
	ForksCount int `json:"forksCount"`
}

// Score is the npms package score.
type Score struct {
	Final  float64      `json:"final"`
	Detail ScoreDetails `json:"detail"`
}

// ScoreDetails breaks the score down.
type ScoreDetails struct {
	Quality     float64 `json:"quality"`
	Popularity  float64 `json:"popularity"`
	Maintenance float64 `json:"maintenance"`
}

// Client calls the npms API. It needs no credentials.
type Client struct {
	base *upstream.Client
}

// New returns a client sending requests through base.
func New(base *upstream.Client) *Client {
	return &Client{base: base}
}

// Search returns the packages matching q in relevance order.
func (c *Client) Search(ctx context.Context, q string) ([]Package, error) {
	var resp struct {
		Results []struct {
			Package Package `json:"package"`
		} `json:"results"`
	}
	if err := c.base.GetJSON(ctx, "/search?q="+url.QueryEscape(q), nil, &resp); err != nil {
		return nil, err
	}

	pkgs := make([]Package, 0, len(resp.Results))
	for _, r := range resp.Results {
		pkgs = append(pkgs, r.Package)
	}
	return pkgs, nil
}

// MGet fetches the analysis of several packages in one request, keyed by
// package name.
func (c *Client) MGet(ctx context.Context, names []string) (map[string]Info, error) {
	infos := map[string]Info{}
	if len(names) == 0 {
		return infos, nil
	}
	if err := c.base.PostJSON(ctx, "/package/mget", names, nil, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// Package fetches the analysis of one package.
func (c *Client) Package(ctx context.Context, name string) (*Info, error) {
	var info Info
	if err := c.base.GetJSON(ctx, "/package/"+url.PathEscape(name), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
