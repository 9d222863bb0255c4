// Package github reads a user's starred repositories through the GitHub
// REST API.
package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v24/github"
	"golang.org/x/oauth2"

	"mercator-hq/callisto/pkg/upstream"
)

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com/"

// StarredLimit is the number of most recently starred repositories listed.
const StarredLimit = 100

// Repository is the subset of repository data the command renders.
type Repository struct {
	ID          int64
	Name        string
	FullName    string
	Description string
	URL         string
	Homepage    string
	Stars       int
	Forks       int
	StarredAt   time.Time
}

// Client wraps go-github with per-request token authentication.
type Client struct {
	base *upstream.Client
}

// New returns a client sending requests through base.
func New(base *upstream.Client) *Client {
	return &Client{base: base}
}

// Starred returns the most recently starred repositories of the token owner.
func (c *Client) Starred(ctx context.Context, token string) ([]Repository, error) {
	api, err := c.api(ctx, token)
	if err != nil {
		return nil, err
	}

	starred, _, err := api.Activity.ListStarred(ctx, "", &gh.ActivityListStarredOptions{
		Sort:        "created",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: StarredLimit},
	})
	if err != nil {
		return nil, c.mapError(err)
	}

	repos := make([]Repository, 0, len(starred))
	for _, s := range starred {
		if s == nil || s.Repository == nil {
			continue
		}
		repo := fromAPI(s.Repository)
		if s.StarredAt != nil {
			repo.StarredAt = s.StarredAt.Time
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

// Repository looks a repository up by the numeric ID emitted in list mode.
func (c *Client) Repository(ctx context.Context, token, id string) (*Repository, error) {
	repoID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || repoID <= 0 {
		return nil, &upstream.StatusError{Service: c.base.Name(), StatusCode: http.StatusNotFound, Body: "invalid repository id " + strconv.Quote(id)}
	}

	api, err := c.api(ctx, token)
	if err != nil {
		return nil, err
	}

	r, _, err := api.Repositories.GetByID(ctx, repoID)
	if err != nil {
		return nil, c.mapError(err)
	}
	repo := fromAPI(r)
	return &repo, nil
}

func (c *Client) api(ctx context.Context, token string) (*gh.Client, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base.HTTPClient())
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	api := gh.NewClient(httpClient)
	baseURL, err := url.Parse(c.base.URL("/"))
	if err != nil {
		return nil, err
	}
	api.BaseURL = baseURL
	api.UserAgent = "callisto"
	return api, nil
}

// mapError converts go-github errors into the upstream error taxonomy.
func (c *Client) mapError(err error) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return &upstream.StatusError{Service: c.base.Name(), StatusCode: rateErr.Response.StatusCode, Body: rateErr.Message}
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		status := respErr.Response.StatusCode
		if status == http.StatusUnauthorized {
			return &upstream.AuthError{Service: c.base.Name(), StatusCode: status, Message: respErr.Message}
		}
		return &upstream.StatusError{Service: c.base.Name(), StatusCode: status, Body: respErr.Message}
	}

	// Transport failures come back wrapped in *url.Error by net/http.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &upstream.TimeoutError{Service: c.base.Name(), Cause: err}
	}
	return err
}

func fromAPI(r *gh.Repository) Repository {
	return Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Description: strings.TrimSpace(r.GetDescription()),
		URL:         r.GetHTMLURL(),
		Homepage:    strings.TrimSpace(r.GetHomepage()),
		Stars:       r.GetStargazersCount(),
		Forks:       r.GetForksCount(),
	}
}
