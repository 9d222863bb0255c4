// Package commands assembles every built-in command and the upstream
// clients they talk to.
package commands

import (
	"fmt"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/commands/githubstars"
	"mercator-hq/callisto/pkg/commands/hnfrontpage"
	"mercator-hq/callisto/pkg/commands/honeycombboards"
	"mercator-hq/callisto/pkg/commands/iconfinder"
	"mercator-hq/callisto/pkg/commands/parseuseragent"
	"mercator-hq/callisto/pkg/commands/searchnpm"
	"mercator-hq/callisto/pkg/commands/unsplashsearch"
	"mercator-hq/callisto/pkg/commands/vercelprojects"
	"mercator-hq/callisto/pkg/config"
	"mercator-hq/callisto/pkg/upstream"
	"mercator-hq/callisto/pkg/upstream/github"
	"mercator-hq/callisto/pkg/upstream/hnrss"
	"mercator-hq/callisto/pkg/upstream/honeycomb"
	api "mercator-hq/callisto/pkg/upstream/iconfinder"
	"mercator-hq/callisto/pkg/upstream/npms"
	"mercator-hq/callisto/pkg/upstream/unsplash"
	"mercator-hq/callisto/pkg/upstream/vercel"
)

// UserAgent is sent to every upstream service.
const UserAgent = "callisto"

// Names lists the built-in commands in registration order.
var Names = []string{
	githubstars.Name,
	hnfrontpage.Name,
	honeycombboards.Name,
	iconfinder.Name,
	parseuseragent.Name,
	searchnpm.Name,
	unsplashsearch.Name,
	vercelprojects.Name,
}

// Build constructs every built-in command from cfg. opts are applied to
// each upstream client, typically to attach a metrics observer.
func Build(cfg *config.Config, opts ...upstream.Option) []command.Command {
	client := func(name string) *upstream.Client {
		return NewClient(cfg, name, opts...)
	}

	unsplashKey := cfg.Commands.Unsplash.AccessKey

	return []command.Command{
		githubstars.New(github.New(client("github"))),
		hnfrontpage.New(hnrss.New(client("hnrss"), cfg.Commands.HackerNews.FeedURL)),
		honeycombboards.New(honeycomb.New(client("honeycomb")), cfg.Commands.Honeycomb.Team),
		iconfinder.New(api.New(client("iconfinder"), cfg.Commands.Iconfinder.APIKey)),
		parseuseragent.New(),
		searchnpm.New(npms.New(client("npms"))),
		unsplashsearch.New(unsplash.New(client("unsplash"), unsplashKey), unsplashKey != ""),
		vercelprojects.New(vercel.New(client("vercel")), nil),
	}
}

// NewRegistry builds every command and registers it.
func NewRegistry(cfg *config.Config, opts ...upstream.Option) (*command.Registry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	registry, err := command.NewRegistry(Build(cfg, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to register commands: %w", err)
	}
	return registry, nil
}

// NewClient creates the client for one upstream service from its
// configuration entry. Missing base URLs fall back to the public endpoint.
func NewClient(cfg *config.Config, name string, opts ...upstream.Option) *upstream.Client {
	up := cfg.Upstreams[name]
	baseURL := up.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURLs[name]
	}
	return upstream.New(upstream.Config{
		Name:                name,
		BaseURL:             baseURL,
		Timeout:             up.Timeout,
		UserAgent:           UserAgent,
		MaxIdleConns:        up.MaxIdleConns,
		MaxIdleConnsPerHost: up.MaxIdleConnsPerHost,
		IdleConnTimeout:     up.IdleConnTimeout,
		PropagateTrace:      up.PropagateTrace,
	}, opts...)
}
