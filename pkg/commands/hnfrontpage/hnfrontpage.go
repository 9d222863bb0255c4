// Package hnfrontpage lists the current Hacker News front page.
package hnfrontpage

import (
	"context"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/format"
	"mercator-hq/callisto/pkg/icons"
	"mercator-hq/callisto/pkg/upstream/hnrss"
)

const (
	Name = "hn-front-page"

	// PageParam selects a story by its feed GUID.
	PageParam = "page"

	// CacheControl lets shared caches hold the front page for ten minutes.
	CacheControl = "max-age=0, s-maxage=600"
)

// Command implements hn-front-page. It needs no configuration.
type Command struct {
	command.NoConfig
	feed *hnrss.Client
}

// New returns the command reading feed.
func New(feed *hnrss.Client) *Command {
	return &Command{feed: feed}
}

func (c *Command) Spec() command.Spec {
	return command.Spec{
		Name:            Name,
		DetailParam:     PageParam,
		ResponseHeaders: map[string]string{"Cache-Control": CacheControl},
	}
}

func (c *Command) List(ctx context.Context, _ command.Request) (*envelope.Response, error) {
	items, err := c.feed.FrontPage(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]*envelope.Option, 0, len(items))
	for _, item := range items {
		options = append(options, &envelope.Option{
			Title:      item.Title,
			Subtitle:   envelope.Lines(subtitle(item)...),
			Icon:       icons.Page,
			Action:     envelope.OpenURL(item.Link),
			MoveAction: envelope.AddParam(PageParam, item.GUID),
		})
	}
	return envelope.List(options...), nil
}

// Detail re-reads the feed and resolves the story by GUID. Stories that
// dropped off the front page resolve to ErrNotFound.
func (c *Command) Detail(ctx context.Context, req command.Request) (*envelope.Response, error) {
	items, err := c.feed.FrontPage(ctx)
	if err != nil {
		return nil, err
	}
	item, ok := hnrss.Find(items, req.Param(PageParam))
	if !ok {
		return nil, command.ErrNotFound
	}

	return envelope.List(
		&envelope.Option{
			Title:  "Open",
			Action: envelope.OpenURL(item.Link),
		},
		&envelope.Option{
			Title:  "Open on Hacker News",
			Icon:   icons.HackerNews,
			Action: envelope.OpenURL(item.GUID),
		},
	).WithTokens(envelope.Token{
		ParamName: PageParam,
		Label:     item.Title,
		Icon:      icons.Page,
	}), nil
}

func (c *Command) Fail(_ context.Context, _ command.Request, err error) *envelope.Response {
	if command.IsNotFound(err) {
		return command.NotFound()
	}
	return command.Generic()
}

func subtitle(item hnrss.Item) []string {
	var points, comments string
	if item.Points != "" {
		points = item.Points + " Points"
	}
	if item.Comments != "" {
		comments = item.Comments + " Comments"
	}
	return format.Compact(item.Creator, points, comments)
}
