// Package unsplashsearch searches Unsplash photos and shows them as a
// masonry grid.
package unsplashsearch

import (
	"context"
	"errors"
	"strings"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/format"
	"mercator-hq/callisto/pkg/icons"
	"mercator-hq/callisto/pkg/upstream/unsplash"
)

const (
	Name = "unsplash-search"

	// PhotoParam selects a photo by ID.
	PhotoParam = "photo"

	// DefaultQuery is searched when the input is empty.
	DefaultQuery = "nature"

	Placeholder = "Type to search Unsplash photos"
)

// ErrNoAccessKey is returned when the server has no Unsplash access key.
var ErrNoAccessKey = errors.New("unsplash access key is not configured")

// Command implements unsplash-search. The access key is held by the
// server, so there is no configuration form.
type Command struct {
	command.NoConfig
	client     *unsplash.Client
	configured bool
}

// New returns the command. configured reports whether an access key is set.
func New(client *unsplash.Client, configured bool) *Command {
	return &Command{client: client, configured: configured}
}

func (c *Command) Spec() command.Spec {
	return command.Spec{
		Name:        Name,
		DetailParam: PhotoParam,
	}
}

func (c *Command) List(ctx context.Context, req command.Request) (*envelope.Response, error) {
	if !c.configured {
		return nil, ErrNoAccessKey
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = DefaultQuery
	}

	photos, err := c.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	options := make([]*envelope.Option, 0, len(photos))
	for _, photo := range photos {
		options = append(options, &envelope.Option{
			ImageURL:   photo.URLs.Small,
			Action:     envelope.OpenURL(photo.URLs.Raw),
			MoveAction: envelope.AddParam(PhotoParam, photo.ID),
		})
	}
	return envelope.Masonry(options...).WithPlaceholder(Placeholder), nil
}

func (c *Command) Detail(ctx context.Context, req command.Request) (*envelope.Response, error) {
	if !c.configured {
		return nil, ErrNoAccessKey
	}
	photo, err := c.client.Photo(ctx, req.Param(PhotoParam))
	if err != nil {
		return nil, err
	}

	var profile *envelope.Option
	if photo.User.Links.HTML != "" {
		profile = &envelope.Option{
			Title:    "Open Photographer Profile",
			Subtitle: envelope.Text(photo.User.Name),
			Action:   envelope.OpenURL(photo.User.Links.HTML),
		}
	}

	options := format.Compact(
		&envelope.Option{
			Title:  "Open on Unsplash",
			Icon:   icons.Unsplash,
			Action: envelope.OpenURL(photo.Links.HTML),
		},
		&envelope.Option{
			Title:    "Open Full Size",
			ImageURL: photo.URLs.Small,
			Action:   envelope.OpenURL(photo.URLs.Full),
		},
		&envelope.Option{
			Title:  "Copy Image URL",
			Action: envelope.Copy(photo.URLs.Full),
		},
		profile,
	)

	return envelope.List(options...).WithTokens(envelope.Token{
		ParamName: PhotoParam,
		Label:     photo.Label(),
		Icon:      icons.Unsplash,
	}), nil
}

func (c *Command) Fail(_ context.Context, _ command.Request, err error) *envelope.Response {
	return command.ErrorToast(err)
}
