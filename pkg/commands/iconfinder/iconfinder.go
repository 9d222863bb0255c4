// Package iconfinder searches Iconfinder and pastes vector icons as SVG.
package iconfinder

import (
	"context"
	"strconv"
	"strings"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/format"
	api "mercator-hq/callisto/pkg/upstream/iconfinder"
)

const (
	Name = "iconfinder"

	// Preference headers set by the configuration form.
	CountHeader   = "count"
	PremiumHeader = "premium"
	TypeHeader    = "type"
	StyleHeader   = "style"

	// IDParam selects an icon by ID.
	IDParam = "id"

	// DefaultCount prefills the count field.
	DefaultCount = "10"
)

// maxSVGFetches bounds the concurrent SVG downloads of one search.
const maxSVGFetches = 8

// Command implements iconfinder.
type Command struct {
	client *api.Client
}

// New returns the command backed by client.
func New(client *api.Client) *Command {
	return &Command{client: client}
}

func (c *Command) Spec() command.Spec {
	return command.Spec{
		Name:           Name,
		ConfigHeaders:  []string{CountHeader, PremiumHeader, TypeHeader, StyleHeader},
		RequiredHeader: CountHeader,
		DetailParam:    IDParam,
	}
}

// Configure renders the search preferences. The style choices come from
// the Iconfinder styles endpoint.
func (c *Command) Configure(ctx context.Context, _ command.Request, formErr string) (*envelope.Response, error) {
	styles, err := c.client.Styles(ctx)
	if err != nil {
		return nil, err
	}
	choices := make([]envelope.SelectOption, 0, len(styles))
	for _, style := range styles {
		choices = append(choices, envelope.SelectOption{Label: style.Name, Value: style.Identifier})
	}

	return envelope.ConfigForm(formErr,
		envelope.Row(
			envelope.Field{Type: envelope.FieldText, ID: CountHeader, Label: "Count", DefaultValue: DefaultCount, Required: true},
			envelope.Field{Type: envelope.FieldToggle, ID: PremiumHeader, Label: "Include Premium", DefaultValue: false},
		),
		envelope.Row(
			envelope.Field{
				Type:         envelope.FieldSelect,
				ID:           TypeHeader,
				Label:        "Type",
				DefaultValue: "all",
				Options: []envelope.SelectOption{
					{Label: "All", Value: "all"},
					{Label: "Raster Only", Value: "0"},
					{Label: "Vector Only", Value: "1"},
				},
			},
			envelope.Field{Type: envelope.FieldSelect, ID: StyleHeader, Label: "Style", DefaultValue: "", Options: choices},
		),
	), nil
}

// List searches icons and downloads the SVG of every vector result. The
// search endpoint rejects an empty query, so that lists nothing.
func (c *Command) List(ctx context.Context, req command.Request) (*envelope.Response, error) {
	if strings.TrimSpace(req.Query) == "" {
		return envelope.List().WithRanking(false), nil
	}

	icons, err := c.client.Search(ctx, searchOptions(req))
	if err != nil {
		return nil, err
	}

	svgs := make([]string, len(icons))
	err = command.Each(ctx, len(icons), maxSVGFetches, func(ctx context.Context, i int) error {
		svg, err := c.client.SVG(ctx, icons[i])
		svgs[i] = svg
		return err
	})
	if err != nil {
		return nil, err
	}

	options := make([]*envelope.Option, 0, len(icons))
	for i, icon := range icons {
		action := envelope.OpenURL(icon.WebURL())
		if svgs[i] != "" {
			action = envelope.Paste(svgs[i])
		}
		options = append(options, &envelope.Option{
			Title:      icon.Title(),
			Subtitle:   envelope.Lines(icon.Type, license(icon)),
			Icon:       preview(icon, svgs[i]),
			Action:     action,
			MoveAction: envelope.AddParam(IDParam, strconv.Itoa(icon.ID)),
		})
	}
	return envelope.List(options...).WithRanking(false), nil
}

func (c *Command) Detail(ctx context.Context, req command.Request) (*envelope.Response, error) {
	icon, err := c.client.Icon(ctx, req.Param(IDParam))
	if err != nil {
		return nil, err
	}
	svg, err := c.client.SVG(ctx, *icon)
	if err != nil {
		return nil, err
	}

	options := []*envelope.Option{
		{Title: "Open in Iconfinder", Action: envelope.OpenURL(icon.WebURL())},
		{Title: "Copy URL", Action: envelope.Copy(icon.WebURL())},
	}
	if svg != "" {
		options = append(options,
			&envelope.Option{Title: "Copy SVG", Action: envelope.Copy(svg)},
			&envelope.Option{Title: "Paste SVG", Action: envelope.Paste(svg)},
		)
	}

	return envelope.List(options...).WithTokens(envelope.Token{
		ParamName: IDParam,
		Label:     icon.Title(),
		Icon:      preview(*icon, svg),
	}), nil
}

func (c *Command) Fail(_ context.Context, _ command.Request, err error) *envelope.Response {
	return command.ErrorToast(err)
}

// searchOptions maps the preference headers to search filters. The premium
// toggle arrives as "true" when on.
func searchOptions(req command.Request) api.SearchOptions {
	premium := "0"
	if req.Header(PremiumHeader) == "true" {
		premium = "all"
	}
	return api.SearchOptions{
		Query:   req.Query,
		Count:   req.Header(CountHeader),
		Vector:  req.Header(TypeHeader),
		Premium: premium,
		Style:   req.Header(StyleHeader),
	}
}

// preview prefers the downloaded SVG and falls back to the raster preview.
func preview(icon api.Icon, svg string) *envelope.Icon {
	if svg != "" {
		return format.SVGIcon(svg)
	}
	if u := api.PreviewURL(icon); u != "" {
		return envelope.URL(u)
	}
	return nil
}

func license(icon api.Icon) string {
	if icon.IsPremium {
		return "Premium"
	}
	return "Free"
}
