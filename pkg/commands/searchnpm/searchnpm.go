// Package searchnpm searches npm packages through npms.io.
package searchnpm

import (
	"context"
	"net/url"
	"strings"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/format"
	"mercator-hq/callisto/pkg/icons"
	"mercator-hq/callisto/pkg/upstream/npms"
)

const (
	Name = "search-npm"

	// PackageParam selects a package by name.
	PackageParam = "package"

	Placeholder = "Type to search NPM packages"

	installGroup = "Install"
)

// Command implements search-npm. It needs no configuration.
type Command struct {
	command.NoConfig
	client *npms.Client
}

// New returns the command backed by client.
func New(client *npms.Client) *Command {
	return &Command{client: client}
}

func (c *Command) Spec() command.Spec {
	return command.Spec{
		Name:        Name,
		DetailParam: PackageParam,
	}
}

// List searches packages and enriches them with scores from one mget
// request. An empty query lists nothing without calling npms.
func (c *Command) List(ctx context.Context, req command.Request) (*envelope.Response, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return c.list(nil, nil), nil
	}

	pkgs, err := c.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(pkgs))
	for _, pkg := range pkgs {
		names = append(names, pkg.Name)
	}
	infos, err := c.client.MGet(ctx, names)
	if err != nil {
		return nil, err
	}
	return c.list(pkgs, infos), nil
}

func (c *Command) list(pkgs []npms.Package, infos map[string]npms.Info) *envelope.Response {
	options := make([]*envelope.Option, 0, len(pkgs))
	for _, pkg := range pkgs {
		options = append(options, &envelope.Option{
			Title:      format.Title(pkg.Name, pkg.Description),
			Subtitle:   envelope.Lines(subtitle(pkg, infos)...),
			Icon:       icons.Package,
			Action:     envelope.OpenURL(pkg.Links.NPM),
			MoveAction: envelope.AddParam(PackageParam, pkg.Name),
		})
	}
	return envelope.List(options...).WithRanking(false).WithPlaceholder(Placeholder)
}

func subtitle(pkg npms.Package, infos map[string]npms.Info) []string {
	var date string
	if !pkg.Date.IsZero() {
		date = format.LongDate(pkg.Date)
	}
	info, ok := infos[pkg.Name]
	if !ok {
		return format.Compact(date)
	}

	var stars string
	if gh := info.Collected.GitHub; gh != nil {
		stars = "★" + format.Number(gh.StarsCount)
	}
	detail := info.Score.Detail
	return format.Compact(
		date,
		stars,
		"Quality "+format.Score(detail.Quality),
		"Popularity "+format.Score(detail.Popularity),
		"Maintenance "+format.Score(detail.Maintenance),
	)
}

// Detail lists the package links and install commands.
func (c *Command) Detail(ctx context.Context, req command.Request) (*envelope.Response, error) {
	info, err := c.client.Package(ctx, req.Param(PackageParam))
	if err != nil {
		return nil, err
	}
	meta := info.Collected.Metadata
	links := meta.Links

	npmInstall := "npm i " + meta.Name
	yarnInstall := "yarn add " + meta.Name

	options := format.Compact(
		&envelope.Option{
			Title:    "Open on NPM",
			Subtitle: envelope.Text(links.NPM),
			Icon:     icons.NPM,
			Action:   envelope.OpenURL(links.NPM),
		},
		link("Open Repository", links.Repository, icons.GitHubRepo),
		link("Open Homepage", links.Homepage, siteIcon(links.Homepage)),
		link("Open Bugs", links.Bugs, siteIcon(links.Bugs)),
		&envelope.Option{
			Group:    installGroup,
			Title:    "Copy NPM install command",
			Subtitle: envelope.Text(npmInstall),
			Action:   envelope.Copy(npmInstall),
		},
		&envelope.Option{
			Group:    installGroup,
			Title:    "Copy Yarn install command",
			Subtitle: envelope.Text(yarnInstall),
			Action:   envelope.Copy(yarnInstall),
		},
	)

	return envelope.List(options...).WithTokens(envelope.Token{
		ParamName: PackageParam,
		Label:     meta.Name,
		Icon:      icons.Package,
	}), nil
}

// Fail answers unknown packages with the not-found message.
func (c *Command) Fail(_ context.Context, _ command.Request, err error) *envelope.Response {
	if command.IsNotFound(err) {
		return command.NotFound()
	}
	return command.Generic()
}

func link(title, u string, icon *envelope.Icon) *envelope.Option {
	if u == "" {
		return nil
	}
	return &envelope.Option{
		Title:    title,
		Subtitle: envelope.Text(u),
		Icon:     icon,
		Action:   envelope.OpenURL(u),
	}
}

// siteIcon is the GitHub logo for github.com links and the site favicon
// otherwise.
func siteIcon(raw string) *envelope.Icon {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	if u.Hostname() == "github.com" {
		return icons.GitHub
	}
	return icons.Favicon(u.Hostname())
}
