// Package githubstars lists the repositories a GitHub user starred most
// recently.
package githubstars

import (
	"context"
	"strconv"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/format"
	"mercator-hq/callisto/pkg/icons"
	"mercator-hq/callisto/pkg/upstream"
	"mercator-hq/callisto/pkg/upstream/github"
)

const (
	Name = "github-stars"

	// TokenHeader carries the user's personal access token.
	TokenHeader = "access-token"

	// RepoParam selects a repository by its numeric ID.
	RepoParam = "repo"

	InvalidTokenMessage = "It looks like this access token isn't valid or has expired. Try creating a new one."
)

const helpText = `
To create a new access token:

- Go to [Developers Settings](https://github.com/settings/tokens/new).
- Press **Generate token**.
- Copy the token and paste it in the field above.
`

// Command implements github-stars.
type Command struct {
	client *github.Client
}

// New returns the command backed by client.
func New(client *github.Client) *Command {
	return &Command{client: client}
}

func (c *Command) Spec() command.Spec {
	return command.Spec{
		Name:           Name,
		ConfigHeaders:  []string{TokenHeader},
		RequiredHeader: TokenHeader,
		DetailParam:    RepoParam,
	}
}

// Configure asks for a token, prefilled with the rejected one if any.
func (c *Command) Configure(_ context.Context, req command.Request, formErr string) (*envelope.Response, error) {
	field := envelope.Field{
		Type:        envelope.FieldText,
		ID:          TokenHeader,
		Label:       "Github Access Token",
		Placeholder: "Paste your access token here",
		HelpText:    helpText,
	}
	if token := req.Header(TokenHeader); token != "" {
		field.DefaultValue = token
	}
	return envelope.ConfigForm(formErr, envelope.Row(field)), nil
}

func (c *Command) List(ctx context.Context, req command.Request) (*envelope.Response, error) {
	repos, err := c.client.Starred(ctx, req.Header(TokenHeader))
	if err != nil {
		return nil, err
	}

	options := make([]*envelope.Option, 0, len(repos))
	for _, repo := range repos {
		options = append(options, &envelope.Option{
			Title: format.Title(repo.Name, repo.Description),
			Subtitle: envelope.Lines(
				format.ShortDate(repo.StarredAt),
				"☆"+format.Number(repo.Stars),
				"⑂"+format.Number(repo.Forks),
			),
			Icon:       icons.GitHubRepo,
			Action:     envelope.OpenURL(repo.URL).Labeled("Open", "Open on Github", icons.GitHub),
			MoveAction: envelope.AddParam(RepoParam, strconv.FormatInt(repo.ID, 10)),
		})
	}
	return envelope.List(options...).WithPlaceholder("Type to search your starred repos..."), nil
}

func (c *Command) Detail(ctx context.Context, req command.Request) (*envelope.Response, error) {
	repo, err := c.client.Repository(ctx, req.Header(TokenHeader), req.Param(RepoParam))
	if err != nil {
		return nil, err
	}

	var openHomepage, copyHomepage *envelope.Option
	if repo.Homepage != "" {
		openHomepage = &envelope.Option{
			Title:    "Open Homepage",
			Subtitle: envelope.Lines(repo.Homepage),
			Action:   envelope.OpenURL(repo.Homepage),
		}
		copyHomepage = &envelope.Option{
			Title:    "Copy Homepage URL",
			Subtitle: envelope.Lines(repo.Homepage),
			Action:   envelope.Copy(repo.Homepage),
		}
	}

	options := format.Compact(
		&envelope.Option{
			Title:    "Open on Github",
			Icon:     icons.GitHub,
			Subtitle: envelope.Lines(repo.URL),
			Action:   envelope.OpenURL(repo.URL),
		},
		openHomepage,
		&envelope.Option{
			Title:    "Copy Github URL",
			Subtitle: envelope.Lines(repo.URL),
			Action:   envelope.Copy(repo.URL),
		},
		copyHomepage,
	)

	return envelope.List(options...).WithTokens(envelope.Token{
		ParamName: RepoParam,
		Label:     repo.FullName,
		Icon:      icons.GitHubRepo,
	}), nil
}

// Fail re-asks for a token when GitHub rejects it.
func (c *Command) Fail(ctx context.Context, req command.Request, err error) *envelope.Response {
	if upstream.IsAuth(err) {
		return command.Reconfigure(ctx, c, req, InvalidTokenMessage)
	}
	return command.Generic()
}
