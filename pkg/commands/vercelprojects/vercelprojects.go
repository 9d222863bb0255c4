// Package vercelprojects lists Vercel projects and their deployed domains.
package vercelprojects

import (
	"context"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/format"
	"mercator-hq/callisto/pkg/icons"
	"mercator-hq/callisto/pkg/upstream"
	"mercator-hq/callisto/pkg/upstream/vercel"
)

const (
	Name = "vercel-projects"

	// TokenHeader carries the user's personal access token.
	TokenHeader = "token"

	// ProjectParam selects a project by ID.
	ProjectParam = "project"

	InvalidTokenMessage = "It looks like this access token isn't valid or has expired. Try creating a new one."
)

// Command implements vercel-projects.
type Command struct {
	client     *vercel.Client
	frameworks *vercel.Frameworks
}

// New returns the command. A nil frameworks table uses the embedded one.
func New(client *vercel.Client, frameworks *vercel.Frameworks) *Command {
	if frameworks == nil {
		frameworks = vercel.DefaultFrameworks()
	}
	return &Command{client: client, frameworks: frameworks}
}

func (c *Command) Spec() command.Spec {
	return command.Spec{
		Name:           Name,
		ConfigHeaders:  []string{TokenHeader},
		RequiredHeader: TokenHeader,
		DetailParam:    ProjectParam,
	}
}

func (c *Command) Configure(_ context.Context, _ command.Request, formErr string) (*envelope.Response, error) {
	return envelope.ConfigForm(formErr, envelope.Row(envelope.Field{
		Type:     envelope.FieldText,
		ID:       TokenHeader,
		Label:    "Vercel Access Token",
		HelpText: "Grab your personal access token on [Vercel](https://vercel.com/account/tokens)",
	})), nil
}

func (c *Command) List(ctx context.Context, req command.Request) (*envelope.Response, error) {
	projects, err := c.client.Projects(ctx, req.Header(TokenHeader))
	if err != nil {
		return nil, err
	}

	options := make([]*envelope.Option, 0, len(projects))
	for _, project := range projects {
		framework := c.frameworks.Find(project.Framework)
		options = append(options, &envelope.Option{
			Title:      project.Name,
			Subtitle:   envelope.Lines(format.Compact(framework.Name, updated(project))...),
			Icon:       logo(framework),
			Action:     envelope.OpenURL(project.DashboardURL()),
			MoveAction: envelope.AddParam(ProjectParam, project.ID),
		})
	}
	return envelope.List(options...), nil
}

// Detail fetches the project and its domains concurrently.
func (c *Command) Detail(ctx context.Context, req command.Request) (*envelope.Response, error) {
	token, id := req.Header(TokenHeader), req.Param(ProjectParam)

	var (
		project *vercel.Project
		domains []vercel.Domain
	)
	err := command.Join(ctx,
		func(ctx context.Context) (err error) {
			project, err = c.client.Project(ctx, token, id)
			return err
		},
		func(ctx context.Context) (err error) {
			domains, err = c.client.Domains(ctx, token, id)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	options := make([]*envelope.Option, 0, 1+2*len(domains))
	options = append(options, &envelope.Option{
		Title:  "Open in Vercel",
		Icon:   icons.Vercel,
		Action: envelope.OpenURL(project.DashboardURL()),
	})
	for _, domain := range domains {
		options = append(options, &envelope.Option{
			Title:    "Open App",
			Subtitle: envelope.Lines(domain.Name),
			Action:   envelope.OpenURL(domain.AppURL()),
		})
	}
	for _, domain := range domains {
		options = append(options, &envelope.Option{
			Title:    "Copy App URL",
			Subtitle: envelope.Lines(domain.Name),
			Action:   envelope.Copy(domain.AppURL()),
		})
	}

	return envelope.List(options...).WithTokens(envelope.Token{
		ParamName: ProjectParam,
		Label:     project.Name,
		Icon:      logo(c.frameworks.Find(project.Framework)),
	}), nil
}

// Fail re-asks for a rejected token and toasts everything else.
func (c *Command) Fail(ctx context.Context, req command.Request, err error) *envelope.Response {
	if upstream.IsAuth(err) {
		return command.Reconfigure(ctx, c, req, InvalidTokenMessage)
	}
	return command.ErrorToast(err)
}

func updated(p vercel.Project) string {
	if p.UpdatedAt == 0 {
		return ""
	}
	return format.DateTime(format.Millis(p.UpdatedAt))
}

func logo(fw vercel.Framework) *envelope.Icon {
	if fw.Logo == "" {
		return nil
	}
	return envelope.URL(fw.Logo)
}
