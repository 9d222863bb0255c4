// Package honeycombboards lists the Honeycomb boards of a team.
package honeycombboards

import (
	"context"
	"errors"
	"net/url"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/icons"
	"mercator-hq/callisto/pkg/upstream"
	"mercator-hq/callisto/pkg/upstream/honeycomb"
)

const (
	Name = "honeycomb-boards"

	// APIKeyHeader carries the team API key.
	APIKeyHeader = "api-key"

	RequestFailedMessage = "The request to Honeycomb failed. Please make sure your API key is valid and has permissions to access Honeycomb Boards."
)

const helpText = "You can generate a new API Key on your team's settings page in [Honeycomb](https://ui.honeycomb.io/teams). " +
	"Please make sure to enable access to Honeycomb Boards when creating a new key."

// Command implements honeycomb-boards.
type Command struct {
	command.NoDetail
	client *honeycomb.Client
	team   string
}

// New returns the command. Board links point at team.
func New(client *honeycomb.Client, team string) *Command {
	return &Command{client: client, team: team}
}

func (c *Command) Spec() command.Spec {
	return command.Spec{
		Name:           Name,
		ConfigHeaders:  []string{APIKeyHeader},
		RequiredHeader: APIKeyHeader,
	}
}

func (c *Command) Configure(_ context.Context, _ command.Request, formErr string) (*envelope.Response, error) {
	return envelope.ConfigForm(formErr, envelope.Row(envelope.Field{
		Type:        envelope.FieldText,
		ID:          APIKeyHeader,
		Label:       "Honeycomb API Key",
		Placeholder: "Paste your Team API Key",
		HelpText:    helpText,
	})), nil
}

func (c *Command) List(ctx context.Context, req command.Request) (*envelope.Response, error) {
	boards, err := c.client.Boards(ctx, req.Header(APIKeyHeader))
	if err != nil {
		return nil, err
	}

	options := make([]*envelope.Option, 0, len(boards))
	for _, board := range boards {
		subtitle := envelope.Text(board.Description)
		if board.Description == "" {
			subtitle = envelope.Lines(board.Captions()...)
		}
		options = append(options, &envelope.Option{
			Title:    board.Name,
			Subtitle: subtitle,
			Icon:     icons.Board,
			Action:   envelope.OpenURL(c.BoardURL(board.ID)),
		})
	}
	return envelope.List(options...), nil
}

// BoardURL is the board page in the Honeycomb UI.
func (c *Command) BoardURL(id string) string {
	return "https://ui.honeycomb.io/" + url.PathEscape(c.team) + "/board/" + url.PathEscape(id)
}

// Fail re-asks for a key when Honeycomb rejects it, reports other upstream
// statuses with a permissions hint and everything else with the error text.
func (c *Command) Fail(ctx context.Context, req command.Request, err error) *envelope.Response {
	if upstream.IsAuth(err) {
		return command.Reconfigure(ctx, c, req, RequestFailedMessage)
	}
	var statusErr *upstream.StatusError
	if errors.As(err, &statusErr) {
		return envelope.Toast(RequestFailedMessage)
	}
	return command.ErrorToast(err)
}
