// Package parseuseragent describes a pasted User-Agent string.
package parseuseragent

import (
	"context"
	"strings"

	"mercator-hq/callisto/pkg/command"
	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/useragent"
)

const (
	Name = "parse-user-agent"

	Placeholder    = "Paste a User-Agent string"
	EmptyMessage   = "Paste a User-Agent string in the input field above."
	InvalidMessage = "Sorry, this doesn't look like a valid User-Agent string."
)

// Command implements parse-user-agent. It calls no upstream.
type Command struct {
	command.NoConfig
	command.NoDetail
}

// New returns the command.
func New() *Command {
	return &Command{}
}

func (c *Command) Spec() command.Spec {
	return command.Spec{Name: Name}
}

func (c *Command) List(_ context.Context, req command.Request) (*envelope.Response, error) {
	return envelope.Message(describe(req.Query)).WithPlaceholder(Placeholder), nil
}

func (c *Command) Fail(context.Context, command.Request, error) *envelope.Response {
	return command.Generic()
}

func describe(s string) string {
	if strings.TrimSpace(s) == "" {
		return EmptyMessage
	}
	info := useragent.Parse(s)
	if info.IsEmpty() {
		return InvalidMessage
	}
	return info.Describe()
}
