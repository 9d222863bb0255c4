package command

import (
	"context"

	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/upstream"
)

// fakeCommand records which branch ran and returns scripted results.
type fakeCommand struct {
	spec Spec

	listResp   *envelope.Response
	listErr    error
	detailResp *envelope.Response
	detailErr  error
	configErr  error
	panicWith  any

	called  string
	formErr string
}

func newFakeCommand() *fakeCommand {
	return &fakeCommand{
		spec: Spec{
			Name:           "fake",
			ConfigHeaders:  []string{"token", "region"},
			RequiredHeader: "token",
			DetailParam:    "item",
		},
		listResp:   envelope.List(&envelope.Option{Title: "one"}),
		detailResp: envelope.List(&envelope.Option{Title: "detail"}),
	}
}

func (f *fakeCommand) Spec() Spec { return f.spec }

func (f *fakeCommand) Configure(ctx context.Context, req Request, formErr string) (*envelope.Response, error) {
	if f.called == "" {
		f.called = "config"
	}
	f.formErr = formErr
	if f.configErr != nil {
		return nil, f.configErr
	}
	return envelope.ConfigForm(formErr, envelope.Row(envelope.Field{Type: envelope.FieldText, ID: "token", Label: "Token"})), nil
}

func (f *fakeCommand) List(ctx context.Context, req Request) (*envelope.Response, error) {
	f.called = "list"
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.listResp, f.listErr
}

func (f *fakeCommand) Detail(ctx context.Context, req Request) (*envelope.Response, error) {
	f.called = "detail"
	return f.detailResp, f.detailErr
}

func (f *fakeCommand) Fail(ctx context.Context, req Request, err error) *envelope.Response {
	if IsNotFound(err) {
		return NotFound()
	}
	if resp, ok := authFailure(ctx, f, req, err); ok {
		return resp
	}
	return ErrorToast(err)
}

func authFailure(ctx context.Context, cmd Command, req Request, err error) (*envelope.Response, bool) {
	if !upstream.IsAuth(err) {
		return nil, false
	}
	return Reconfigure(ctx, cmd, req, "token rejected"), true
}
