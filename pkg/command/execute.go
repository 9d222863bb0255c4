package command

import (
	"context"
	"fmt"
	"runtime/debug"

	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/upstream"
)

// Outcomes recorded for an invocation.
const (
	OutcomeSuccess     = "success"
	OutcomeConfig      = "config"
	OutcomeAuthFailure = "auth_failure"
	OutcomeNotFound    = "not_found"
	OutcomeFailure     = "failure"
	OutcomePanic       = "panic"
)

// Result is the outcome of Execute.
type Result struct {
	Response *envelope.Response
	Mode     Mode

	// Err is the error the command failed with, already mapped into
	// Response. Nil on success.
	Err error

	// Stack is set when the command panicked.
	Stack []byte
}

// Outcome classifies the result.
func (r Result) Outcome() string {
	switch {
	case r.Stack != nil:
		return OutcomePanic
	case r.Err == nil && r.Mode == NeedsConfig:
		return OutcomeConfig
	case r.Err == nil:
		return OutcomeSuccess
	case upstream.IsAuth(r.Err):
		return OutcomeAuthFailure
	case IsNotFound(r.Err):
		return OutcomeNotFound
	default:
		return OutcomeFailure
	}
}

// Execute classifies req, dispatches it to cmd and maps any failure to an
// envelope. The returned Response is always valid.
func Execute(ctx context.Context, cmd Command, req Request) (result Result) {
	result.Mode = Classify(cmd.Spec(), req)

	defer func() {
		if rec := recover(); rec != nil {
			result.Err = fmt.Errorf("command %s panicked: %v", cmd.Spec().Name, rec)
			result.Stack = debug.Stack()
			result.Response = Generic()
		}
	}()

	var (
		resp *envelope.Response
		err  error
	)
	switch result.Mode {
	case NeedsConfig:
		resp, err = cmd.Configure(ctx, req, "")
	case DetailMode:
		resp, err = cmd.Detail(ctx, req)
	default:
		resp, err = cmd.List(ctx, req)
	}

	if err == nil && resp != nil {
		if verr := resp.Validate(); verr != nil {
			err = fmt.Errorf("command %s returned an invalid envelope: %w", cmd.Spec().Name, verr)
		}
	} else if err == nil {
		err = fmt.Errorf("command %s returned no envelope", cmd.Spec().Name)
	}

	if err != nil {
		result.Err = err
		resp = cmd.Fail(ctx, req, err)
		if resp == nil || resp.Validate() != nil {
			resp = Generic()
		}
	}

	result.Response = resp
	return result
}
