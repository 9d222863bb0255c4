/*
Package upstream is the HTTP client used by commands to call third-party
APIs.

Every call is a single attempt: there are no retries, no backoff and no
response caching. A non-2xx status becomes a typed error:

	401, 403  *AuthError
	other     *StatusError (IsNotFound reports 404)

Bodies that fail to decode become *ParseError, and deadline expiry becomes
*TimeoutError. Commands classify errors with IsAuth, IsNotFound and
errors.As.

	client := upstream.New(upstream.Config{Name: "vercel", BaseURL: "https://api.vercel.com"})
	var out projectsResponse
	err := client.GetJSON(ctx, "/v8/projects/", upstream.Bearer(token), &out)

The transport records Prometheus metrics through an Observer and opens an
OpenTelemetry client span per round trip. CountCalls attaches a counter to
a context so callers can see how many upstream requests an invocation made.
*/
package upstream
