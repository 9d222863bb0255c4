/*
Package envelope defines the command-response envelope returned by every
Slapdash command.

A Response carries exactly one of three variants:

	{"config": {"form": {"error": "...", "fields": [...]}}}
	{"view": {"type": "list", "options": [...]}, "tokens": [...]}
	{"view": "plain text message"}
	{"action": {"type": "show-toast", "message": "..."}}

Builders cover the common shapes:

	resp := envelope.List(options...).WithPlaceholder("Type to search...")
	resp := envelope.Message("Oops! Sorry, something went wrong!")
	resp := envelope.Toast("Error: upstream unavailable")

Options are assembled from titles, subtitles, icons and actions:

	opt := &envelope.Option{
		Title:      "Open on Github",
		Subtitle:   envelope.Lines(url),
		Icon:       icons.GitHub,
		Action:     envelope.OpenURL(url),
		MoveAction: envelope.AddParam("repo", id),
	}

Serialization uses github.com/goccy/go-json; custom marshalers keep the
union-typed fields (view, subtitle, icon, field rows) in the wire shape the
launcher expects.
*/
package envelope
