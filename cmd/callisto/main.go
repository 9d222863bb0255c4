// Callisto serves slapdash commands: small HTTP endpoints that adapt
// third-party APIs (GitHub, Hacker News, Honeycomb, Iconfinder, npm,
// Unsplash, Vercel) to the slapdash command envelope.
//
// Usage:
//
//	# Start the server with defaults and environment overrides
//	callisto run
//
//	# Start with a configuration file
//	callisto run --config /etc/callisto/config.yaml
//
//	# Invoke a command locally and print its envelope
//	callisto invoke search-npm --keywords chi
//
//	# List recorded invocations
//	callisto journal list --command github-stars --since 24h
package main

func main() {
	Execute()
}
