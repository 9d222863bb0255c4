// Package config loads, validates and serves callisto's configuration.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("callisto.yaml")
//
//  2. From a YAML file (or defaults, when the path is empty) with
//     environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("callisto.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CALLISTO_SECTION_FIELD:
//
//   - CALLISTO_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - CALLISTO_UPSTREAMS_GITHUB_BASE_URL overrides upstreams.github.base_url
//   - CALLISTO_COMMANDS_DISABLED=honeycomb-boards,vercel-projects disables commands
//   - CALLISTO_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// ICONFINDER_API_KEY and UNSPLASH_ACCESS_KEY are honoured as well; the
// prefixed names win when both are set.
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton
//
//	if err := config.Initialize("callisto.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//	cfg := config.GetConfig()
//
// With watch: true, a Watcher reloads the file on change through
// ReloadConfig and notifies OnReload listeners. A reload that fails
// validation is logged and the previous configuration stays in effect.
//
// # Example Configuration
//
//	server:
//	  listen_address: "0.0.0.0:8080"
//
//	commands:
//	  enabled:
//	    honeycomb-boards: false
//	  iconfinder:
//	    api_key: "..."
//	  honeycomb:
//	    team: "my-team"
//
//	journal:
//	  enabled: true
//	  backend: sqlite
//
//	telemetry:
//	  logging:
//	    level: debug
//	    format: text
package config
