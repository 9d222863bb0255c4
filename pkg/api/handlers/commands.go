package handlers

import (
	"net/http"
	"path"

	json "github.com/goccy/go-json"

	"mercator-hq/callisto/pkg/command"
)

// CommandInfo describes one mounted command.
type CommandInfo struct {
	Name           string   `json:"name"`
	Path           string   `json:"path"`
	ConfigHeaders  []string `json:"config_headers"`
	RequiredHeader string   `json:"required_header,omitempty"`
	DetailParam    string   `json:"detail_param,omitempty"`
}

// CommandsHandler lists the enabled commands.
type CommandsHandler struct {
	registry *command.Registry
	prefix   string
	enabled  func(name string) bool
}

// NewCommandsHandler creates an index of the commands in registry mounted
// under prefix. enabled may be nil, in which case every command is listed.
func NewCommandsHandler(registry *command.Registry, prefix string, enabled func(name string) bool) *CommandsHandler {
	return &CommandsHandler{
		registry: registry,
		prefix:   prefix,
		enabled:  enabled,
	}
}

// Commands returns the enabled commands sorted by name.
func (h *CommandsHandler) Commands() []CommandInfo {
	infos := []CommandInfo{}
	for _, cmd := range h.registry.All() {
		spec := cmd.Spec()
		if h.enabled != nil && !h.enabled(spec.Name) {
			continue
		}

		headers := spec.ConfigHeaders
		if headers == nil {
			headers = []string{}
		}
		infos = append(infos, CommandInfo{
			Name:           spec.Name,
			Path:           path.Join("/", h.prefix, spec.Name),
			ConfigHeaders:  headers,
			RequiredHeader: spec.RequiredHeader,
			DetailParam:    spec.DetailParam,
		})
	}
	return infos
}

// ServeHTTP implements http.Handler.
func (h *CommandsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := json.Marshal(map[string]any{"commands": h.Commands()})
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
