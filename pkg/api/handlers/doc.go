// Package handlers provides the non-command HTTP handlers of the API.
package handlers
