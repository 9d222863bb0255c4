// Package honeycomb lists Honeycomb boards.
package honeycomb

import (
	"context"

	"mercator-hq/callisto/pkg/upstream"
)

// DefaultBaseURL is the public Honeycomb API.
const DefaultBaseURL = "https://api.honeycomb.io"

// Board is a saved Honeycomb board.
type Board struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Queries     []Query `json:"queries"`
}

// Query is a query pinned to a board.
type Query struct {
	Caption string `json:"caption"`
}

// Captions returns the non-empty query captions in board order.
func (b Board) Captions() []string {
	captions := make([]string, 0, len(b.Queries))
	for _, q := range b.Queries {
		if q.Caption != "" {
			captions = append(captions, q.Caption)
		}
	}
	return captions
}

// Client calls the boards API.
type Client struct {
	base *upstream.Client
}

// New returns a client sending requests through base.
func New(base *upstream.Client) *Client {
	return &Client{base: base}
}

// Boards lists the boards visible to apiKey.
func (c *Client) Boards(ctx context.Context, apiKey string) ([]Board, error) {
	var boards []Board
	err := c.base.GetJSON(ctx, "/1/boards", map[string]string{"X-Honeycomb-Team": apiKey}, &boards)
	if err != nil {
		return nil, err
	}
	return boards, nil
}
