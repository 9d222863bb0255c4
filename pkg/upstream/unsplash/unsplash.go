// Package unsplash searches photos through the Unsplash API.
package unsplash

import (
	"context"
	"net/url"
	"strconv"

	"mercator-hq/callisto/pkg/upstream"
)

// DefaultBaseURL is the public Unsplash API.
const DefaultBaseURL = "https://api.unsplash.com"

// PerPage is the number of photos returned by a search.
const PerPage = 30

// Photo is an Unsplash photo.
type Photo struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	URLs           URLs   `json:"urls"`
	Links          Links  `json:"links"`
	User           User   `json:"user"`
}

// Label is the best available human description of the photo.
func (p Photo) Label() string {
	switch {
	case p.Description != "":
		return p.Description
	case p.AltDescription != "":
		return p.AltDescription
	case p.User.Name != "":
		return "Photo by " + p.User.Name
	default:
		return p.ID
	}
}

// URLs are the image renditions of a photo.
type URLs struct {
	Raw     string `json:"raw"`
	Full    string `json:"full"`
	Regular string `json:"regular"`
	Small   string `json:"small"`
	Thumb   string `json:"thumb"`
}

// Links are the photo's pages.
type Links struct {
	HTML     string `json:"html"`
	Download string `json:"download"`
}

// User is the photographer.
type User struct {
	Name  string    `json:"name"`
	Links UserLinks `json:"links"`
}

// UserLinks are the photographer's pages.
type UserLinks struct {
	HTML string `json:"html"`
}

// Client calls the Unsplash API with a server-side access key.
type Client struct {
	base      *upstream.Client
	accessKey string
}

// New returns a client authenticating with accessKey.
func New(base *upstream.Client, accessKey string) *Client {
	return &Client{base: base, accessKey: accessKey}
}

// Search returns square-ish photos matching query.
func (c *Client) Search(ctx context.Context, query string) ([]Photo, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("orientation", "squarish")
	q.Set("per_page", strconv.Itoa(PerPage))

	var resp struct {
		Results []Photo `json:"results"`
	}
	if err := c.base.GetJSON(ctx, "/search/photos?"+q.Encode(), c.headers(), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Photo looks a photo up by ID.
func (c *Client) Photo(ctx context.Context, id string) (*Photo, error) {
	var photo Photo
	if err := c.base.GetJSON(ctx, "/photos/"+url.PathEscape(id), c.headers(), &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"Authorization":  "Client-ID " + c.accessKey,
		"Accept-Version": "v1",
	}
}
