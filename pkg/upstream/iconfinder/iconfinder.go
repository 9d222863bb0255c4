// Package iconfinder searches icons through the Iconfinder v4 API.
package iconfinder

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"mercator-hq/callisto/pkg/upstream"
)

// DefaultBaseURL is the public Iconfinder API.
const DefaultBaseURL = "https://api.iconfinder.com/v4"

var svgPrefixes = []string{"<svg ", "<?xml "}

// Icon is an icon search result or lookup.
type Icon struct {
	ID          int          `json:"icon_id"`
	Type        string       `json:"type"`
	IsPremium   bool         `json:"is_premium"`
	Tags        []string     `json:"tags"`
	VectorSizes []VectorSize `json:"vector_sizes"`
	RasterSizes []RasterSize `json:"raster_sizes"`
}

// Title joins the icon tags.
func (i Icon) Title() string {
	return strings.Join(i.Tags, " ")
}

// WebURL is the icon page on iconfinder.com.
func (i Icon) WebURL() string {
	return "https://www.iconfinder.com/icons/" + strconv.Itoa(i.ID) + "/"
}

// VectorSize is one vector rendition.
type VectorSize struct {
	Size    int      `json:"size"`
	Formats []Format `json:"formats"`
}

// RasterSize is one raster rendition.
type RasterSize struct {
	Size    int      `json:"size"`
	Formats []Format `json:"formats"`
}

// Format is a downloadable file of a rendition.
type Format struct {
	Format      string `json:"format"`
	DownloadURL string `json:"download_url"`
	PreviewURL  string `json:"preview_url"`
}

// Style is an icon style filter.
type Style struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// SearchOptions mirror the preference headers of the command.
type SearchOptions struct {
	Query string
	Count string
	// Vector is "all", "0" (raster only) or "1" (vector only).
	Vector string
	// Premium is "all" or "0".
	Premium string
	Style   string
}

// Client calls the Iconfinder API with a server-side key.
type Client struct {
	base   *upstream.Client
	apiKey string
}

// New returns a client authenticating with apiKey.
func New(base *upstream.Client, apiKey string) *Client {
	return &Client{base: base, apiKey: apiKey}
}

// Styles lists the available icon styles.
func (c *Client) Styles(ctx context.Context) ([]Style, error) {
	var resp struct {
		Styles []Style `json:"styles"`
	}
	if err := c.base.GetJSON(ctx, "/styles", c.headers(), &resp); err != nil {
		return nil, err
	}
	return resp.Styles, nil
}

// Search finds icons.
func (c *Client) Search(ctx context.Context, opts SearchOptions) ([]Icon, error) {
	q := url.Values{}
	q.Set("query", opts.Query)
	q.Set("count", opts.Count)
	q.Set("vector", opts.Vector)
	q.Set("premium", opts.Premium)
	q.Set("style", opts.Style)

	var resp struct {
		Icons []Icon `json:"icons"`
	}
	if err := c.base.GetJSON(ctx, "/icons/search?"+q.Encode(), c.headers(), &resp); err != nil {
		return nil, err
	}
	return resp.Icons, nil
}

// Icon looks an icon up by ID.
func (c *Client) Icon(ctx context.Context, id string) (*Icon, error) {
	var icon Icon
	if err := c.base.GetJSON(ctx, "/icons/"+url.PathEscape(id), c.headers(), &icon); err != nil {
		return nil, err
	}
	return &icon, nil
}

// SVG downloads the largest vector rendition of icon. It returns "" when
// the icon has no vector rendition or the download is not SVG markup.
func (c *Client) SVG(ctx context.Context, icon Icon) (string, error) {
	if icon.Type != "vector" || len(icon.VectorSizes) == 0 {
		return "", nil
	}
	formats := icon.VectorSizes[len(icon.VectorSizes)-1].Formats
	if len(formats) == 0 || formats[0].DownloadURL == "" {
		return "", nil
	}

	text, err := c.base.GetText(ctx, formats[0].DownloadURL, c.headers())
	if err != nil {
		return "", err
	}
	for _, prefix := range svgPrefixes {
		if strings.HasPrefix(text, prefix) {
			return text, nil
		}
	}
	return "", nil
}

// PreviewURL returns the preview of the largest raster rendition.
func PreviewURL(icon Icon) string {
	if len(icon.RasterSizes) == 0 {
		return ""
	}
	formats := icon.RasterSizes[len(icon.RasterSizes)-1].Formats
	if len(formats) == 0 {
		return ""
	}
	return formats[0].PreviewURL
}

func (c *Client) headers() map[string]string {
	return upstream.Bearer(c.apiKey)
}
