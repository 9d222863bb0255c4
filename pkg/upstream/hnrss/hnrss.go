// Package hnrss reads the Hacker News front page from the hnrss.org feed.
package hnrss

import (
	"context"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"mercator-hq/callisto/pkg/upstream"
)

const (
	// DefaultBaseURL is the public hnrss.org service.
	DefaultBaseURL = "https://hnrss.org"

	// FrontPagePath is the front page feed.
	FrontPagePath = "/frontpage"
)

var (
	pointsPattern   = regexp.MustCompile(`Points:\s*(\d+)`)
	commentsPattern = regexp.MustCompile(`Comments:\s*(\d+)`)
)

// Item is one front page story.
type Item struct {
	Title   string
	Link    string
	GUID    string
	Creator string

	// Points and Comments are empty when the description omits them.
	Points   string
	Comments string
}

// Client fetches and parses the feed.
type Client struct {
	base *upstream.Client
	path string
}

// New returns a client reading the feed at path (FrontPagePath if empty).
func New(base *upstream.Client, path string) *Client {
	if path == "" {
		path = FrontPagePath
	}
	return &Client{base: base, path: path}
}

// FrontPage returns the current front page items in feed order.
func (c *Client) FrontPage(ctx context.Context) ([]Item, error) {
	body, err := c.base.GetText(ctx, c.path, map[string]string{
		"Accept": "application/rss+xml, application/xml;q=0.9, */*;q=0.8",
	})
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, &upstream.ParseError{Service: c.base.Name(), RawResponse: truncate(body), Cause: err}
	}

	items := make([]Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		items = append(items, Item{
			Title:    strings.TrimSpace(it.Title),
			Link:     it.Link,
			GUID:     it.GUID,
			Creator:  creator(it),
			Points:   firstGroup(pointsPattern, it.Description),
			Comments: firstGroup(commentsPattern, it.Description),
		})
	}
	return items, nil
}

// Find returns the item whose GUID is guid, or false.
func Find(items []Item, guid string) (Item, bool) {
	for _, it := range items {
		if it.GUID == guid {
			return it, true
		}
	}
	return Item{}, false
}

func creator(it *gofeed.Item) string {
	for _, p := range it.Authors {
		if p != nil && p.Name != "" {
			return p.Name
		}
	}
	if it.DublinCoreExt != nil && len(it.DublinCoreExt.Creator) > 0 {
		return it.DublinCoreExt.Creator[0]
	}
	return ""
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

func truncate(s string) string {
	if len(s) > 200 {
		return s[:200]
	}
	return s
}
