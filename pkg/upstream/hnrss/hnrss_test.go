package hnrss

import (
	"context"
	"net/http"
	"testing"

	"mercator-hq/callisto/internal/upstreamtest"
	"mercator-hq/callisto/pkg/upstream"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
<title>Hacker News: Front Page</title>
<link>https://news.ycombinator.com/</link>
<item>
<title>Show HN: A tiny router</title>
<description><![CDATA[<p>Article URL: <a href="https://example.com/router">https://example.com/router</a></p>
<p>Comments URL: <a href="https://news.ycombinator.com/item?id=1">https://news.ycombinator.com/item?id=1</a></p>
<p>Points: 123</p>
<p># Comments: 45</p>]]></description>
<link>https://example.com/router</link>
<dc:creator>alice</dc:creator>
<guid isPermaLink="false">https://news.ycombinator.com/item?id=1</guid>
</item>
<item>
<title>Ask HN: Quiet story</title>
<description><![CDATA[<p>No stats yet</p>]]></description>
<link>https://news.ycombinator.com/item?id=2</link>
<dc:creator>bob</dc:creator>
<guid isPermaLink="false">https://news.ycombinator.com/item?id=2</guid>
</item>
</channel>
</rss>`

func TestClient_FrontPage(t *testing.T) {
	server := upstreamtest.NewMockServer()
	defer server.Close()
	server.SetResponse(FrontPagePath, upstreamtest.MockResponse{StatusCode: http.StatusOK, Body: testFeed})

	client := New(upstream.New(upstream.Config{Name: "hnrss", BaseURL: server.URL()}), "")
	items, err := client.FrontPage(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Title != "Show HN: A tiny router" || first.Link != "https://example.com/router" {
		t.Errorf("unexpected item %+v", first)
	}
	if first.Creator != "alice" {
		t.Errorf("expected creator alice, got %q", first.Creator)
	}
	if first.Points != "123" || first.Comments != "45" {
		t.Errorf("expected 123 points and 45 comments, got %q/%q", first.Points, first.Comments)
	}

	second := items[1]
	if second.Points != "" || second.Comments != "" {
		t.Errorf("expected missing stats, got %q/%q", second.Points, second.Comments)
	}

	if _, ok := Find(items, "https://news.ycombinator.com/item?id=2"); !ok {
		t.Error("expected to find second item by guid")
	}
	if _, ok := Find(items, "missing"); ok {
		t.Error("expected unknown guid to be absent")
	}
}

func TestClient_FrontPageMalformed(t *testing.T) {
	server := upstreamtest.NewMockServer()
	defer server.Close()
	server.SetResponse(FrontPagePath, upstreamtest.MockResponse{StatusCode: http.StatusOK, Body: "definitely not a feed"})

	client := New(upstream.New(upstream.Config{Name: "hnrss", BaseURL: server.URL()}), "")
	_, err := client.FrontPage(context.Background())
	if upstream.ErrorType(err) != "parse" {
		t.Errorf("expected parse error, got %v", err)
	}
}
