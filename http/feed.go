package http

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/cornellsun/sunreader"
)

// Ensure FeedService implements sunreader.FeedService.
var _ sunreader.FeedService = (*FeedService)(nil)

// pubDateLayouts are the date formats accepted in <pubDate>.
var pubDateLayouts = []string{time.RFC1123Z, time.RFC1123}

// FeedService reads posts from a WordPress RSS 2.0 feed.
type FeedService struct {
	client *http.Client
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedService{client: client}
}

// FetchFeed retrieves the feed at url and returns its posts in feed order.
// Items without a link or a WordPress post ID are skipped.
func (s *FeedService) FetchFeed(ctx context.Context, url string) ([]*sunreader.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, _, err := get(ctx, s.client, url, DefaultUserAgent)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing feed XML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "rss" {
		return nil, sunreader.Errorf(sunreader.EINVALID, "%s is not an RSS feed", url)
	}
	channel := root.SelectElement("channel")
	if channel == nil {
		return nil, sunreader.Errorf(sunreader.EINVALID, "%s has no channel", url)
	}

	posts := []*sunreader.Post{}
	for _, item := range channel.SelectElements("item") {
		if post, ok := parseItem(item); ok {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// parseItem converts an <item> element into a post.
func parseItem(item *etree.Element) (*sunreader.Post, bool) {
	link := childText(item, "link")
	guid := childText(item, "guid")
	id := postID(item, guid)
	if link == "" || id == 0 {
		return nil, false
	}

	post := &sunreader.Post{
		ID:      id,
		Link:    link,
		Title:   html.UnescapeString(childText(item, "title")),
		Excerpt: childText(item, "description"),
		Content: childText(item, "content:encoded"),
		Author:  sunreader.Author{Name: childText(item, "dc:creator")},
		Type:    sunreader.PostTypeArticle,
	}
	if post.Content == "" {
		post.Content = post.Excerpt
	}
	if post.Author.Name == "" {
		post.Author.Name = "Unknown"
	}
	if date := childText(item, "pubDate"); date != "" {
		for _, layout := range pubDateLayouts {
			if t, err := time.Parse(layout, date); err == nil {
				post.Date = t
				break
			}
		}
	}
	for _, c := range item.SelectElements("category") {
		if name := strings.TrimSpace(c.Text()); name != "" {
			post.Categories = append(post.Categories, html.UnescapeString(name))
		}
	}
	if len(post.Categories) > 0 {
		post.PrimaryCategory = post.Categories[0]
	}
	if enc := item.SelectElement("enclosure"); enc != nil {
		if strings.HasPrefix(enc.SelectAttrValue("type", ""), "image/") {
			post.Media.MediumLarge = enc.SelectAttrValue("url", "")
		}
	}

	return post, true
}

// postID returns the WordPress post ID from the <post-id> extension element,
// falling back to the p query parameter of the guid permalink.
func postID(item *etree.Element, guid string) int {
	if id, err := strconv.Atoi(childText(item, "post-id")); err == nil && id > 0 {
		return id
	}
	u, err := url.Parse(guid)
	if err != nil {
		return 0
	}
	id, err := strconv.Atoi(u.Query().Get("p"))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
