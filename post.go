package sunreader

import (
	"cmp"
	"context"
	"encoding/json"
	"html"
	"time"
)

// PostDateLayout is the layout of post dates in the CMS API.
const PostDateLayout = "2006-01-02T15:04:05"

// PostType distinguishes regular articles from photo galleries.
type PostType string

// Post types.
const (
	PostTypeArticle      PostType = "article"
	PostTypePhotoGallery PostType = "photoGallery"
)

// Author is the byline of a post.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FeaturedMedia holds the featured image of a post in several sizes.
type FeaturedMedia struct {
	MediumLarge string `json:"mediumLarge,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Full        string `json:"full,omitempty"`
}

// GalleryImage is one photo of a photo gallery post.
type GalleryImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Post is an article as served by the CMS. Content holds the raw article
// body HTML that a Parser turns into blocks.
type Post struct {
	ID              int            `json:"id"`
	Date            time.Time      `json:"date"`
	Link            string         `json:"link"`
	Title           string         `json:"title"`
	Content         string         `json:"content"`
	Excerpt         string         `json:"excerpt,omitempty"`
	Author          Author         `json:"author"`
	PrimaryCategory string         `json:"primaryCategory,omitempty"`
	Categories      []string       `json:"categories,omitempty"`
	Tags            []string       `json:"tags,omitempty"`
	Type            PostType       `json:"type"`
	Media           FeaturedMedia  `json:"media"`
	Gallery         []GalleryImage `json:"gallery,omitempty"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.ID == 0 {
		return Errorf(EINVALID, "post ID required")
	}
	if p.Link == "" {
		return Errorf(EINVALID, "post link required")
	}
	switch p.Type {
	case PostTypeArticle, PostTypePhotoGallery:
	default:
		return Errorf(EINVALID, "unknown post type %q", p.Type)
	}
	return nil
}

// PostService fetches single posts from the CMS.
type PostService interface {
	// FetchPost retrieves and decodes the post served at url.
	FetchPost(ctx context.Context, url string) (*Post, error)
}

// FeedService fetches posts from a syndication feed.
type FeedService interface {
	// FetchFeed retrieves the feed at url and returns its posts in feed order.
	FetchFeed(ctx context.Context, url string) ([]*Post, error)
}

// PostWriter persists rendered posts.
type PostWriter interface {
	// WritePost stores body, the rendered article text of post.
	WritePost(ctx context.Context, post *Post, body string) error
}

type rendered struct {
	Rendered string `json:"rendered"`
}

type mediaSize struct {
	URL string `json:"url"`
}

type postPayload struct {
	ID              *int      `json:"id"`
	Date            *string   `json:"date"`
	Link            *string   `json:"link"`
	Title           *rendered `json:"title"`
	Content         *rendered `json:"content"`
	Excerpt         *rendered `json:"excerpt"`
	Author          int       `json:"author"`
	PrimaryCategory string    `json:"primary_category"`
	Categories      []string  `json:"category_strings"`
	Tags            []string  `json:"tag_strings"`
	Type            string    `json:"post_type_enum"`
	Media           struct {
		MediumLarge mediaSize `json:"medium_large"`
		Thumbnail   mediaSize `json:"thumbnail"`
		Full        mediaSize `json:"full"`
	} `json:"featured_media_url_string"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"author_dict"`
	Attachments json.RawMessage `json:"post_attachments_meta"`
}

type attachmentPayload struct {
	URL       string `json:"url"`
	SourceURL string `json:"source_url"`
	Caption   string `json:"caption"`
}

// DecodePost decodes a post from the CMS JSON representation. The post may
// be wrapped in a {"post_info_dict": {...}} envelope or given bare.
//
// The id, date, title, content and link fields are required. Title and
// primary category are HTML-entity decoded; content is kept verbatim.
func DecodePost(data []byte) (*Post, error) {
	var envelope struct {
		Info json.RawMessage `json:"post_info_dict"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, Errorf(EINVALID, "invalid post JSON: %v", err)
	}
	if len(envelope.Info) > 0 {
		data = envelope.Info
	}

	var payload postPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, Errorf(EINVALID, "invalid post JSON: %v", err)
	}

	switch {
	case payload.ID == nil:
		return nil, Errorf(EINVALID, "post id missing")
	case payload.Date == nil:
		return nil, Errorf(EINVALID, "post date missing")
	case payload.Title == nil:
		return nil, Errorf(EINVALID, "post title missing")
	case payload.Content == nil:
		return nil, Errorf(EINVALID, "post content missing")
	case payload.Link == nil:
		return nil, Errorf(EINVALID, "post link missing")
	}

	date, err := time.Parse(PostDateLayout, *payload.Date)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid post date %q", *payload.Date)
	}

	post := &Post{
		ID:              *payload.ID,
		Date:            date,
		Link:            *payload.Link,
		Title:           html.UnescapeString(payload.Title.Rendered),
		Content:         payload.Content.Rendered,
		PrimaryCategory: html.UnescapeString(payload.PrimaryCategory),
		Categories:      payload.Categories,
		Tags:            payload.Tags,
		Type:            PostTypeArticle,
		Author:          Author{ID: payload.Author, Name: "Unknown"},
		Media: FeaturedMedia{
			MediumLarge: payload.Media.MediumLarge.URL,
			Thumbnail:   payload.Media.Thumbnail.URL,
			Full:        payload.Media.Full.URL,
		},
	}
	if payload.Excerpt != nil {
		post.Excerpt = payload.Excerpt.Rendered
	}
	if payload.Type != "" {
		post.Type = PostType(payload.Type)
	}
	if len(payload.Authors) > 0 && payload.Authors[0].Name != "" {
		post.Author.Name = payload.Authors[0].Name
	}

	if post.Type == PostTypePhotoGallery {
		post.Gallery = decodeGallery(payload.Attachments)
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}
	return post, nil
}

// decodeGallery returns the photos of post_attachments_meta in order.
// Decoding stops at the first attachment without an image URL. A value
// that is not a list yields no photos.
func decodeGallery(data json.RawMessage) []GalleryImage {
	var attachments []json.RawMessage
	if err := json.Unmarshal(data, &attachments); err != nil {
		return nil
	}

	var images []GalleryImage
	for _, raw := range attachments {
		var a attachmentPayload
		if err := json.Unmarshal(raw, &a); err != nil {
			break
		}
		u := cmp.Or(a.URL, a.SourceURL)
		if u == "" {
			break
		}
		images = append(images, GalleryImage{URL: u, Caption: html.UnescapeString(a.Caption)})
	}
	return images
}
