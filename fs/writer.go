// Package fs writes rendered posts to a directory tree.
package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cornellsun/sunreader"
	"gopkg.in/yaml.v3"
)

// URLToPath converts a post link to a relative file path.
// Example: https://cornellsun.com/2024/03/16/story/ → 2024/03/16/story/index.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sunreader.Errorf(sunreader.EINVALID, "invalid post link %q", rawURL)
	}

	path := u.Path

	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	return strings.TrimSuffix(path, ".html") + ".md", nil
}

// frontmatter is the YAML header written above every post body.
type frontmatter struct {
	ID         int      `yaml:"id"`
	Title      string   `yaml:"title"`
	Author     string   `yaml:"author"`
	Date       string   `yaml:"date,omitempty"`
	Link       string   `yaml:"link"`
	Category   string   `yaml:"category,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
	Image      string   `yaml:"image,omitempty"`
}

// FormatPost formats body with a YAML frontmatter describing post.
func FormatPost(post *sunreader.Post, body string) (string, error) {
	fm := frontmatter{
		ID:         post.ID,
		Title:      post.Title,
		Author:     post.Author.Name,
		Link:       post.Link,
		Category:   post.PrimaryCategory,
		Categories: post.Categories,
		Tags:       post.Tags,
		Image:      post.Media.MediumLarge,
	}
	if !post.Date.IsZero() {
		fm.Date = post.Date.Format(sunreader.PostDateLayout)
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Ensure Writer implements sunreader.PostWriter at compile time.
var _ sunreader.PostWriter = (*Writer)(nil)

// Writer writes posts as markdown files to a directory, one file per post
// at the path of its link.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WritePost writes post to disk. An existing file for the same link is
// replaced.
func (w *Writer) WritePost(ctx context.Context, post *sunreader.Post, body string) error {
	if err := post.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(post.Link)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, filepath.FromSlash(relPath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatPost(post, body)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}
