package readability_test

import (
	"net/url"
	"testing"

	"github.com/cornellsun/sunreader"
	"github.com/cornellsun/sunreader/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Slope Day Lineup Announced | The Cornell Daily Sun</title></head>
<body>
<nav><a href="/news">News Nav Link</a><a href="/sports">Sports Nav Link</a></nav>
<article>
<h1>Slope Day Lineup Announced</h1>
<p>The Slope Day Programming Board revealed this year's performers on Tuesday evening to a crowd gathered on Ho Plaza.</p>
<img src="/wp-content/uploads/2024/04/slope.jpg" alt="Crowd">
<p class="wp-caption-text">Students gather on Libe Slope.</p>
<h2>Ticket Sales</h2>
<p>Tickets go on sale next week and are expected to sell out within hours, according to the board's president.</p>
</article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("  ")

	require.Error(t, err)
	assert.Equal(t, sunreader.EINVALID, sunreader.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(articlePage)

	require.NoError(t, err)
	assert.Contains(t, result.Title, "Slope Day Lineup Announced")
}

func TestExtractor_KeepsArticleBody(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(articlePage)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "Programming Board revealed")
	assert.Contains(t, result.ContentHTML, "Ticket Sales")
	assert.Contains(t, result.ContentHTML, "<img")
}

func TestExtractor_RemovesPageChrome(t *testing.T) {
	t.Parallel()

	result, err := readability.NewExtractor().Extract(articlePage)

	require.NoError(t, err)
	assert.NotContains(t, result.ContentHTML, "News Nav Link")
	assert.NotContains(t, result.ContentHTML, "Footer copyright text")
}

func TestExtractor_ResolvesImagesAgainstPageURL(t *testing.T) {
	t.Parallel()

	pageURL, err := url.Parse("https://cornellsun.com/2024/04/02/slope-day/")
	require.NoError(t, err)

	result, err := readability.NewExtractor(readability.WithPageURL(pageURL)).Extract(articlePage)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "https://cornellsun.com/wp-content/uploads/2024/04/slope.jpg")
}
