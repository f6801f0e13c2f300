package htmltomarkdown_test

import (
	"testing"

	"github.com/cornellsun/sunreader"
	"github.com/cornellsun/sunreader/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Renderer implements sunreader.Renderer at compile time.
var _ sunreader.Renderer = (*htmltomarkdown.Renderer)(nil)

func styled(runs ...sunreader.Run) *sunreader.StyledText {
	return &sunreader.StyledText{Runs: runs}
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders heading", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewRenderer().Render([]sunreader.Block{sunreader.NewHeading("Ticket Sales")})

		require.NoError(t, err)
		assert.Equal(t, "## Ticket Sales", md)
	})

	t.Run("renders paragraph formatting", func(t *testing.T) {
		t.Parallel()

		text := styled(
			sunreader.Run{Text: "Plain "},
			sunreader.Run{Text: "bold", Style: sunreader.RunStyle{Bold: true}},
			sunreader.Run{Text: " and "},
			sunreader.Run{Text: "italic", Style: sunreader.RunStyle{Italic: true}},
			sunreader.Run{Text: " with "},
			sunreader.Run{Text: "a link", Style: sunreader.RunStyle{Link: "https://cornellsun.com"}},
		)

		md, err := htmltomarkdown.NewRenderer().Render([]sunreader.Block{sunreader.NewParagraph(text)})

		require.NoError(t, err)
		assert.Contains(t, md, "**bold**")
		assert.Contains(t, md, "*italic*")
		assert.Contains(t, md, "[a link](https://cornellsun.com)")
	})

	t.Run("renders strikethrough", func(t *testing.T) {
		t.Parallel()

		text := styled(sunreader.Run{Text: "retracted", Style: sunreader.RunStyle{Strikethrough: true}})

		md, err := htmltomarkdown.NewRenderer().Render([]sunreader.Block{sunreader.NewParagraph(text)})

		require.NoError(t, err)
		assert.Contains(t, md, "~~retracted~~")
	})

	t.Run("renders image, caption and credit", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewRenderer().Render([]sunreader.Block{
			sunreader.NewImage("https://cornellsun.com/a.jpg"),
			sunreader.NewCaption("Students on Libe Slope."),
			sunreader.NewImageCredit("Sun Staff Photographer"),
		})

		require.NoError(t, err)
		assert.Contains(t, md, "![](https://cornellsun.com/a.jpg)")
		assert.Contains(t, md, "*Students on Libe Slope.*")
		assert.Contains(t, md, "Sun Staff Photographer")
	})

	t.Run("renders pull quote as blockquote", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewRenderer().Render([]sunreader.Block{sunreader.NewBlockQuote("We did it.")})

		require.NoError(t, err)
		assert.Equal(t, "> We did it.", md)
	})

	t.Run("decodes escaped text", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewRenderer().Render([]sunreader.Block{sunreader.NewHeading("Arts & Entertainment")})

		require.NoError(t, err)
		assert.Equal(t, "## Arts & Entertainment", md)
	})

	t.Run("keeps block order", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewRenderer().Render([]sunreader.Block{
			sunreader.NewHeading("First"),
			sunreader.NewBlockQuote("Second"),
		})

		require.NoError(t, err)
		assert.Equal(t, "## First\n\n> Second", md)
	})

	t.Run("returns empty string for no blocks", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewRenderer().Render(nil)

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	text := styled(
		sunreader.Run{Text: "Line one\nLine two", Style: sunreader.RunStyle{Bold: true, Link: "https://cornellsun.com/?a=1&b=2"}},
	)

	out := htmltomarkdown.RenderHTML([]sunreader.Block{sunreader.NewParagraph(text)})

	assert.Equal(t, `<p><a href="https://cornellsun.com/?a=1&amp;b=2"><strong>Line one<br>Line two</strong></a></p>`+"\n", out)
}
