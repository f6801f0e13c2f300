package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cornellsun/sunreader"
	"github.com/cornellsun/sunreader/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkSaveImage measures cache writes of typical thumbnail-sized images.
func BenchmarkSaveImage(b *testing.B) {
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	store := sqlite.NewImageStore(db)
	ctx := context.Background()
	data := make([]byte, 64<<10)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		img := &sunreader.Image{
			URL:         fmt.Sprintf("https://cornellsun.com/wp-content/uploads/%d.jpg", i),
			ContentType: "image/jpeg",
			Data:        data,
		}
		if err := store.SaveImage(ctx, img); err != nil {
			b.Fatal(err)
		}
	}
}
