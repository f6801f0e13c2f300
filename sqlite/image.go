package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/cornellsun/sunreader"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sunreader.ImageStore = (*ImageStore)(nil)

// ImageStore implements sunreader.ImageStore using SQLite.
type ImageStore struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewImageStore creates a new ImageStore.
func NewImageStore(db *DB) *ImageStore {
	return &ImageStore{db: db, Now: time.Now}
}

// hashContent computes the xxHash of data and returns it as hex.
func hashContent(data []byte) string {
	var b [8]byte
	h := xxhash.Sum64(data)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

// SaveImage stores an image, replacing the data of any image cached under
// the same URL. The stored ID is kept on replace and written back to img.
func (s *ImageStore) SaveImage(ctx context.Context, img *sunreader.Image) error {
	if err := img.Validate(); err != nil {
		return err
	}

	img.ContentHash = hashContent(img.Data)
	img.Size = len(img.Data)
	if img.FetchedAt.IsZero() {
		img.FetchedAt = s.Now()
	}
	img.FetchedAt = img.FetchedAt.UTC().Truncate(time.Second)

	return s.db.QueryRowContext(ctx, `
		INSERT INTO images (id, url, content_type, data, content_hash, size, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			content_type = excluded.content_type,
			data = excluded.data,
			content_hash = excluded.content_hash,
			size = excluded.size,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), img.URL, img.ContentType, img.Data, img.ContentHash,
		img.Size, img.FetchedAt.Format(time.RFC3339)).Scan(&img.ID)
}

// FindImageByURL retrieves an image, including its data, by source URL.
func (s *ImageStore) FindImageByURL(ctx context.Context, url string) (*sunreader.Image, error) {
	var img sunreader.Image
	var fetchedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, content_type, data, content_hash, size, fetched_at
		FROM images
		WHERE url = ?
	`, url).Scan(&img.ID, &img.URL, &img.ContentType, &img.Data, &img.ContentHash, &img.Size, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, sunreader.Errorf(sunreader.ENOTFOUND, "image not found")
	}
	if err != nil {
		return nil, err
	}

	if img.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &img, nil
}

// HasImage reports whether an image is cached for url.
func (s *ImageStore) HasImage(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM images WHERE url = ?)", url).Scan(&exists)
	return exists, err
}

// FindImages retrieves images matching the filter. Image data is not loaded.
func (s *ImageStore) FindImages(ctx context.Context, filter sunreader.ImageFilter) ([]*sunreader.Image, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, content_type, content_hash, size, fetched_at FROM images WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	switch filter.SortBy {
	case sunreader.SortBySize:
		query.WriteString(" ORDER BY size DESC, url ASC")
	default:
		query.WriteString(" ORDER BY fetched_at DESC, url ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []*sunreader.Image{}
	for rows.Next() {
		var img sunreader.Image
		var fetchedAt string

		if err := rows.Scan(&img.ID, &img.URL, &img.ContentType, &img.ContentHash, &img.Size, &fetchedAt); err != nil {
			return nil, err
		}

		if img.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		images = append(images, &img)
	}

	return images, rows.Err()
}

// DeleteImage permanently removes the image cached for url.
func (s *ImageStore) DeleteImage(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM images WHERE url = ?", url)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sunreader.Errorf(sunreader.ENOTFOUND, "image not found")
	}

	return nil
}
