package main

import (
	"fmt"
	"time"

	"github.com/cornellsun/sunreader"
	"github.com/dustin/go-humanize"
)

// Run executes the images command.
func (c *ImagesCmd) Run(deps *Dependencies) error {
	if c.Delete != "" {
		if err := deps.Images.DeleteImage(deps.Ctx, c.Delete); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted image %s\n", c.Delete)
		return nil
	}

	images, err := deps.Images.FindImages(deps.Ctx, sunreader.ImageFilter{
		Limit:  c.Limit,
		SortBy: sunreader.SortByFetchedAt,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sunreader.ErrorMessage(err))
		return err
	}

	if len(images) == 0 {
		fmt.Fprintln(deps.Stdout, "No images cached. Use 'sunreader parse --prefetch' to cache some.")
		return nil
	}

	for _, img := range images {
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %8s  %s\n",
			img.FetchedAt.Local().Format(time.DateTime),
			img.ContentType,
			humanize.Bytes(uint64(img.Size)),
			img.URL,
		)
	}

	return nil
}
