package article

import (
	"context"
	"strings"
	"time"
)

// Resolve looks up the article with the given slug. It asks src for at most
// one article and returns the first item, or ErrNotFound when there is none.
func Resolve(ctx context.Context, src Source, slug string) (Entry, error) {
	if strings.TrimSpace(slug) == "" {
		return Entry{}, ErrEmptySlug
	}

	start := time.Now()
	entries, err := src.Query(ctx, Query{
		ContentType: ContentType,
		Limit:       1,
		SlugEquals:  slug,
	})
	if err == nil && len(entries) == 0 {
		err = ErrNotFound
	}
	recordResolve(start, err)
	if err != nil {
		return Entry{}, err
	}
	return entries[0], nil
}
