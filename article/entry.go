// Package article resolves a single article by slug from a content source and
// turns it into the payloads the article page renders.
package article

import (
	"context"

	"github.com/eringen/articlepage/richtext"
)

// ContentType is the content model ID of articles in the CMS.
const ContentType = "article"

// Image is the featured image of an article.
type Image struct {
	URL         string
	Description string // used as the caption
	Width       int
	Height      int
}

// Entry is a fully validated article.
type Entry struct {
	ID              string // stable CMS identifier, threads the comments
	Slug            string
	Title           string
	MetaDescription string
	PublishedDate   string
	FeaturedImage   Image
	Body            richtext.Document
}

// Query is the filter sent to a Source.
type Query struct {
	ContentType string
	Limit       int
	SlugEquals  string
}

// Source is a remote content store.
type Source interface {
	Query(ctx context.Context, q Query) ([]Entry, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, q Query) ([]Entry, error)

// Query calls f.
func (f SourceFunc) Query(ctx context.Context, q Query) ([]Entry, error) {
	return f(ctx, q)
}
