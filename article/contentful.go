package article

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/eringen/articlepage/contentful"
	"github.com/eringen/articlepage/richtext"
)

var tracer = otel.Tracer("github.com/eringen/articlepage/article")

// EntriesClient is the part of *contentful.Client used by ContentfulSource.
type EntriesClient interface {
	Entries(ctx context.Context, p contentful.Params) (*contentful.Collection, error)
}

// ContentfulSource queries articles from the Contentful Delivery API. Every
// returned item is decoded and validated before it leaves the source.
type ContentfulSource struct {
	Client EntriesClient
	Locale string
}

// NewContentfulSource returns a Source backed by c.
func NewContentfulSource(c EntriesClient) *ContentfulSource {
	return &ContentfulSource{Client: c}
}

// Query implements Source.
func (s *ContentfulSource) Query(ctx context.Context, q Query) ([]Entry, error) {
	ctx, span := tracer.Start(ctx, "contentful.entries", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("content_type", q.ContentType),
		attribute.String("slug", q.SlugEquals),
		attribute.Int("limit", q.Limit),
	)

	p := contentful.Params{
		ContentType: q.ContentType,
		Limit:       q.Limit,
		Include:     1,
		Locale:      s.Locale,
	}
	if q.SlugEquals != "" {
		p.Fields = map[string]string{"slug": q.SlugEquals}
	}

	col, err := s.Client.Entries(ctx, p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, &TransportError{Err: err}
	}

	entries := make([]Entry, 0, len(col.Items))
	for _, item := range col.Items {
		e, err := decodeEntry(item, col)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "malformed entry")
			return nil, err
		}
		entries = append(entries, e)
	}
	span.SetAttributes(attribute.Int("results", len(entries)))
	return entries, nil
}

type rawArticleFields struct {
	Slug            string           `json:"slug"`
	Title           string           `json:"title"`
	MetaDescription string           `json:"metaDescription"`
	PublishedDate   string           `json:"publishedDate"`
	FeaturedImage   *contentful.Link `json:"featuredImage"`
	Body            json.RawMessage  `json:"body"`
}

func decodeEntry(item contentful.Entry, col *contentful.Collection) (Entry, error) {
	id := item.Sys.ID
	malformed := func(field string, err error) error {
		return &MalformedEntryError{EntryID: id, Field: field, Err: err}
	}

	var raw rawArticleFields
	if err := json.Unmarshal(item.Fields, &raw); err != nil {
		field := "fields"
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			field = typeErr.Field
		}
		return Entry{}, malformed(field, err)
	}

	required := []struct {
		name  string
		value string
	}{
		{"slug", raw.Slug},
		{"title", raw.Title},
		{"metaDescription", raw.MetaDescription},
		{"publishedDate", raw.PublishedDate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return Entry{}, malformed(r.name, errors.New("missing"))
		}
	}

	if raw.FeaturedImage == nil || raw.FeaturedImage.Sys.ID == "" {
		return Entry{}, malformed("featuredImage", errors.New("missing"))
	}
	asset, ok := col.Asset(raw.FeaturedImage.Sys.ID)
	if !ok {
		return Entry{}, malformed("featuredImage", errors.New("linked asset not included"))
	}
	if asset.Fields.File.URL == "" {
		return Entry{}, malformed("featuredImage.file.url", errors.New("missing"))
	}

	if len(raw.Body) == 0 {
		return Entry{}, malformed("body", errors.New("missing"))
	}
	body, err := richtext.Parse(raw.Body)
	if err != nil {
		return Entry{}, malformed("body", err)
	}
	body.Assets = bodyAssets(body, col)

	img := Image{
		URL:         assetURL(asset.Fields.File.URL),
		Description: asset.Fields.Description,
	}
	if dim := asset.Fields.File.Details.Image; dim != nil {
		img.Width, img.Height = dim.Width, dim.Height
	}

	return Entry{
		ID:              id,
		Slug:            raw.Slug,
		Title:           raw.Title,
		MetaDescription: raw.MetaDescription,
		PublishedDate:   raw.PublishedDate,
		FeaturedImage:   img,
		Body:            body,
	}, nil
}

func bodyAssets(doc richtext.Document, col *contentful.Collection) map[string]richtext.Asset {
	ids := doc.AssetIDs()
	if len(ids) == 0 {
		return nil
	}
	included := col.Assets()
	out := make(map[string]richtext.Asset, len(ids))
	for _, id := range ids {
		a, ok := included[id]
		if !ok {
			continue
		}
		ra := richtext.Asset{
			URL:         assetURL(a.Fields.File.URL),
			Title:       a.Fields.Title,
			Description: a.Fields.Description,
			ContentType: a.Fields.File.ContentType,
		}
		if dim := a.Fields.File.Details.Image; dim != nil {
			ra.Width, ra.Height = dim.Width, dim.Height
		}
		out[id] = ra
	}
	return out
}

// assetURL turns the protocol-relative URLs Contentful serves into https URLs.
func assetURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}
