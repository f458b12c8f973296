package article

import (
	"github.com/araddon/dateparse"

	"github.com/eringen/articlepage/richtext"
)

// DisplayDateLayout is how publish dates appear in the hero.
const DisplayDateLayout = "January 2, 2006"

// Location is the address the page is served at.
type Location struct {
	Origin   string // scheme://host[:port]
	Path     string
	RawQuery string
}

// Href is the full page URL.
func (l Location) Href() string {
	if l.RawQuery == "" {
		return l.Origin + l.Path
	}
	return l.Origin + l.Path + "?" + l.RawQuery
}

// Author is the byline shown on every article.
type Author struct {
	Name string
	URL  string
}

// MetaTags feeds the title, description and OpenGraph tags.
type MetaTags struct {
	Title       string
	Description string
	Image       string
	Type        string
}

// StructuredData feeds the JSON-LD block.
type StructuredData struct {
	Title         string
	Description   string
	DatePublished string
	Author        string
	URL           string
	Image         string
}

// Hero is the header section above the body.
type Hero struct {
	Title       string
	Description string
	Date        string // formatted
	AuthorName  string
	AuthorURL   string
	ImageURL    string
	Caption     string
}

// Comments threads the comment widget on the entry.
type Comments struct {
	Title string
	URL   string
	ID    string
}

// Page holds every payload of a loaded article, in render order.
type Page struct {
	Meta           MetaTags
	StructuredData StructuredData
	Hero           Hero
	Body           richtext.Document
	Comments       Comments
}

// BuildPage derives the render payloads from e. It copies fields without
// transforming them, except for the hero date which goes through formatDate
// (FormatDate when nil).
func BuildPage(e Entry, loc Location, author Author, formatDate func(string) string) Page {
	if formatDate == nil {
		formatDate = FormatDate
	}
	return Page{
		Meta: MetaTags{
			Title:       e.Title,
			Description: e.MetaDescription,
			Image:       e.FeaturedImage.URL,
			Type:        "article",
		},
		StructuredData: StructuredData{
			Title:         e.Title,
			Description:   e.MetaDescription,
			DatePublished: e.PublishedDate,
			Author:        author.Name,
			URL:           loc.Href(),
			Image:         e.FeaturedImage.URL,
		},
		Hero: Hero{
			Title:       e.Title,
			Description: e.MetaDescription,
			Date:        formatDate(e.PublishedDate),
			AuthorName:  author.Name,
			AuthorURL:   author.URL,
			ImageURL:    e.FeaturedImage.URL,
			Caption:     e.FeaturedImage.Description,
		},
		Body: e.Body,
		Comments: Comments{
			Title: e.Title,
			URL:   loc.Origin + loc.Path,
			ID:    e.ID,
		},
	}
}

// FormatDate renders a CMS date for display. Input that does not parse is
// returned as is.
func FormatDate(s string) string {
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return s
	}
	return t.Format(DisplayDateLayout)
}
