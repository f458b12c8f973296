package richtext

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("loading", "decoding", "fetchpriority").OnElements("img")
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

var markTags = map[string]string{
	"bold":          "strong",
	"italic":        "em",
	"underline":     "u",
	"code":          "code",
	"superscript":   "sup",
	"subscript":     "sub",
	"strikethrough": "s",
}

// Component returns a templ.Component that renders doc as sanitized HTML.
func Component(doc Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderHTML(&buf, doc)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderHTML writes the sanitized HTML representation of doc to buf.
func RenderHTML(buf *bytes.Buffer, doc Document) {
	var raw bytes.Buffer
	r := renderer{buf: &raw, assets: doc.Assets}
	r.children(doc.Node)
	buf.Write(policy.SanitizeBytes(raw.Bytes()))
}

type renderer struct {
	buf        *bytes.Buffer
	assets     map[string]Asset
	imageCount int
}

func (r *renderer) children(n Node) {
	for _, c := range n.Content {
		r.node(c)
	}
}

func (r *renderer) wrap(tag string, n Node) {
	r.buf.WriteString("<" + tag + ">")
	r.children(n)
	r.buf.WriteString("</" + tag + ">")
}

func (r *renderer) node(n Node) {
	switch n.NodeType {
	case NodeText:
		r.text(n)
	case NodeParagraph:
		r.wrap("p", n)
	case NodeHeading1, NodeHeading2, NodeHeading3, NodeHeading4, NodeHeading5, NodeHeading6:
		r.wrap("h"+strings.TrimPrefix(n.NodeType, "heading-"), n)
	case NodeUnorderedList:
		r.wrap("ul", n)
	case NodeOrderedList:
		r.wrap("ol", n)
	case NodeListItem:
		r.wrap("li", n)
	case NodeQuote:
		r.wrap("blockquote", n)
	case NodeHR:
		r.buf.WriteString("<hr/>")
	case NodeTable:
		r.buf.WriteString("<table><tbody>")
		r.children(n)
		r.buf.WriteString("</tbody></table>")
	case NodeTableRow:
		r.wrap("tr", n)
	case NodeTableHeaderCell:
		r.wrap("th", n)
	case NodeTableCell:
		r.wrap("td", n)
	case NodeHyperlink:
		r.link(SafeURL(n.Data.URI), n)
	case NodeAssetHyperlink:
		href := ""
		if a, ok := r.asset(n); ok {
			href = SafeURL(a.URL)
		}
		r.link(href, n)
	case NodeEntryHyperlink:
		// Entry links need a route for the target content type; render the text.
		r.children(n)
	case NodeEmbeddedAssetBlock:
		r.embeddedAsset(n)
	case NodeEmbeddedEntryBlock, NodeEmbeddedEntry:
		// no renderer for linked entries
	default:
		r.children(n)
	}
}

func (r *renderer) text(n Node) {
	s := html.EscapeString(n.Value)
	s = strings.ReplaceAll(s, "\n", "<br/>")
	for _, m := range n.Marks {
		if tag, ok := markTags[m.Type]; ok {
			s = "<" + tag + ">" + s + "</" + tag + ">"
		}
	}
	r.buf.WriteString(s)
}

func (r *renderer) link(href string, n Node) {
	if href == "" {
		r.children(n)
		return
	}
	r.buf.WriteString(`<a href="` + href + `">`)
	r.children(n)
	r.buf.WriteString("</a>")
}

func (r *renderer) asset(n Node) (Asset, bool) {
	if n.Data.Target == nil || r.assets == nil {
		return Asset{}, false
	}
	a, ok := r.assets[n.Data.Target.Sys.ID]
	return a, ok
}

func (r *renderer) embeddedAsset(n Node) {
	a, ok := r.asset(n)
	if !ok {
		return
	}
	src := SafeURL(a.URL)
	if src == "" {
		return
	}
	if a.ContentType != "" && !strings.HasPrefix(a.ContentType, "image/") {
		title := a.Title
		if title == "" {
			title = a.URL
		}
		r.buf.WriteString(`<p><a href="` + src + `">` + html.EscapeString(title) + `</a></p>`)
		return
	}

	width, height := "1024", "768"
	if a.Width > 0 && a.Height > 0 {
		width, height = strconv.Itoa(a.Width), strconv.Itoa(a.Height)
	}
	r.imageCount++
	loading := `loading="lazy"`
	if r.imageCount == 1 {
		loading = `fetchpriority="high"`
	}
	alt := a.Description
	if alt == "" {
		alt = a.Title
	}
	r.buf.WriteString(`<figure><img ` + loading + ` width="` + width + `" height="` + height +
		`" alt="` + html.EscapeString(alt) + `" src="` + src + `" decoding="async"/>`)
	if a.Description != "" {
		r.buf.WriteString("<figcaption>" + html.EscapeString(a.Description) + "</figcaption>")
	}
	r.buf.WriteString("</figure>")
}

// SafeURL validates and escapes a URL for use in an HTML attribute.
// Protocol-relative URLs are upgraded to https; unknown schemes yield "".
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "//") {
		val = "https:" + val
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
