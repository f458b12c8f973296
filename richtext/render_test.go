package richtext

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func text(v string, marks ...string) Node {
	n := Node{NodeType: NodeText, Value: v}
	for _, m := range marks {
		n.Marks = append(n.Marks, Mark{Type: m})
	}
	return n
}

func block(nodeType string, content ...Node) Node {
	return Node{NodeType: nodeType, Content: content}
}

func doc(content ...Node) Document {
	return Document{Node: block(NodeDocument, content...)}
}

func render(d Document) string {
	var buf bytes.Buffer
	RenderHTML(&buf, d)
	return buf.String()
}

func TestRenderParagraphWithMarks(t *testing.T) {
	tests := []struct {
		mark     string
		expected string
	}{
		{"bold", "<p>a <strong>b</strong></p>"},
		{"italic", "<p>a <em>b</em></p>"},
		{"code", "<p>a <code>b</code></p>"},
		{"superscript", "<p>a <sup>b</sup></p>"},
	}
	for _, tt := range tests {
		got := render(doc(block(NodeParagraph, text("a "), text("b", tt.mark))))
		if got != tt.expected {
			t.Errorf("mark %q: got %q, want %q", tt.mark, got, tt.expected)
		}
	}
}

func TestRenderNestedMarks(t *testing.T) {
	got := render(doc(block(NodeParagraph, text("x", "bold", "italic"))))
	if got != "<p><em><strong>x</strong></em></p>" {
		t.Errorf("got %q", got)
	}
}

func TestRenderHeadings(t *testing.T) {
	tests := []struct {
		nodeType string
		expected string
	}{
		{NodeHeading1, "<h1>Title</h1>"},
		{NodeHeading2, "<h2>Title</h2>"},
		{NodeHeading6, "<h6>Title</h6>"},
	}
	for _, tt := range tests {
		got := render(doc(block(tt.nodeType, text("Title"))))
		if got != tt.expected {
			t.Errorf("%s: got %q, want %q", tt.nodeType, got, tt.expected)
		}
	}
}

func TestRenderLists(t *testing.T) {
	d := doc(
		block(NodeUnorderedList,
			block(NodeListItem, block(NodeParagraph, text("one"))),
			block(NodeListItem, block(NodeParagraph, text("two"))),
		),
		block(NodeOrderedList,
			block(NodeListItem, block(NodeParagraph, text("first"))),
		),
	)
	got := render(d)
	want := "<ul><li><p>one</p></li><li><p>two</p></li></ul><ol><li><p>first</p></li></ol>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderBlockquoteAndRule(t *testing.T) {
	got := render(doc(block(NodeQuote, block(NodeParagraph, text("said"))), block(NodeHR)))
	if !strings.HasPrefix(got, "<blockquote><p>said</p></blockquote>") {
		t.Errorf("blockquote missing: %q", got)
	}
	if !strings.Contains(got, "<hr") {
		t.Errorf("rule missing: %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	d := doc(block(NodeTable,
		block(NodeTableRow, block(NodeTableHeaderCell, block(NodeParagraph, text("H")))),
		block(NodeTableRow, block(NodeTableCell, block(NodeParagraph, text("C")))),
	))
	got := render(d)
	if !strings.Contains(got, "<th><p>H</p></th>") || !strings.Contains(got, "<td><p>C</p></td>") {
		t.Errorf("table cells missing: %q", got)
	}
}

func TestRenderEscapesText(t *testing.T) {
	got := render(doc(block(NodeParagraph, text("<script>alert(1)</script>"))))
	if strings.Contains(got, "<script>") {
		t.Errorf("text was not escaped: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("escaped text missing: %q", got)
	}
}

func TestRenderHyperlink(t *testing.T) {
	link := Node{NodeType: NodeHyperlink, Data: Data{URI: "https://example.com/"}, Content: []Node{text("site")}}
	got := render(doc(block(NodeParagraph, link)))
	if !strings.Contains(got, `href="https://example.com/"`) {
		t.Errorf("href missing: %q", got)
	}
	if !strings.Contains(got, `target="_blank"`) {
		t.Errorf("external link should open in new tab: %q", got)
	}
	if !strings.Contains(got, ">site</a>") {
		t.Errorf("link text missing: %q", got)
	}
}

func TestRenderUnsafeHyperlinkFallsBackToText(t *testing.T) {
	link := Node{NodeType: NodeHyperlink, Data: Data{URI: "javascript:alert(1)"}, Content: []Node{text("click")}}
	got := render(doc(block(NodeParagraph, link)))
	if strings.Contains(got, "<a") || strings.Contains(got, "javascript") {
		t.Errorf("unsafe link rendered: %q", got)
	}
	if got != "<p>click</p>" {
		t.Errorf("got %q, want %q", got, "<p>click</p>")
	}
}

func TestRenderEmbeddedAsset(t *testing.T) {
	embed := Node{NodeType: NodeEmbeddedAssetBlock, Data: Data{Target: &Target{}}}
	embed.Data.Target.Sys.ID = "asset1"
	d := doc(embed)
	d.Assets = map[string]Asset{
		"asset1": {URL: "//images.ctfassets.net/a.jpg", Description: "A caption", ContentType: "image/jpeg", Width: 640, Height: 480},
	}
	got := render(d)
	if !strings.Contains(got, `src="https://images.ctfassets.net/a.jpg"`) {
		t.Errorf("image src missing: %q", got)
	}
	if !strings.Contains(got, `width="640"`) {
		t.Errorf("image width missing: %q", got)
	}
	if !strings.Contains(got, "<figcaption>A caption</figcaption>") {
		t.Errorf("caption missing: %q", got)
	}
}

func TestRenderEmbeddedAssetUnresolved(t *testing.T) {
	embed := Node{NodeType: NodeEmbeddedAssetBlock, Data: Data{Target: &Target{}}}
	embed.Data.Target.Sys.ID = "missing"
	if got := render(doc(embed)); got != "" {
		t.Errorf("got %q, want empty output", got)
	}
}

func TestComponentMatchesRenderHTML(t *testing.T) {
	d := doc(block(NodeParagraph, text("same")))
	var buf bytes.Buffer
	if err := Component(d).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.String() != render(d) {
		t.Errorf("component output %q differs from RenderHTML %q", buf.String(), render(d))
	}
}

func TestParse(t *testing.T) {
	raw := []byte(`{"nodeType":"document","data":{},"content":[{"nodeType":"paragraph","data":{},"content":[{"nodeType":"text","value":"Hi","marks":[],"data":{}}]}]}`)
	d, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := render(d); got != "<p>Hi</p>" {
		t.Errorf("got %q, want %q", got, "<p>Hi</p>")
	}
}

func TestParseRejectsNonDocument(t *testing.T) {
	for _, raw := range []string{`"just a string"`, `{"nodeType":"paragraph"}`, `{}`} {
		if _, err := Parse([]byte(raw)); !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("Parse(%s): expected ErrInvalidDocument, got %v", raw, err)
		}
	}
}

func TestAssetIDs(t *testing.T) {
	embed := Node{NodeType: NodeEmbeddedAssetBlock, Data: Data{Target: &Target{}}}
	embed.Data.Target.Sys.ID = "a1"
	link := Node{NodeType: NodeAssetHyperlink, Data: Data{Target: &Target{}}}
	link.Data.Target.Sys.ID = "a2"
	ids := doc(embed, block(NodeParagraph, link)).AssetIDs()
	if len(ids) != 2 || ids[0] != "a1" || ids[1] != "a2" {
		t.Errorf("AssetIDs = %v, want [a1 a2]", ids)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com", "https://example.com"},
		{"/relative/path", "/relative/path"},
		{"#anchor", "#anchor"},
		{"//cdn.example.com/x.png", "https://cdn.example.com/x.png"},
		{"mailto:a@b.c", "mailto:a@b.c"},
		{"javascript:alert(1)", ""},
		{"no-scheme", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
