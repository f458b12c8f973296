// Package richtext renders Contentful rich text documents as HTML templ components.
package richtext

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Node types emitted by the Contentful rich text editor.
const (
	NodeDocument           = "document"
	NodeParagraph          = "paragraph"
	NodeHeading1           = "heading-1"
	NodeHeading2           = "heading-2"
	NodeHeading3           = "heading-3"
	NodeHeading4           = "heading-4"
	NodeHeading5           = "heading-5"
	NodeHeading6           = "heading-6"
	NodeText               = "text"
	NodeHyperlink          = "hyperlink"
	NodeEntryHyperlink     = "entry-hyperlink"
	NodeAssetHyperlink     = "asset-hyperlink"
	NodeUnorderedList      = "unordered-list"
	NodeOrderedList        = "ordered-list"
	NodeListItem           = "list-item"
	NodeQuote              = "blockquote"
	NodeHR                 = "hr"
	NodeTable              = "table"
	NodeTableRow           = "table-row"
	NodeTableHeaderCell    = "table-header-cell"
	NodeTableCell          = "table-cell"
	NodeEmbeddedAssetBlock = "embedded-asset-block"
	NodeEmbeddedEntryBlock = "embedded-entry-block"
	NodeEmbeddedEntry      = "embedded-entry-inline"
)

// ErrInvalidDocument is returned by Validate for input that is not a rich text document.
var ErrInvalidDocument = errors.New("richtext: invalid document")

// Mark is an inline text style such as bold or italic.
type Mark struct {
	Type string `json:"type"`
}

// Target is the link inside hyperlink and embed nodes.
type Target struct {
	Sys struct {
		ID       string `json:"id"`
		Type     string `json:"type"`
		LinkType string `json:"linkType"`
	} `json:"sys"`
}

// Data carries the per-node attributes.
type Data struct {
	URI    string  `json:"uri,omitempty"`
	Target *Target `json:"target,omitempty"`
}

// Node is one element of the document tree.
type Node struct {
	NodeType string `json:"nodeType"`
	Value    string `json:"value,omitempty"`
	Marks    []Mark `json:"marks,omitempty"`
	Data     Data   `json:"data"`
	Content  []Node `json:"content,omitempty"`
}

// Asset is a linked media file that embedded-asset-block nodes point to.
type Asset struct {
	URL         string
	Title       string
	Description string
	ContentType string
	Width       int
	Height      int
}

// Document is the root of a rich text field. Assets holds the linked media
// resolved when the document was decoded; it is not part of the JSON form.
type Document struct {
	Node
	Assets map[string]Asset `json:"-"`
}

// Parse decodes and validates a rich text document.
func Parse(raw json.RawMessage) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc.Node); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := Validate(doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks that doc has a document root.
func Validate(doc Document) error {
	if doc.NodeType != NodeDocument {
		return fmt.Errorf("%w: root node is %q", ErrInvalidDocument, doc.NodeType)
	}
	return nil
}

// AssetIDs returns the IDs of every embedded or linked asset, in document order.
func (d Document) AssetIDs() []string {
	var ids []string
	var walk func(n Node)
	walk = func(n Node) {
		if (n.NodeType == NodeEmbeddedAssetBlock || n.NodeType == NodeAssetHyperlink) && n.Data.Target != nil {
			ids = append(ids, n.Data.Target.Sys.ID)
		}
		for _, c := range n.Content {
			walk(c)
		}
	}
	walk(d.Node)
	return ids
}
