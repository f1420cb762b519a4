// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract locates the menu text blocks of a parsed page and returns
// their flattened text in document order.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document abstracts a parsed page so the reconstructor can be tested with
// plain strings. FindAll returns the text of every element matching
// selector, in document order.
type Document interface {
	FindAll(selector string) []string
}

// Fragments returns the text of every element matching selector. It does
// not filter by content; an empty result means no menu was published.
func Fragments(doc Document, selector string) []string {
	if doc == nil {
		return []string{}
	}
	out := doc.FindAll(selector)
	if out == nil {
		return []string{}
	}
	return out
}

// HTMLDocument is a Document backed by goquery.
type HTMLDocument struct {
	doc *goquery.Document
}

// Parse reads an HTML page from r. The body is decoded to UTF-8 using the
// charset from contentType, a <meta> declaration, or content sniffing, so
// pages served as windows-1250 or iso-8859-2 come through intact.
func Parse(r io.Reader, contentType string) (*HTMLDocument, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("decoding charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &HTMLDocument{doc: doc}, nil
}

// ParseBytes parses an in-memory HTML page.
func ParseBytes(body []byte, contentType string) (*HTMLDocument, error) {
	return Parse(bytes.NewReader(body), contentType)
}

// ParseFile parses a saved HTML page from disk.
func ParseFile(path string) (*HTMLDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, "text/html")
}

// FindAll implements Document.
func (d *HTMLDocument) FindAll(selector string) []string {
	sel := d.doc.Find(selector)
	out := make([]string, 0, sel.Length())
	for _, n := range sel.Nodes {
		out = append(out, NodeText(n))
	}
	return out
}

// NodeText flattens n and its descendants to plain text: text nodes are
// concatenated in document order and all markup is dropped. Script and
// style contents are not text.
func NodeText(n *html.Node) string {
	var b strings.Builder
	nodeText(n, &b)
	return b.String()
}

func nodeText(n *html.Node, b *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
		if n.Data == "br" {
			b.WriteByte('\n')
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodeText(c, b)
	}
}
