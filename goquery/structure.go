// Package goquery provides HTML parsing implementations backed by
// github.com/PuerkitoBio/goquery: the structure extractor that turns a page
// into an outline, and the link selector used by the crawler.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/modex/modex"
	"golang.org/x/net/html"
)

// Ensure StructureExtractor implements modex.StructureExtractor at compile time.
var _ modex.StructureExtractor = (*StructureExtractor)(nil)

// StructureExtractor extracts an ordered outline of headings and content from
// HTML. The document is flattened into a list of heading-or-block nodes in
// document order; each run of blocks is owned by the nearest preceding
// heading and rendered to markdown via the Converter.
//
// The outline is flat: a container whose subtree holds a heading is walked
// through, while a heading-free container (div) is captured atomically as
// content. Headings are therefore never swallowed inside another entry's
// content, and content blocks are never revisited.
type StructureExtractor struct {
	conv modex.Converter
}

// NewStructureExtractor creates a new StructureExtractor that renders content
// segments with the given converter.
func NewStructureExtractor(conv modex.Converter) *StructureExtractor {
	return &StructureExtractor{conv: conv}
}

// ExtractStructure parses the HTML permissively, removes script and style
// elements, and returns one outline entry per heading. A document without
// headings yields an empty outline. Content preceding the first heading is
// not attributed to any entry.
func (e *StructureExtractor) ExtractStructure(rawHTML string) (modex.Outline, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, modex.Errorf(modex.EINVALID, "failed to parse HTML: %v", err)
	}

	// Scripts and styles must never leak into rendered content.
	doc.Find("script, style").Remove()

	nodes := flatten(documentRoot(doc))

	outline := modex.Outline{}
	for i := 0; i < len(nodes); i++ {
		if !nodes[i].heading {
			// Blocks before the first heading have no owner.
			continue
		}

		var blocks []string
		j := i + 1
		for ; j < len(nodes) && !nodes[j].heading; j++ {
			markup, err := renderNode(nodes[j].node)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, markup)
		}

		content := ""
		if len(blocks) > 0 {
			md, err := e.conv.Convert(strings.Join(blocks, "\n"))
			if err != nil {
				return nil, err
			}
			content = strings.TrimSpace(md)
		}

		outline = append(outline, modex.OutlineEntry{
			Level:   nodes[i].level,
			Title:   strings.TrimSpace(textContent(nodes[i].node)),
			Content: content,
		})

		i = j - 1
	}

	return outline, nil
}

// flatNode is one element of the flattened document: either a heading or a
// content block.
type flatNode struct {
	heading bool
	level   int
	node    *html.Node
}

// flatten walks the tree under root and collects headings and content blocks
// in document order. Paragraphs, lists and tables are blocks. A div is a
// block only when its subtree contains no heading; otherwise it is walked
// through like any other container.
func flatten(root *html.Node) []flatNode {
	var out []flatNode

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}

			if level := headingLevel(c.Data); level > 0 {
				out = append(out, flatNode{heading: true, level: level, node: c})
				continue
			}

			switch c.Data {
			case "p", "ul", "ol", "table":
				out = append(out, flatNode{node: c})
			case "div":
				if containsHeading(c) {
					walk(c)
				} else {
					out = append(out, flatNode{node: c})
				}
			default:
				walk(c)
			}
		}
	}
	walk(root)

	return out
}

// documentRoot returns the body node when present, or the document root
// otherwise. goquery's permissive parser synthesizes a body for fragments.
func documentRoot(doc *goquery.Document) *html.Node {
	if body := doc.Find("body"); len(body.Nodes) > 0 {
		return body.Nodes[0]
	}
	if len(doc.Nodes) > 0 {
		return doc.Nodes[0]
	}
	return &html.Node{}
}

// headingLevel returns the level for h1-h6 tag names, or 0 for other tags.
func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// containsHeading reports whether the subtree under n holds a heading element.
func containsHeading(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && headingLevel(c.Data) > 0 {
			return true
		}
		if containsHeading(c) {
			return true
		}
	}
	return false
}

// textContent collects the concatenated text nodes under n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// renderNode converts an html.Node back to its source markup.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
