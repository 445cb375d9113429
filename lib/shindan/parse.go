package shindan

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/araea/shindan-maker/lib/htmlutil"
	"golang.org/x/net/html"
)

const (
	selTitle       = "#shindanTitle"
	selDescription = "#shindanDescriptionDisplay"
	selResult      = "#shindanResult"
	selPartsInputs = `input[name^="parts["]`
)

func extractTitle(doc *goquery.Document) (string, error) {
	title, ok := doc.Find(selTitle).Attr("data-shindan_title")
	if !ok {
		return "", fmt.Errorf("%w: missing %s title element", ErrParse, selTitle)
	}
	return title, nil
}

// extractDescription walks the description element's direct children:
// text nodes verbatim, <br> as a line break, and for any other
// element its leading text child.
func extractDescription(doc *goquery.Document) (string, error) {
	sel := doc.Find(selDescription)
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: missing %s element", ErrParse, selDescription)
	}

	var parts []string
	for child := sel.Nodes[0].FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			parts = append(parts, child.Data)
		case html.ElementNode:
			if child.Data == "br" {
				parts = append(parts, "\n")
				continue
			}
			if first := child.FirstChild; first != nil && first.Type == html.TextNode {
				parts = append(parts, first.Data)
			}
		}
	}
	return strings.Join(parts, ""), nil
}

// parseSegments converts the result container into ordered segments.
// The service ships results in two shapes: newer pages carry a
// data-blocks JSON attribute describing the content, older ones only
// have the rendered DOM. The DOM walk is the fallback.
func parseSegments(doc *goquery.Document, base *url.URL) (Segments, error) {
	container := doc.Find(selResult)
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: missing %s container", ErrParse, selResult)
	}

	if blocks, ok := container.Attr("data-blocks"); ok {
		segments := parseBlockSegments(blocks, base)
		if len(segments) > 0 {
			return segments, nil
		}
	}

	segments := Segments{}
	for _, node := range container.Nodes {
		walkSegments(node, base, &segments)
	}
	return segments, nil
}

type resultBlock struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Value   string `json:"value"`
	Source  string `json:"source"`
	Src     string `json:"src"`
	URL     string `json:"url"`
	File    string `json:"file"`
}

func (b resultBlock) imageSource() string {
	for _, src := range []string{b.Source, b.Src, b.URL, b.File} {
		if src != "" {
			return src
		}
	}
	return ""
}

func parseBlockSegments(raw string, base *url.URL) Segments {
	var blocks []resultBlock
	err := json.Unmarshal([]byte(raw), &blocks)
	if err != nil {
		return nil
	}

	var segments Segments
	for _, block := range blocks {
		switch block.Type {
		case "text":
			if block.Content != "" {
				segments = append(segments, TextSegment(block.Content))
			}
		case "user_input":
			if block.Value != "" {
				segments = append(segments, TextSegment(block.Value))
			}
		case "image":
			if src := block.imageSource(); src != "" {
				segments = append(segments, ImageSegment(htmlutil.ResolveURL(base, src)))
			}
		}
	}
	return segments
}

func walkSegments(node *html.Node, base *url.URL, out *Segments) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			// the parser decodes &nbsp; into U+00A0
			text := strings.ReplaceAll(child.Data, "\u00a0", " ")
			if text != "" {
				*out = append(*out, TextSegment(text))
			}
		case html.ElementNode:
			switch child.Data {
			case "br":
				*out = append(*out, TextSegment("\n"))
			case "img":
				src := htmlutil.Attr(child, "data-src")
				if src == "" {
					src = htmlutil.Attr(child, "src")
				}
				if src != "" {
					*out = append(*out, ImageSegment(htmlutil.ResolveURL(base, src)))
				}
			default:
				walkSegments(child, base, out)
			}
		}
	}
}
