package render

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BlockKind enumerates the layout blocks the flyer renderer understands.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Heading
	List
	Image
)

// Block is one layout unit of flyer body content. Text and Items carry a
// restricted inline-HTML subset (b, i, u, br) the PDF writer can render.
type Block struct {
	Kind    BlockKind
	Level   int // heading level 1-6
	Text    string
	Items   []string
	Ordered bool

	// Image fields; every other attribute is dropped because the PDF engine
	// only supports these.
	Src    string
	Width  string
	Height string
	Valign string
}

// ParseBlocks turns flyer body content into an ordered block sequence.
//
// Plain text (no markup delimiters) splits into paragraphs on line breaks.
// Markup is parsed tolerantly: the restricted tag set maps to typed blocks,
// anything unknown or malformed degrades to a plain paragraph of its text.
// ParseBlocks never fails; hostile markup yields fewer blocks, not an error.
func ParseBlocks(content string) []Block {
	if !strings.Contains(content, "<") || !strings.Contains(content, ">") {
		return plainBlocks(content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return plainBlocks(content)
	}

	var blocks []Block
	doc.Find("body").Contents().Each(func(_ int, sel *goquery.Selection) {
		blocks = append(blocks, nodeBlocks(sel)...)
	})
	return blocks
}

func plainBlocks(content string) []Block {
	var blocks []Block
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, Block{Kind: Paragraph, Text: html.EscapeString(line)})
	}
	return blocks
}

func nodeBlocks(sel *goquery.Selection) []Block {
	node := sel.Get(0)
	if node.Type == xhtml.TextNode {
		text := strings.TrimSpace(node.Data)
		if text == "" {
			return nil
		}
		return []Block{{Kind: Paragraph, Text: html.EscapeString(text)}}
	}
	if node.Type != xhtml.ElementNode {
		return nil
	}

	switch node.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(node.Data[1] - '0')
		return []Block{{Kind: Heading, Level: level, Text: inlineHTML(sel)}}

	case atom.P:
		text := inlineHTML(sel)
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []Block{{Kind: Paragraph, Text: text}}

	case atom.Ul, atom.Ol:
		var items []string
		sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			items = append(items, inlineHTML(li))
		})
		if len(items) == 0 {
			return nil
		}
		return []Block{{Kind: List, Items: items, Ordered: node.DataAtom == atom.Ol}}

	case atom.Img:
		return []Block{imageBlock(sel)}

	case atom.Div, atom.Section, atom.Article, atom.Body, atom.Html:
		var blocks []Block
		sel.Contents().Each(func(_ int, child *goquery.Selection) {
			blocks = append(blocks, nodeBlocks(child)...)
		})
		return blocks

	case atom.Br, atom.Head, atom.Script, atom.Style:
		return nil

	default:
		// Lossy fallback: unknown block tags keep their text, not their
		// structure, so an unexpected table never fails the render.
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return nil
		}
		return []Block{{Kind: Paragraph, Text: html.EscapeString(text)}}
	}
}

func imageBlock(sel *goquery.Selection) Block {
	b := Block{Kind: Image}
	b.Src, _ = sel.Attr("src")
	b.Width, _ = sel.Attr("width")
	b.Height, _ = sel.Attr("height")
	b.Valign, _ = sel.Attr("valign")
	return b
}

// inlineHTML flattens a node's contents to the inline subset the PDF writer
// supports: b, i, u, br. strong and em map to b and i; any other inline tag
// is unwrapped to its text.
func inlineHTML(sel *goquery.Selection) string {
	var sb strings.Builder
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		writeInline(&sb, child)
	})
	return strings.TrimSpace(sb.String())
}

func writeInline(sb *strings.Builder, sel *goquery.Selection) {
	node := sel.Get(0)
	if node.Type == xhtml.TextNode {
		sb.WriteString(html.EscapeString(node.Data))
		return
	}
	if node.Type != xhtml.ElementNode {
		return
	}

	switch node.DataAtom {
	case atom.B, atom.Strong:
		sb.WriteString("<b>")
		writeChildren(sb, sel)
		sb.WriteString("</b>")
	case atom.I, atom.Em:
		sb.WriteString("<i>")
		writeChildren(sb, sel)
		sb.WriteString("</i>")
	case atom.U:
		sb.WriteString("<u>")
		writeChildren(sb, sel)
		sb.WriteString("</u>")
	case atom.Br:
		sb.WriteString("<br>")
	default:
		writeChildren(sb, sel)
	}
}

func writeChildren(sb *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		writeInline(sb, child)
	})
}
