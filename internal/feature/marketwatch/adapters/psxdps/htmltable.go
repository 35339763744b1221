package psxdps

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// tableCell is one <td> of a data-portal table, with the attributes the
// portal uses: data-order carries the sortable raw value, div.tag nodes
// carry index memberships, and <strong> carries the symbol.
type tableCell struct {
	Text      string
	DataOrder string
	Tags      []string
	Strong    string
}

// parseTableRows extracts the body rows of the first <table class="tbl">
// in the document. Returns nil when no such table exists.
func parseTableRows(r io.Reader) ([][]tableCell, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	table := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "table" && hasClass(n, "tbl")
	})
	if table == nil {
		return nil, nil
	}

	body := findNode(table, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "tbody"
	})
	if body == nil {
		body = table
	}

	var rows [][]tableCell
	walk(body, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.Data != "tr" {
			return true
		}
		var cells []tableCell
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "td" {
				cells = append(cells, parseCell(c))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
		return false
	})
	return rows, nil
}

func parseCell(td *html.Node) tableCell {
	cell := tableCell{
		Text:      strings.TrimSpace(nodeText(td)),
		DataOrder: attr(td, "data-order"),
	}
	walk(td, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch {
		case n.Data == "strong" && cell.Strong == "":
			cell.Strong = strings.TrimSpace(nodeText(n))
		case n.Data == "div" && hasClass(n, "tag"):
			if tag := strings.TrimSpace(nodeText(n)); tag != "" {
				cell.Tags = append(cell.Tags, tag)
			}
			return false
		}
		return true
	})
	return cell
}

// walk visits n's subtree depth-first; visit returning false prunes the
// node's children.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
