package importer

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikbrunner/bmdash/internal/model"
)

// ParseHTML parses a Netscape bookmark file into a tree. The file carries no
// ids, so each node gets model.StableID of its parent id, sibling index and
// title. Re-exporting the same tree yields the same ids.
func ParseHTML(r io.Reader) (*model.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	root := model.NewFolder(model.StableID("netscape-root"), "")
	stack := []*model.Node{root}
	var pending *model.Node // folder waiting for its DL
	sawList := false

	add := func(title string, n func(id string) *model.Node) *model.Node {
		parent := stack[len(stack)-1]
		id := model.StableID(parent.ID, strconv.Itoa(len(parent.Children)), title)
		node := n(id)
		parent.Children = append(parent.Children, node)
		return node
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "dt":
				// A folder without its own list ends at the next entry.
				pending = nil

			case "h3":
				title := getTextContent(n)
				pending = add(title, func(id string) *model.Node {
					return model.NewFolder(id, title)
				})
				return

			case "a":
				pending = nil
				href := getAttr(n, "href")
				if href == "" {
					return
				}
				title := getTextContent(n)
				add(title, func(id string) *model.Node {
					return model.NewBookmark(id, title, href)
				})
				return

			case "dl":
				sawList = true
				pushed := false
				if pending != nil {
					stack = append(stack, pending)
					pending = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					stack = stack[:len(stack)-1]
				}
				pending = nil
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	if !sawList {
		return nil, ErrNoRoots
	}
	return root, nil
}

// getTextContent returns the trimmed text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
