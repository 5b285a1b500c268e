package toc

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/lightpack/internal/dom"
)

// Link is the rendered projection of a Node.
type Link struct {
	ID    string `json:"id"`
	Href  string `json:"href"`
	Label string `json:"label"`
	Level int    `json:"level"`
}

// Render builds a nested <ul> for the forest. Roots form the top-level list;
// a node with children gets a nested list after its link. An empty forest
// renders nil.
func Render(forest []*Node) *html.Node {
	if len(forest) == 0 {
		return nil
	}
	ul := dom.Element(atom.Ul)
	for _, n := range forest {
		li := dom.Element(atom.Li)
		a := dom.Element(atom.A, html.Attribute{Key: "href", Val: "#" + n.ID})
		a.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
		li.AppendChild(a)
		if sub := Render(n.Children); sub != nil {
			li.AppendChild(sub)
		}
		ul.AppendChild(li)
	}
	return ul
}

// RenderString renders the forest to markup, "" for an empty forest.
func RenderString(forest []*Node) string {
	ul := Render(forest)
	if ul == nil {
		return ""
	}
	return dom.Render(ul)
}

// Flatten lists the links of the forest in document order.
func Flatten(forest []*Node) []Link {
	var links []Link
	Walk(forest, func(n *Node, _ int) {
		links = append(links, Link{ID: n.ID, Href: "#" + n.ID, Label: n.Text, Level: n.Level})
	})
	return links
}
