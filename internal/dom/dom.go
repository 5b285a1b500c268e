// Package dom provides the small set of element operations the widget and
// TOC packages need on top of golang.org/x/net/html: class lists, attributes,
// inline style declarations and structural queries.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads a full HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	return doc, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*html.Node, error) {
	return Parse(strings.NewReader(s))
}

// Render serializes n (and its subtree) to a string.
func Render(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		// html.Render only fails on writer errors; bytes.Buffer never returns one.
		return ""
	}
	return buf.String()
}

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present, whatever its value.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// SetAttr sets or replaces an attribute.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// ID returns the element id attribute.
func ID(n *html.Node) string {
	id, _ := Attr(n, "id")
	return id
}

// Classes returns the class list of n.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n carries class c.
func HasClass(n *html.Node, c string) bool {
	if !IsElement(n) {
		return false
	}
	v, _ := Attr(n, "class")
	for _, f := range strings.Fields(v) {
		if f == c {
			return true
		}
	}
	return false
}

// SetClass adds or removes class c.
func SetClass(n *html.Node, c string, on bool) {
	classes := Classes(n)
	out := classes[:0]
	found := false
	for _, f := range classes {
		if f == c {
			if !on || found {
				continue
			}
			found = true
		}
		out = append(out, f)
	}
	if on && !found {
		out = append(out, c)
	}
	if len(out) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(out, " "))
}

// Matcher selects element nodes.
type Matcher func(*html.Node) bool

// ByClass matches elements carrying class c.
func ByClass(c string) Matcher {
	return func(n *html.Node) bool { return HasClass(n, c) }
}

// ByAttr matches elements that have the attribute.
func ByAttr(key string) Matcher {
	return func(n *html.Node) bool { return HasAttr(n, key) }
}

// ByAttrValue matches elements whose attribute equals val.
func ByAttrValue(key, val string) Matcher {
	return func(n *html.Node) bool {
		v, ok := Attr(n, key)
		return ok && v == val
	}
}

// ByAtom matches elements by tag.
func ByAtom(a atom.Atom) Matcher {
	return func(n *html.Node) bool { return n.DataAtom == a }
}

// Any matches when one of ms matches.
func Any(ms ...Matcher) Matcher {
	return func(n *html.Node) bool {
		for _, m := range ms {
			if m(n) {
				return true
			}
		}
		return false
	}
}

// FindAll returns every descendant element of root (root excluded) matching m,
// in document order.
func FindAll(root *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if IsElement(n) && m(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Find returns the first descendant element matching m.
func Find(root *html.Node, m Matcher) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if IsElement(n) && m(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindID returns the descendant with the given id.
func FindID(root *html.Node, id string) *html.Node {
	if id == "" {
		return nil
	}
	return Find(root, ByAttrValue("id", id))
}

func walk(root *html.Node, visit func(*html.Node) bool) {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if !visit(c) {
			continue
		}
		walk(c, visit)
	}
}

// Children returns the element children of n.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c) {
			out = append(out, c)
		}
	}
	return out
}

// HasElementChildren reports whether n has at least one element child.
func HasElementChildren(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c) {
			return true
		}
	}
	return false
}

// Body returns the <body> element of a parsed document.
func Body(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	if doc.DataAtom == atom.Body {
		return doc
	}
	return Find(doc, ByAtom(atom.Body))
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}

// SetText replaces all children of n with a single text node.
func SetText(n *html.Node, s string) {
	Clear(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// Clear removes all children of n.
func Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// Element creates a detached element node.
func Element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}
