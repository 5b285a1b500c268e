// Package toc builds tables of contents from flat heading sequences and
// tracks which heading is current while a page scrolls.
package toc

import "fmt"

// IDPrefix is the prefix of generated heading ids.
const IDPrefix = "toc-heading-"

// Heading is a heading element as the tree builder sees it.
type Heading interface {
	Level() int
	ID() string
	SetID(id string)
	Text() string
}

// Entry is a Heading held in memory, used for headings that do not come
// from a live document (Markdown sources, tests).
type Entry struct {
	Depth  int
	Anchor string
	Title  string
}

func (e *Entry) Level() int { return e.Depth }
func (e *Entry) ID() string { return e.Anchor }
func (e *Entry) SetID(id string) { e.Anchor = id }
func (e *Entry) Text() string { return e.Title }

// Node is one heading in the tree.
type Node struct {
	ID       string  `json:"id"`
	Level    int     `json:"level"`
	Text     string  `json:"text"`
	Children []*Node `json:"children,omitempty"`
}

// AssignIDs gives every heading without an id the id toc-heading-<n>, n being
// its 1-based position in hs. Existing ids are never touched, so repeated
// calls are stable.
func AssignIDs(hs []Heading) {
	for i, h := range hs {
		if h.ID() == "" {
			h.SetID(fmt.Sprintf("%s%d", IDPrefix, i+1))
		}
	}
}

// BuildTree nests hs by level in a single pass. A heading closes every open
// ancestor at the same or a deeper level; what is left on the stack is its
// parent. Headings with no parent become roots, so the result is a forest.
func BuildTree(hs []Heading) []*Node {
	var (
		roots []*Node
		stack []*Node
	)
	for _, h := range hs {
		n := &Node{ID: h.ID(), Level: h.Level(), Text: h.Text()}
		for len(stack) > 0 && stack[len(stack)-1].Level >= n.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		} else {
			roots = append(roots, n)
		}
		stack = append(stack, n)
	}
	return roots
}

// Walk visits every node of the forest depth-first in document order.
func Walk(forest []*Node, visit func(n *Node, depth int)) {
	var rec func([]*Node, int)
	rec = func(ns []*Node, depth int) {
		for _, n := range ns {
			visit(n, depth)
			rec(n.Children, depth+1)
		}
	}
	rec(forest, 0)
}
