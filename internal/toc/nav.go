package toc

import (
	"net/url"
	"strings"
)

// ScrollCommand tells a client where to scroll.
type ScrollCommand struct {
	Top      float64 `json:"top"`
	Behavior string  `json:"behavior"`
}

// Navigator resolves clicks on TOC links into animated scrolls that land the
// target heading ScrollOffset pixels below the top of the viewport.
type Navigator struct {
	offset float64
	known  map[string]bool
	tops   map[string]float64
}

// NewNavigator binds links to smooth-scroll navigation.
func NewNavigator(links []Link, offset float64) *Navigator {
	known := make(map[string]bool, len(links))
	for _, l := range links {
		known[l.ID] = true
	}
	return &Navigator{offset: offset, known: known, tops: make(map[string]float64)}
}

// SetLayout records where each heading sits in the document.
func (n *Navigator) SetLayout(ps []Position) {
	clear(n.tops)
	for _, p := range ps {
		n.tops[p.ID] = p.Top
	}
}

// Navigate handles a click on href. When ok is false the target could not be
// resolved and the client should fall back to default navigation.
func (n *Navigator) Navigate(href string) (cmd ScrollCommand, ok bool) {
	i := strings.IndexByte(href, '#')
	if i < 0 {
		return ScrollCommand{}, false
	}
	id, err := url.PathUnescape(href[i+1:])
	if err != nil || !n.known[id] {
		return ScrollCommand{}, false
	}
	top, ok := n.tops[id]
	if !ok {
		return ScrollCommand{}, false
	}
	return ScrollCommand{Top: top - n.offset, Behavior: "smooth"}, true
}
