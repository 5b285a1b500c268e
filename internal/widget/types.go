// Package widget implements the open-state engine shared by tabs, accordions,
// collapsibles, drawers and modals. It knows nothing about markup: groups are
// built by a scanner and painted through the Surface interface.
package widget

import "fmt"

// Kind identifies a widget family.
type Kind string

const (
	KindTabs        Kind = "tabs"
	KindAccordion   Kind = "accordion"
	KindCollapsible Kind = "collapsible"
	KindDrawer      Kind = "drawer"
	KindModal       Kind = "modal"
)

// Kinds lists every widget family in initialization order.
var Kinds = []Kind{KindTabs, KindAccordion, KindCollapsible, KindDrawer, KindModal}

// Overlay reports whether the kind obscures the page and engages the scroll lock.
func (k Kind) Overlay() bool {
	return k == KindDrawer || k == KindModal
}

// DefaultMode returns the exclusivity policy a kind uses when its markup
// does not say otherwise.
func (k Kind) DefaultMode() Mode {
	switch k {
	case KindTabs:
		return ModeExclusive
	case KindAccordion:
		return ModeCollapsible
	default:
		return ModeMulti
	}
}

// Mode is the exclusivity policy of a group.
type Mode string

const (
	// ModeExclusive keeps exactly one item open once any item was activated.
	ModeExclusive Mode = "exclusive"
	// ModeCollapsible allows at most one open item; re-activating it closes it.
	ModeCollapsible Mode = "collapsible"
	// ModeMulti toggles items independently.
	ModeMulti Mode = "multi"
)

// ParseMode maps a markup attribute value onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeExclusive, ModeCollapsible, ModeMulti:
		return Mode(s), nil
	case "single", "tabs":
		return ModeExclusive, nil
	case "accordion":
		return ModeCollapsible, nil
	}
	return "", fmt.Errorf("unknown toggle mode %q", s)
}

// SingleOpen reports whether at most one item may be open.
func (m Mode) SingleOpen() bool {
	return m == ModeExclusive || m == ModeCollapsible
}

// Surface is the markup side of one half of an item. Paint must be a pure
// function of open: calling it twice with the same value changes nothing.
type Surface interface {
	Paint(open bool)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(open bool)

// Paint implements Surface.
func (f SurfaceFunc) Paint(open bool) { f(open) }

// Item pairs a controller with the content it opens. Either side may be nil:
// a nil Content makes the item inert.
type Item struct {
	Controller Surface
	Content    Surface
	// Initial is the open state read from markup at scan time.
	Initial bool

	open bool
}

// Open reports the current open state.
func (it *Item) Open() bool { return it.open }

// Inert reports whether the item has nothing to toggle.
func (it *Item) Inert() bool { return it.Content == nil }

func (it *Item) paint(open bool) {
	it.open = open
	if it.Content != nil {
		it.Content.Paint(open)
	}
	if it.Controller != nil {
		it.Controller.Paint(open)
	}
}

// Group is a set of mutually coordinated items.
type Group struct {
	ID    string
	Kind  Kind
	Mode  Mode
	Items []*Item

	holdsLock bool
}

// OpenCount returns the number of open items.
func (g *Group) OpenCount() int {
	n := 0
	for _, it := range g.Items {
		if it.open {
			n++
		}
	}
	return n
}

// OpenIndexes returns the indexes of open items in order.
func (g *Group) OpenIndexes() []int {
	var out []int
	for i, it := range g.Items {
		if it.open {
			out = append(out, i)
		}
	}
	return out
}

// AnyOpen reports whether at least one item is open.
func (g *Group) AnyOpen() bool {
	for _, it := range g.Items {
		if it.open {
			return true
		}
	}
	return false
}

// ContainerScanner discovers groups of one kind in some document tree.
type ContainerScanner interface {
	Scan(kind Kind) []*Group
}

// BindAll scans every kind in order and binds the result, returning the
// bound groups.
func (e *Engine) BindAll(s ContainerScanner) []*Group {
	var bound []*Group
	for _, k := range Kinds {
		for _, g := range s.Scan(k) {
			e.Bind(g)
			bound = append(bound, g)
		}
	}
	return bound
}
