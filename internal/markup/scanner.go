// Package markup discovers widget groups and headings in parsed HTML and
// paints widget state back onto the elements.
package markup

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/lightpack/internal/dom"
	"github.com/ziadkadry99/lightpack/internal/widget"
)

// Attributes stamped on scanned markup so that browser events can name the
// group and controller they came from.
const (
	AttrGroup    = "data-lp-group"
	AttrIndex    = "data-lp-index"
	AttrOpen     = "data-lp-open"
	AttrClose    = "data-lp-close"
	AttrBackdrop = "data-lp-backdrop"
)

// Markup contract of the widget families.
const (
	classTabsGroup       = "tabs-group"
	classTabs            = "tabs"
	classTab             = "tab"
	classTabActive       = "tab-active"
	classAccordion       = "accordion"
	classAccordionHeader = "accordion-header"
	classAccordionPanel  = "accordion-panel"
	classCollapsible     = "collapsible"
	classCollapseItem    = "collapse-item"
	classCollapseToggle  = "collapse-toggle"
	classCollapseContent = "collapse-content"
	classIndicator       = "collapse-indicator"
	classDrawer          = "drawer"
	classDrawerBackdrop  = "drawer-backdrop"
	classModalBackdrop   = "modal-backdrop"
	classModalClose      = "modal-close"
	classOpen            = "open"

	attrMode     = "data-mode"
	attrCollapse = "data-collapse"
)

// Scanner finds widget groups under a root node. It implements
// widget.ContainerScanner.
type Scanner struct {
	root       *html.Node
	log        *zap.Logger
	seq        map[widget.Kind]int
	containers map[string]*html.Node
	stamped    map[string]bool
}

// NewScanner creates a scanner over root (usually a parsed document).
func NewScanner(root *html.Node, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{
		root:       root,
		log:        log.Named("scanner"),
		seq:        make(map[widget.Kind]int),
		containers: make(map[string]*html.Node),
	}
}

// Container returns the element a group was discovered on.
func (s *Scanner) Container(id string) *html.Node {
	return s.containers[id]
}

// Scan implements widget.ContainerScanner.
func (s *Scanner) Scan(kind widget.Kind) []*widget.Group {
	switch kind {
	case widget.KindTabs:
		return s.scanTabs()
	case widget.KindAccordion:
		return s.scanAccordions()
	case widget.KindCollapsible:
		return s.scanCollapsibles()
	case widget.KindDrawer:
		return s.scanDrawers()
	case widget.KindModal:
		return s.scanModals()
	}
	return nil
}

// ScanAll scans every kind in widget.Kinds order.
func (s *Scanner) ScanAll() []*widget.Group {
	var out []*widget.Group
	for _, k := range widget.Kinds {
		out = append(out, s.Scan(k)...)
	}
	return out
}

// newGroup keeps an id already stamped on container unless an earlier
// container claimed it; otherwise it stamps the next free <kind>-<n>.
func (s *Scanner) newGroup(kind widget.Kind, container *html.Node) *widget.Group {
	id, ok := dom.Attr(container, AttrGroup)
	if _, taken := s.containers[id]; !ok || id == "" || taken {
		if ok && id != "" {
			s.log.Debug("Duplicate group id", zap.String("group", id))
		}
		id = s.freeID(kind)
		dom.SetAttr(container, AttrGroup, id)
	}
	s.containers[id] = container
	return &widget.Group{ID: id, Kind: kind, Mode: s.mode(kind, container)}
}

// freeID returns the next generated id that neither a scanned container
// nor any stamped markup in the document uses.
func (s *Scanner) freeID(kind widget.Kind) string {
	if s.stamped == nil {
		s.stamped = make(map[string]bool)
		for _, n := range dom.FindAll(s.root, dom.ByAttr(AttrGroup)) {
			v, _ := dom.Attr(n, AttrGroup)
			s.stamped[v] = true
		}
	}
	for {
		s.seq[kind]++
		id := fmt.Sprintf("%s-%d", kind, s.seq[kind])
		if _, taken := s.containers[id]; !taken && !s.stamped[id] {
			return id
		}
	}
}

func (s *Scanner) mode(kind widget.Kind, container *html.Node) widget.Mode {
	if v, ok := dom.Attr(container, attrMode); ok {
		m, err := widget.ParseMode(v)
		if err == nil {
			return m
		}
		s.log.Debug("Ignoring mode attribute", zap.String("kind", string(kind)), zap.Error(err))
	}
	if kind == widget.KindCollapsible {
		if v, _ := dom.Attr(container, attrCollapse); v == "accordion" {
			return widget.ModeCollapsible
		}
	}
	return kind.DefaultMode()
}

// owned reports whether n belongs to container rather than to a nested
// container of the same family.
func owned(container, n *html.Node, containerClass string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == container {
			return true
		}
		if dom.HasClass(p, containerClass) {
			return false
		}
	}
	return false
}

func ownedBy(container *html.Node, containerClass string, nodes []*html.Node) []*html.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if owned(container, n, containerClass) {
			out = append(out, n)
		}
	}
	return out
}

func stampIndex(n *html.Node, i int) {
	dom.SetAttr(n, AttrIndex, strconv.Itoa(i))
}

// pair builds items by index; controllers beyond the content count are inert.
func pair(controllers, contents []*html.Node, ctrl, content func(*html.Node) widget.Surface, initial func(*html.Node) bool) []*widget.Item {
	items := make([]*widget.Item, 0, len(controllers))
	for i, c := range controllers {
		stampIndex(c, i)
		it := &widget.Item{Controller: ctrl(c)}
		if i < len(contents) {
			it.Content = content(contents[i])
			it.Initial = initial(contents[i])
		}
		items = append(items, it)
	}
	return items
}

func (s *Scanner) scanTabs() []*widget.Group {
	var groups []*widget.Group
	for _, c := range dom.FindAll(s.root, dom.ByClass(classTabsGroup)) {
		g := s.newGroup(widget.KindTabs, c)
		var tabs []*html.Node
		for _, bar := range ownedBy(c, classTabsGroup, dom.FindAll(c, dom.ByClass(classTabs))) {
			tabs = append(tabs, dom.FindAll(bar, dom.ByClass(classTab))...)
		}
		var panels []*html.Node
		for _, child := range dom.Children(c) {
			if !dom.HasClass(child, classTabs) {
				panels = append(panels, child)
			}
		}
		g.Items = pair(tabs, panels, classSurface(classTabActive), hiddenSurface, visible)
		s.report(g, len(tabs), len(panels))
		groups = append(groups, g)
	}
	return groups
}

func (s *Scanner) scanAccordions() []*widget.Group {
	var groups []*widget.Group
	for _, c := range dom.FindAll(s.root, dom.ByClass(classAccordion)) {
		g := s.newGroup(widget.KindAccordion, c)
		headers := ownedBy(c, classAccordion, dom.FindAll(c, dom.ByClass(classAccordionHeader)))
		panels := ownedBy(c, classAccordion, dom.FindAll(c, dom.ByClass(classAccordionPanel)))
		open := classSurface(classOpen)
		g.Items = pair(headers, panels, open, open, hasOpen)
		s.report(g, len(headers), len(panels))
		groups = append(groups, g)
	}
	return groups
}

func (s *Scanner) scanCollapsibles() []*widget.Group {
	var groups []*widget.Group
	for _, c := range dom.FindAll(s.root, dom.ByClass(classCollapsible)) {
		g := s.newGroup(widget.KindCollapsible, c)
		for i, item := range ownedBy(c, classCollapsible, dom.FindAll(c, dom.ByClass(classCollapseItem))) {
			toggle := dom.Find(item, dom.ByClass(classCollapseToggle))
			content := dom.Find(item, dom.ByClass(classCollapseContent))
			it := &widget.Item{}
			if toggle != nil {
				stampIndex(toggle, i)
				it.Controller = toggleSurface(toggle)
			}
			if toggle != nil && content != nil {
				it.Content = classSurface(classOpen)(content)
				it.Initial = hasOpen(content)
			} else {
				s.log.Debug("Inert collapse item", zap.String("group", g.ID), zap.Int("index", i))
			}
			g.Items = append(g.Items, it)
		}
		groups = append(groups, g)
	}
	return groups
}

func (s *Scanner) scanDrawers() []*widget.Group {
	var groups []*widget.Group
	for _, d := range dom.FindAll(s.root, dom.ByClass(classDrawer)) {
		id := dom.ID(d)
		if id == "" {
			s.log.Debug("Skipping drawer without id")
			continue
		}
		g := s.newGroup(widget.KindDrawer, d)
		openers := dom.FindAll(s.root, dom.ByAttrValue("data-drawer-open", id))
		for _, b := range dom.FindAll(d, dom.ByAttr("data-drawer-close")) {
			dom.SetAttr(b, AttrClose, g.ID)
		}
		if bd := dom.Find(d, dom.ByClass(classDrawerBackdrop)); bd != nil {
			dom.SetAttr(bd, AttrBackdrop, g.ID)
		}
		g.Items = []*widget.Item{{
			Controller: openerSurface(g.ID, openers),
			Content:    classSurface(classOpen)(d),
			Initial:    hasOpen(d),
		}}
		groups = append(groups, g)
	}
	return groups
}

func (s *Scanner) scanModals() []*widget.Group {
	var groups []*widget.Group
	for _, bd := range dom.FindAll(s.root, dom.ByClass(classModalBackdrop)) {
		id, ok := dom.Attr(bd, "data-modal")
		if !ok || id == "" {
			s.log.Debug("Skipping modal backdrop without data-modal")
			continue
		}
		g := s.newGroup(widget.KindModal, bd)
		openers := dom.FindAll(s.root, dom.ByAttrValue("data-modal-open", id))
		closers := dom.FindAll(bd, dom.Any(
			dom.ByAttr("data-modal-close"),
			dom.ByClass(classModalClose),
			dom.ByAttr("data-modal-cancel"),
		))
		for _, b := range closers {
			dom.SetAttr(b, AttrClose, g.ID)
		}
		dom.SetAttr(bd, AttrBackdrop, g.ID)
		display, _ := dom.Style(bd, "display")
		g.Items = []*widget.Item{{
			Controller: openerSurface(g.ID, openers),
			Content:    displaySurface(bd),
			Initial:    display == "flex",
		}}
		groups = append(groups, g)
	}
	return groups
}

func (s *Scanner) report(g *widget.Group, controllers, contents int) {
	if controllers > contents {
		s.log.Debug("Controllers without content are inert",
			zap.String("group", g.ID),
			zap.Int("controllers", controllers),
			zap.Int("contents", contents))
	}
}

func hasOpen(n *html.Node) bool { return dom.HasClass(n, classOpen) }

func visible(n *html.Node) bool { return !dom.HasAttr(n, "hidden") }
