package markup

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/lightpack/internal/dom"
	"github.com/ziadkadry99/lightpack/internal/toc"
)

// AttrTOC marks the container a TOC was rendered into.
const AttrTOC = "data-lp-toc"

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// headingElement adapts an <hN> element to toc.Heading.
type headingElement struct {
	n     *html.Node
	level int
}

func (h headingElement) Level() int      { return h.level }
func (h headingElement) ID() string      { return dom.ID(h.n) }
func (h headingElement) SetID(id string) { dom.SetAttr(h.n, "id", id) }
func (h headingElement) Text() string    { return strings.TrimSpace(dom.Text(h.n)) }

// Headings collects the headings under <body> whose depth is in levels, in
// document order.
func Headings(doc *html.Node, levels []int) []toc.Heading {
	body := dom.Body(doc)
	if body == nil {
		return nil
	}
	opts := toc.Options{Levels: levels}
	var hs []toc.Heading
	for _, n := range dom.FindAll(body, func(n *html.Node) bool {
		l, ok := headingLevels[n.DataAtom]
		return ok && opts.Includes(l)
	}) {
		hs = append(hs, headingElement{n: n, level: headingLevels[n.DataAtom]})
	}
	return hs
}

// TOC is a table of contents rendered into a document.
type TOC struct {
	Container *html.Node
	Forest    []*toc.Node
	Links     []toc.Link
	Options   toc.Options

	anchors map[string][]*html.Node
}

// GenerateTOC renders the TOC of doc into the container named by
// opts.Selector, replacing whatever it held. It returns nil when the
// container does not exist. With no matching headings the container is
// emptied and the returned TOC has no links.
func GenerateTOC(doc *html.Node, opts toc.Options, log *zap.Logger) *TOC {
	if log == nil {
		log = zap.NewNop()
	}
	opts = opts.WithDefaults()
	container := dom.FindID(doc, strings.TrimPrefix(opts.Selector, "#"))
	if container == nil {
		log.Debug("TOC container not found", zap.String("selector", opts.Selector))
		return nil
	}

	dom.Clear(container)
	dom.SetAttr(container, AttrTOC, "")
	t := &TOC{Container: container, Options: opts, anchors: make(map[string][]*html.Node)}

	hs := Headings(doc, opts.Levels)
	if len(hs) == 0 {
		return t
	}
	toc.AssignIDs(hs)
	t.Forest = toc.BuildTree(hs)
	t.Links = toc.Flatten(t.Forest)
	if ul := toc.Render(t.Forest); ul != nil {
		container.AppendChild(ul)
	}
	for _, a := range dom.FindAll(container, dom.ByAtom(atom.A)) {
		href, _ := dom.Attr(a, "href")
		id := strings.TrimPrefix(href, "#")
		t.anchors[id] = append(t.anchors[id], a)
	}
	log.Debug("Generated TOC", zap.String("selector", opts.Selector), zap.Int("headings", len(hs)))
	return t
}

// Paint marks every link to activeID with the active class and clears it
// from the others. An empty id clears all links.
func (t *TOC) Paint(activeID string) {
	for id, links := range t.anchors {
		for _, a := range links {
			dom.SetClass(a, t.Options.ActiveClass, id == activeID)
		}
	}
}

// Fragment renders the container.
func (t *TOC) Fragment() string {
	return dom.Render(t.Container)
}

// Navigator returns smooth-scroll navigation for the TOC links.
func (t *TOC) Navigator() *toc.Navigator {
	return toc.NewNavigator(t.Links, t.Options.ScrollOffset)
}

// Spy returns a scroll-spy for the TOC headings.
func (t *TOC) Spy() *toc.Spy {
	return toc.NewSpy(t.Options.ScrollOffset)
}
