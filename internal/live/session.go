// Package live runs widget and scroll-spy state for one open page on the
// server. A browser forwards input events; the session answers with the
// re-rendered fragments that changed.
package live

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/lightpack/internal/dom"
	"github.com/ziadkadry99/lightpack/internal/markup"
	"github.com/ziadkadry99/lightpack/internal/toc"
	"github.com/ziadkadry99/lightpack/internal/widget"
)

// Message types sent by the client.
const (
	MsgActivate = "activate"
	MsgClose    = "close"
	MsgBackdrop = "backdrop"
	MsgEscape   = "escape"
	MsgLayout   = "layout"
	MsgScroll   = "scroll"
	MsgNavigate = "navigate"
)

// Message is one client event.
type Message struct {
	Type    string             `json:"type"`
	Group   string             `json:"group,omitempty"`
	Index   int                `json:"index,omitempty"`
	Y       float64            `json:"y,omitempty"`
	Offsets map[string]float64 `json:"offsets,omitempty"`
	Href    string             `json:"href,omitempty"`
}

// Patch is the server reply to a message. Href is echoed back when a
// navigation could not be resolved, so the client follows the link itself.
type Patch struct {
	Type      string             `json:"type"` // "patch" or "error"
	Session   string             `json:"session,omitempty"`
	Fragments map[string]string  `json:"fragments,omitempty"`
	Locked    bool               `json:"locked"`
	Active    string             `json:"active,omitempty"`
	TOC       string             `json:"toc,omitempty"`
	Scroll    *toc.ScrollCommand `json:"scroll,omitempty"`
	Href      string             `json:"href,omitempty"`
	Message   string             `json:"message,omitempty"`
}

// Session is the state of one open page.
type Session struct {
	ID string

	log     *zap.Logger
	doc     *html.Node
	scanner *markup.Scanner
	engine  *widget.Engine
	toc     *markup.TOC
	spy     *toc.Spy
	nav     *toc.Navigator
	lastY   float64
}

// NewSession parses the page and binds every widget group on it. When opts
// names an existing container the TOC is regenerated and tracked.
func NewSession(r io.Reader, opts toc.Options, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}

	id := uuid.NewString()
	s := &Session{
		ID:      id,
		log:     log.Named("live").With(zap.String("session", id)),
		doc:     doc,
		scanner: markup.NewScanner(doc, log),
	}
	s.engine = widget.NewEngine(widget.NewScrollLock(markup.BodyLock(doc)), log)
	s.engine.BindAll(s.scanner)

	if t := markup.GenerateTOC(doc, opts, log); t != nil {
		s.toc = t
		s.spy = t.Spy()
		s.nav = t.Navigator()
	}
	return s, nil
}

// Engine exposes the widget engine of the page.
func (s *Session) Engine() *widget.Engine { return s.engine }

// Document returns the current page tree.
func (s *Session) Document() *html.Node { return s.doc }

// Handle applies one message and returns the patch to send back. Unknown
// groups and targets yield an empty patch rather than an error.
func (s *Session) Handle(msg Message) Patch {
	p := Patch{Type: "patch"}
	switch msg.Type {
	case MsgActivate, MsgClose, MsgBackdrop, MsgEscape:
		changed := s.engine.Dispatch(widget.Event{
			Type:  widget.EventType(msg.Type),
			Group: msg.Group,
			Index: msg.Index,
		})
		for _, id := range changed {
			if c := s.scanner.Container(id); c != nil {
				if p.Fragments == nil {
					p.Fragments = make(map[string]string)
				}
				p.Fragments[id] = dom.Render(c)
			}
		}
	case MsgLayout:
		if s.toc == nil {
			break
		}
		ps := s.positions(msg.Offsets)
		s.spy.SetLayout(ps)
		s.nav.SetLayout(ps)
		// Recompute eagerly so the first paint does not wait for a scroll.
		s.spy.Update(s.lastY)
		s.toc.Paint(s.spy.Active())
		p.Active = s.spy.Active()
		p.TOC = s.toc.Fragment()
	case MsgScroll:
		s.lastY = msg.Y
		if s.toc == nil {
			break
		}
		if active, changed := s.spy.Update(msg.Y); changed {
			s.toc.Paint(active)
			p.Active = active
			p.TOC = s.toc.Fragment()
		}
	case MsgNavigate:
		if s.nav == nil {
			p.Href = msg.Href
			break
		}
		if cmd, ok := s.nav.Navigate(msg.Href); ok {
			p.Scroll = &cmd
		} else {
			p.Href = msg.Href
		}
	default:
		s.log.Debug("Unknown message type", zap.String("type", msg.Type))
		return Patch{Type: "error", Message: "unknown message type: " + msg.Type}
	}
	p.Locked = s.engine.Lock().Locked()
	return p
}

// positions orders reported offsets by TOC link order; headings the client
// did not measure are left out.
func (s *Session) positions(offsets map[string]float64) []toc.Position {
	ps := make([]toc.Position, 0, len(s.toc.Links))
	for _, l := range s.toc.Links {
		if top, ok := offsets[l.ID]; ok {
			ps = append(ps, toc.Position{ID: l.ID, Top: top})
		}
	}
	return ps
}
