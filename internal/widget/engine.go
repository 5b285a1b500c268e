package widget

import (
	"slices"

	"go.uber.org/zap"
)

// EventType names an input the engine reacts to.
type EventType string

const (
	// EventActivate is a click on the controller at Index.
	EventActivate EventType = "activate"
	// EventClose is an explicit close trigger. Overlays close as a whole;
	// other groups close the item at Index.
	EventClose EventType = "close"
	// EventBackdrop is a click on an overlay backdrop.
	EventBackdrop EventType = "backdrop"
	// EventEscape is the global cancellation key.
	EventEscape EventType = "escape"
)

// Event is one discrete input addressed to a group.
type Event struct {
	Type  EventType `json:"type"`
	Group string    `json:"group,omitempty"`
	Index int       `json:"index,omitempty"`
}

// Engine owns bound groups and applies open/close transitions to them.
// It is not safe for concurrent use; a live page feeds it from one goroutine.
type Engine struct {
	log    *zap.Logger
	lock   *ScrollLock
	groups map[string]*Group
	order  []string
}

// NewEngine creates an engine. Overlay groups take references on lock; a nil
// lock gets a private one.
func NewEngine(lock *ScrollLock, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if lock == nil {
		lock = NewScrollLock(nil)
	}
	return &Engine{
		log:    log.Named("widget"),
		lock:   lock,
		groups: make(map[string]*Group),
	}
}

// Lock returns the scroll lock overlays acquire.
func (e *Engine) Lock() *ScrollLock { return e.lock }

// Bind registers g and paints its initial state. In single-open modes only
// the first initially open item stays open. Binding an id twice replaces the
// earlier group.
func (e *Engine) Bind(g *Group) {
	if g == nil || g.ID == "" {
		return
	}
	if _, ok := e.groups[g.ID]; ok {
		e.Unbind(g.ID)
	}
	if g.Mode == "" {
		g.Mode = g.Kind.DefaultMode()
	}

	seenOpen := false
	for _, it := range g.Items {
		open := it.Initial && !it.Inert()
		if open && g.Mode.SingleOpen() {
			if seenOpen {
				open = false
			}
			seenOpen = true
		}
		it.paint(open)
	}

	e.groups[g.ID] = g
	e.order = append(e.order, g.ID)
	e.syncLock(g)
	e.log.Debug("Bound group",
		zap.String("group", g.ID),
		zap.String("mode", string(g.Mode)),
		zap.Int("items", len(g.Items)),
		zap.Ints("open", g.OpenIndexes()))
}

// Unbind forgets a group, returning any scroll lock reference it held.
func (e *Engine) Unbind(id string) {
	g, ok := e.groups[id]
	if !ok {
		return
	}
	if g.holdsLock {
		g.holdsLock = false
		e.lock.Release()
	}
	delete(e.groups, id)
	e.order = slices.DeleteFunc(e.order, func(s string) bool { return s == id })
}

// Group returns a bound group.
func (e *Engine) Group(id string) (*Group, bool) {
	g, ok := e.groups[id]
	return g, ok
}

// Groups returns bound groups in bind order.
func (e *Engine) Groups() []*Group {
	out := make([]*Group, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.groups[id])
	}
	return out
}

// Dispatch routes ev to the matching transition and returns the ids of
// groups whose open state changed.
func (e *Engine) Dispatch(ev Event) []string {
	switch ev.Type {
	case EventActivate:
		if e.Activate(ev.Group, ev.Index) {
			return []string{ev.Group}
		}
	case EventClose:
		if e.Close(ev.Group, ev.Index) {
			return []string{ev.Group}
		}
	case EventBackdrop:
		if e.Backdrop(ev.Group) {
			return []string{ev.Group}
		}
	case EventEscape:
		return e.Escape()
	default:
		e.log.Debug("Ignoring unknown event", zap.String("type", string(ev.Type)))
	}
	return nil
}

// Activate applies a controller activation on item k of the group.
func (e *Engine) Activate(id string, k int) bool {
	g, it := e.item(id, k)
	if it == nil {
		return false
	}
	before := g.OpenIndexes()

	switch {
	case g.Kind.Overlay():
		it.paint(true)
	case g.Mode.SingleOpen():
		wasOpen := it.open
		for j, other := range g.Items {
			if j != k {
				other.paint(false)
			}
		}
		if g.Mode == ModeCollapsible && wasOpen {
			it.paint(false)
		} else {
			it.paint(true)
		}
	default:
		it.paint(!it.open)
	}

	e.syncLock(g)
	return !slices.Equal(before, g.OpenIndexes())
}

// Close closes item k, or the whole group for overlays.
func (e *Engine) Close(id string, k int) bool {
	g, ok := e.lookup(id)
	if !ok {
		return false
	}
	if g.Kind.Overlay() {
		return e.closeAll(g)
	}
	_, it := e.item(id, k)
	if it == nil || !it.open {
		return false
	}
	it.paint(false)
	return true
}

// Backdrop handles a click on an overlay backdrop. Non-overlay groups ignore it.
func (e *Engine) Backdrop(id string) bool {
	g, ok := e.lookup(id)
	if !ok || !g.Kind.Overlay() {
		return false
	}
	return e.closeAll(g)
}

// Escape closes every open overlay and returns the ids it closed.
func (e *Engine) Escape() []string {
	var closed []string
	for _, id := range e.order {
		g := e.groups[id]
		if g.Kind.Overlay() && e.closeAll(g) {
			closed = append(closed, id)
		}
	}
	return closed
}

func (e *Engine) closeAll(g *Group) bool {
	if !g.AnyOpen() {
		return false
	}
	for _, it := range g.Items {
		it.paint(false)
	}
	e.syncLock(g)
	return true
}

// syncLock keeps the overlay's single lock reference in step with whether
// any of its items is open.
func (e *Engine) syncLock(g *Group) {
	if !g.Kind.Overlay() {
		return
	}
	open := g.AnyOpen()
	switch {
	case open && !g.holdsLock:
		g.holdsLock = true
		e.lock.Acquire()
	case !open && g.holdsLock:
		g.holdsLock = false
		e.lock.Release()
	}
}

func (e *Engine) lookup(id string) (*Group, bool) {
	g, ok := e.groups[id]
	if !ok {
		e.log.Debug("Unknown group", zap.String("group", id))
	}
	return g, ok
}

// item resolves a controller index, returning a nil item for inert or out
// of range controllers.
func (e *Engine) item(id string, k int) (*Group, *Item) {
	g, ok := e.lookup(id)
	if !ok {
		return nil, nil
	}
	if k < 0 || k >= len(g.Items) || g.Items[k].Inert() {
		e.log.Debug("Inert controller", zap.String("group", id), zap.Int("index", k))
		return g, nil
	}
	return g, g.Items[k]
}
