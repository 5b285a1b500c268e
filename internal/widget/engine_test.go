package widget

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"
)

// recorder is a Surface that remembers the last painted value and how many
// times it was painted.
type recorder struct {
	open   bool
	paints int
}

func (r *recorder) Paint(open bool) {
	r.open = open
	r.paints++
}

type testItem struct {
	ctrl, content *recorder
}

func newGroup(id string, kind Kind, mode Mode, n int, initial ...int) (*Group, []testItem) {
	g := &Group{ID: id, Kind: kind, Mode: mode}
	var recs []testItem
	for i := 0; i < n; i++ {
		ti := testItem{ctrl: &recorder{}, content: &recorder{}}
		g.Items = append(g.Items, &Item{
			Controller: ti.ctrl,
			Content:    ti.content,
			Initial:    slices.Contains(initial, i),
		})
		recs = append(recs, ti)
	}
	return g, recs
}

func assertSynced(t *testing.T, g *Group, recs []testItem) {
	t.Helper()
	for i, it := range g.Items {
		if recs[i].ctrl.open != it.Open() || recs[i].content.open != it.Open() {
			t.Fatalf("item %d out of sync: state=%v controller=%v content=%v",
				i, it.Open(), recs[i].ctrl.open, recs[i].content.open)
		}
	}
}

func TestExclusiveKeepsExactlyOneOpen(t *testing.T) {
	e := NewEngine(nil, nil)
	g, recs := newGroup("tabs-1", KindTabs, ModeExclusive, 5, 0)
	e.Bind(g)

	rng := rand.New(rand.NewSource(7))
	for step := 0; step < 200; step++ {
		k := rng.Intn(5)
		e.Activate("tabs-1", k)
		if got := g.OpenIndexes(); !slices.Equal(got, []int{k}) {
			t.Fatalf("step %d: activate %d -> open %v", step, k, got)
		}
		assertSynced(t, g, recs)
	}
}

func TestExclusiveReactivationDoesNotCollapse(t *testing.T) {
	e := NewEngine(nil, nil)
	g, _ := newGroup("tabs-1", KindTabs, ModeExclusive, 3)
	e.Bind(g)

	if !e.Activate("tabs-1", 1) {
		t.Fatal("first activation should change state")
	}
	if e.Activate("tabs-1", 1) {
		t.Error("re-activating the open tab should not change state")
	}
	if got := g.OpenIndexes(); !slices.Equal(got, []int{1}) {
		t.Errorf("open = %v, want [1]", got)
	}
}

func TestCollapsibleReclick(t *testing.T) {
	e := NewEngine(nil, nil)
	g, recs := newGroup("accordion-1", KindAccordion, ModeCollapsible, 2)
	e.Bind(g)

	e.Activate("accordion-1", 0)
	if got := g.OpenIndexes(); !slices.Equal(got, []int{0}) {
		t.Fatalf("after first activation open = %v", got)
	}
	e.Activate("accordion-1", 0)
	if g.AnyOpen() {
		t.Fatalf("re-activation should close everything, open = %v", g.OpenIndexes())
	}
	e.Activate("accordion-1", 0)
	e.Activate("accordion-1", 1)
	if got := g.OpenIndexes(); !slices.Equal(got, []int{1}) {
		t.Errorf("switching items open = %v, want [1]", got)
	}
	assertSynced(t, g, recs)
}

func TestMultiIndependence(t *testing.T) {
	e := NewEngine(nil, nil)
	g, recs := newGroup("collapsible-1", KindCollapsible, ModeMulti, 4, 2)
	e.Bind(g)

	rng := rand.New(rand.NewSource(11))
	for step := 0; step < 100; step++ {
		k := rng.Intn(4)
		before := make([]bool, 4)
		for i, it := range g.Items {
			before[i] = it.Open()
		}
		e.Activate("collapsible-1", k)
		for j, it := range g.Items {
			if j == k {
				if it.Open() == before[j] {
					t.Fatalf("step %d: item %d did not toggle", step, k)
				}
				continue
			}
			if it.Open() != before[j] {
				t.Fatalf("step %d: activating %d changed item %d", step, k, j)
			}
		}
		assertSynced(t, g, recs)
	}
}

func TestBindNormalizesSingleOpen(t *testing.T) {
	e := NewEngine(nil, nil)
	g, recs := newGroup("accordion-1", KindAccordion, "", 3, 1, 2)
	e.Bind(g)

	if g.Mode != ModeCollapsible {
		t.Errorf("mode = %q, want kind default %q", g.Mode, ModeCollapsible)
	}
	if got := g.OpenIndexes(); !slices.Equal(got, []int{1}) {
		t.Errorf("open after bind = %v, want [1]", got)
	}
	assertSynced(t, g, recs)
}

func TestInertControllers(t *testing.T) {
	e := NewEngine(nil, nil)
	g, _ := newGroup("tabs-1", KindTabs, ModeExclusive, 2, 0)
	g.Items = append(g.Items, &Item{Controller: &recorder{}})
	e.Bind(g)

	for _, k := range []int{2, 3, -1} {
		if e.Activate("tabs-1", k) {
			t.Errorf("activate %d should be a no-op", k)
		}
	}
	if got := g.OpenIndexes(); !slices.Equal(got, []int{0}) {
		t.Errorf("open = %v, want [0]", got)
	}
	if e.Activate("missing", 0) {
		t.Error("unknown group should be ignored")
	}
}

func TestIndicatorRepaintIsPure(t *testing.T) {
	e := NewEngine(nil, nil)
	g, recs := newGroup("collapsible-1", KindCollapsible, ModeCollapsible, 2)
	e.Bind(g)

	for i := 0; i < 5; i++ {
		e.Activate("collapsible-1", 0)
		e.Activate("collapsible-1", 1)
	}
	// Every repaint writes the state, so a closed item is closed no matter
	// how many times it was painted.
	if recs[0].ctrl.open || !recs[1].ctrl.open {
		t.Errorf("controllers = %v,%v want false,true", recs[0].ctrl.open, recs[1].ctrl.open)
	}
}

func TestCloseEvent(t *testing.T) {
	e := NewEngine(nil, nil)
	g, _ := newGroup("collapsible-1", KindCollapsible, ModeMulti, 2, 0, 1)
	e.Bind(g)

	changed := e.Dispatch(Event{Type: EventClose, Group: "collapsible-1", Index: 1})
	if !slices.Equal(changed, []string{"collapsible-1"}) {
		t.Errorf("changed = %v", changed)
	}
	if got := g.OpenIndexes(); !slices.Equal(got, []int{0}) {
		t.Errorf("open = %v, want [0]", got)
	}
	if e.Close("collapsible-1", 1) {
		t.Error("closing a closed item should report no change")
	}
}

func TestOverlayLockReferenceCounting(t *testing.T) {
	var transitions []bool
	lock := NewScrollLock(func(locked bool) { transitions = append(transitions, locked) })
	e := NewEngine(lock, nil)

	drawer, _ := newGroup("drawer-1", KindDrawer, ModeMulti, 1)
	modal, _ := newGroup("modal-1", KindModal, ModeMulti, 1)
	e.Bind(drawer)
	e.Bind(modal)

	e.Activate("drawer-1", 0)
	e.Activate("drawer-1", 0) // opener never toggles an overlay closed
	e.Activate("modal-1", 0)
	if lock.Holders() != 2 {
		t.Fatalf("holders = %d, want 2", lock.Holders())
	}

	e.Backdrop("modal-1")
	if !lock.Locked() {
		t.Fatal("closing one overlay must not unlock while the drawer is open")
	}
	e.Backdrop("modal-1")
	e.Close("drawer-1", 0)
	if lock.Locked() {
		t.Fatal("lock should be released once every overlay is closed")
	}
	if want := []bool{true, false}; !slices.Equal(transitions, want) {
		t.Errorf("transitions = %v, want %v", transitions, want)
	}
}

func TestEscapeClosesOpenOverlaysOnly(t *testing.T) {
	lock := NewScrollLock(nil)
	e := NewEngine(lock, nil)

	tabs, _ := newGroup("tabs-1", KindTabs, ModeExclusive, 2, 0)
	d1, _ := newGroup("drawer-1", KindDrawer, ModeMulti, 1, 0)
	d2, _ := newGroup("drawer-2", KindDrawer, ModeMulti, 1)
	m1, _ := newGroup("modal-1", KindModal, ModeMulti, 1, 0)
	for _, g := range []*Group{tabs, d1, d2, m1} {
		e.Bind(g)
	}
	if lock.Holders() != 2 {
		t.Fatalf("initially open overlays should hold the lock, holders = %d", lock.Holders())
	}

	closed := e.Dispatch(Event{Type: EventEscape})
	if want := []string{"drawer-1", "modal-1"}; !slices.Equal(closed, want) {
		t.Errorf("escape closed %v, want %v", closed, want)
	}
	if lock.Locked() {
		t.Error("escape should release the lock")
	}
	if !tabs.AnyOpen() {
		t.Error("escape must not touch non-overlay groups")
	}
	if e.Dispatch(Event{Type: EventEscape}) != nil {
		t.Error("second escape should change nothing")
	}
}

func TestUnbindReleasesLock(t *testing.T) {
	lock := NewScrollLock(nil)
	e := NewEngine(lock, nil)
	g, _ := newGroup("modal-1", KindModal, ModeMulti, 1, 0)
	e.Bind(g)
	e.Unbind("modal-1")
	if lock.Locked() {
		t.Error("unbinding an open overlay should release its reference")
	}
	if _, ok := e.Group("modal-1"); ok {
		t.Error("group should be gone")
	}
	e.Unbind("modal-1")
	if lock.Holders() != 0 {
		t.Errorf("holders = %d after double unbind", lock.Holders())
	}
}

func TestBackdropIgnoredOnNonOverlay(t *testing.T) {
	e := NewEngine(nil, nil)
	g, _ := newGroup("accordion-1", KindAccordion, ModeCollapsible, 1, 0)
	e.Bind(g)
	if e.Backdrop("accordion-1") {
		t.Error("backdrop should not close an accordion")
	}
}

func TestGroupsBindOrder(t *testing.T) {
	e := NewEngine(nil, nil)
	for i := 3; i > 0; i-- {
		g, _ := newGroup(fmt.Sprintf("tabs-%d", i), KindTabs, ModeExclusive, 1)
		e.Bind(g)
	}
	var ids []string
	for _, g := range e.Groups() {
		ids = append(ids, g.ID)
	}
	if want := []string{"tabs-3", "tabs-2", "tabs-1"}; !slices.Equal(ids, want) {
		t.Errorf("Groups() = %v, want %v", ids, want)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"exclusive", ModeExclusive, false},
		{"collapsible", ModeCollapsible, false},
		{"multi", ModeMulti, false},
		{"accordion", ModeCollapsible, false},
		{"single", ModeExclusive, false},
		{"bogus", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// openWatcher tracks how many items of a group its surfaces show open and
// the highest count seen after any single paint.
type openWatcher struct {
	open []bool
	max  int
}

func (w *openWatcher) surface(i int) Surface {
	return SurfaceFunc(func(open bool) {
		w.open[i] = open
		n := 0
		for _, o := range w.open {
			if o {
				n++
			}
		}
		w.max = max(w.max, n)
	})
}

func TestSingleOpenClosesSiblingsFirst(t *testing.T) {
	for _, mode := range []Mode{ModeExclusive, ModeCollapsible} {
		t.Run(string(mode), func(t *testing.T) {
			const n = 4
			content := &openWatcher{open: make([]bool, n)}
			ctrl := &openWatcher{open: make([]bool, n)}
			g := &Group{ID: "g", Kind: KindAccordion, Mode: mode}
			for i := 0; i < n; i++ {
				g.Items = append(g.Items, &Item{
					Controller: ctrl.surface(i),
					Content:    content.surface(i),
					Initial:    i == 0,
				})
			}
			e := NewEngine(nil, nil)
			e.Bind(g)

			for _, k := range []int{1, 3, 0, 2, 2, 1} {
				e.Activate("g", k)
				if content.max > 1 || ctrl.max > 1 {
					t.Fatalf("activate %d: %d contents and %d controllers open at once", k, content.max, ctrl.max)
				}
			}
			if mode == ModeCollapsible && !slices.Equal(g.OpenIndexes(), []int{1}) {
				t.Errorf("open = %v, want [1]", g.OpenIndexes())
			}
		})
	}
}
