package toc

// Position is the document-relative top of a heading.
type Position struct {
	ID  string  `json:"id"`
	Top float64 `json:"top"`
}

// ComputeActive returns the id of the last heading, in document order, whose
// top is at or above the reference line scrollY+offset+1. ok is false when
// the page is scrolled above the first heading.
func ComputeActive(ps []Position, scrollY, offset float64) (id string, ok bool) {
	line := scrollY + offset + 1
	for i := len(ps) - 1; i >= 0; i-- {
		if ps[i].Top <= line {
			return ps[i].ID, true
		}
	}
	return "", false
}

// Spy holds the scroll-spy state of one TOC instance.
type Spy struct {
	offset    float64
	positions []Position
	active    string
}

// NewSpy returns a spy with no layout; nothing is active until SetLayout.
func NewSpy(offset float64) *Spy {
	return &Spy{offset: offset}
}

// SetLayout replaces the heading positions, ordered as in the document.
func (s *Spy) SetLayout(ps []Position) {
	s.positions = append(s.positions[:0], ps...)
}

// Layout returns the current positions.
func (s *Spy) Layout() []Position { return s.positions }

// Update recomputes the active heading for scrollY and reports whether it
// changed since the previous call.
func (s *Spy) Update(scrollY float64) (active string, changed bool) {
	id, _ := ComputeActive(s.positions, scrollY, s.offset)
	changed = id != s.active
	s.active = id
	return id, changed
}

// Active returns the last computed active id, "" when none.
func (s *Spy) Active() string { return s.active }
