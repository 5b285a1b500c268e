package toc

import "testing"

func TestRenderString(t *testing.T) {
	hs := entries(2, "A", 3, "B & C", 2, "D")
	AssignIDs(hs)
	got := RenderString(BuildTree(hs))
	want := `<ul><li><a href="#toc-heading-1">A</a><ul><li><a href="#toc-heading-2">B &amp; C</a></li></ul></li>` +
		`<li><a href="#toc-heading-3">D</a></li></ul>`
	if got != want {
		t.Errorf("RenderString:\n got %s\nwant %s", got, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	if Render(nil) != nil {
		t.Error("empty forest should render nil")
	}
	if RenderString(nil) != "" {
		t.Error("empty forest should render empty string")
	}
}

func TestFlatten(t *testing.T) {
	hs := entries(2, "A", 3, "B", 2, "C")
	AssignIDs(hs)
	links := Flatten(BuildTree(hs))
	if len(links) != 3 {
		t.Fatalf("len = %d", len(links))
	}
	if links[1].Href != "#toc-heading-2" || links[1].Label != "B" || links[1].Level != 3 {
		t.Errorf("links[1] = %+v", links[1])
	}
}

func TestNavigator(t *testing.T) {
	links := []Link{{ID: "intro", Href: "#intro"}, {ID: "a b", Href: "#a%20b"}}
	n := NewNavigator(links, 60)

	if _, ok := n.Navigate("#intro"); ok {
		t.Error("navigation without layout should fall back to default")
	}

	n.SetLayout([]Position{{"intro", 100}, {"a b", 400}})
	tests := []struct {
		href string
		top  float64
		ok   bool
	}{
		{"#intro", 40, true},
		{"#a%20b", 340, true},
		{"/page.html#intro", 40, true},
		{"#missing", 0, false},
		{"intro", 0, false},
	}
	for _, tt := range tests {
		cmd, ok := n.Navigate(tt.href)
		if ok != tt.ok || cmd.Top != tt.top {
			t.Errorf("Navigate(%q) = %+v,%v want top %v,%v", tt.href, cmd, ok, tt.top, tt.ok)
		}
		if ok && cmd.Behavior != "smooth" {
			t.Errorf("behavior = %q", cmd.Behavior)
		}
	}
}
