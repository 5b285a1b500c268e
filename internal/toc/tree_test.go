package toc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func entries(pairs ...any) []Heading {
	var hs []Heading
	for i := 0; i < len(pairs); i += 2 {
		hs = append(hs, &Entry{Depth: pairs[i].(int), Title: pairs[i+1].(string)})
	}
	return hs
}

func TestBuildTreeExample(t *testing.T) {
	hs := entries(2, "A", 3, "B", 2, "C")
	AssignIDs(hs)
	got := BuildTree(hs)
	want := []*Node{
		{ID: "toc-heading-1", Level: 2, Text: "A", Children: []*Node{
			{ID: "toc-heading-2", Level: 3, Text: "B"},
		}},
		{ID: "toc-heading-3", Level: 2, Text: "C"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildTree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTreeShapes(t *testing.T) {
	tests := []struct {
		name string
		hs   []Heading
		want []*Node
	}{
		{
			name: "empty",
			hs:   nil,
			want: nil,
		},
		{
			name: "same level siblings",
			hs:   entries(3, "x", 3, "y"),
			want: []*Node{{Level: 3, Text: "x"}, {Level: 3, Text: "y"}},
		},
		{
			name: "skipped level nests under nearest shallower",
			hs:   entries(2, "a", 4, "b", 3, "c"),
			want: []*Node{{Level: 2, Text: "a", Children: []*Node{
				{Level: 4, Text: "b"},
				{Level: 3, Text: "c"},
			}}},
		},
		{
			name: "deeper first heading starts the forest",
			hs:   entries(4, "deep", 2, "top", 3, "sub"),
			want: []*Node{
				{Level: 4, Text: "deep"},
				{Level: 2, Text: "top", Children: []*Node{{Level: 3, Text: "sub"}}},
			},
		},
		{
			name: "shallower heading pops several levels",
			hs:   entries(2, "a", 3, "b", 4, "c", 3, "d"),
			want: []*Node{{Level: 2, Text: "a", Children: []*Node{
				{Level: 3, Text: "b", Children: []*Node{{Level: 4, Text: "c"}}},
				{Level: 3, Text: "d"},
			}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildTree(tt.hs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForestLevelsInvariant(t *testing.T) {
	hs := entries(2, "a", 5, "b", 3, "c", 6, "d", 4, "e", 2, "f", 6, "g", 1, "h", 2, "i")
	var check func(parent *Node, ns []*Node)
	check = func(parent *Node, ns []*Node) {
		for _, n := range ns {
			if parent != nil && n.Level <= parent.Level {
				t.Errorf("%s (level %d) nested under %s (level %d)", n.Text, n.Level, parent.Text, parent.Level)
			}
			check(n, n.Children)
		}
	}
	check(nil, BuildTree(hs))
}

func TestAssignIDsIsIdempotent(t *testing.T) {
	hs := entries(2, "A", 3, "B", 2, "C")
	hs[1].SetID("custom")

	AssignIDs(hs)
	first := BuildTree(hs)
	AssignIDs(hs)
	second := BuildTree(hs)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
	if got := hs[1].ID(); got != "custom" {
		t.Errorf("existing id overwritten: %q", got)
	}
	if got := hs[2].ID(); got != "toc-heading-3" {
		t.Errorf("third heading id = %q, want toc-heading-3", got)
	}
}

func TestWalkOrder(t *testing.T) {
	hs := entries(2, "A", 3, "B", 4, "C", 2, "D")
	var got []string
	Walk(BuildTree(hs), func(n *Node, depth int) {
		got = append(got, n.Text+string(rune('0'+depth)))
	})
	want := []string{"A0", "B1", "C2", "D0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk order (-want +got):\n%s", diff)
	}
}
