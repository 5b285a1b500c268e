package dom

import (
	"strings"
	"testing"

	"golang.org/x/net/html/atom"
)

func TestClassHelpers(t *testing.T) {
	doc, err := ParseString(`<div id="x" class="a  b"></div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n := FindID(doc, "x")
	if n == nil {
		t.Fatal("element #x not found")
	}
	if !HasClass(n, "a") || !HasClass(n, "b") {
		t.Fatalf("expected classes a and b, got %v", Classes(n))
	}

	SetClass(n, "open", true)
	SetClass(n, "open", true)
	if got, _ := Attr(n, "class"); got != "a b open" {
		t.Errorf("class after add = %q, want %q", got, "a b open")
	}

	SetClass(n, "a", false)
	SetClass(n, "b", false)
	SetClass(n, "open", false)
	if HasAttr(n, "class") {
		t.Error("class attribute should be removed when the list is empty")
	}
}

func TestAttrHelpers(t *testing.T) {
	doc, _ := ParseString(`<section hidden data-mode="multi"></section>`)
	n := Find(doc, ByAtom(atom.Section))
	if !HasAttr(n, "hidden") {
		t.Fatal("expected hidden attribute")
	}
	RemoveAttr(n, "hidden")
	if HasAttr(n, "hidden") {
		t.Error("hidden should be removed")
	}
	SetAttr(n, "data-mode", "exclusive")
	if v, _ := Attr(n, "data-mode"); v != "exclusive" {
		t.Errorf("data-mode = %q", v)
	}
}

func TestFindAllDocumentOrder(t *testing.T) {
	doc, _ := ParseString(`<body><p class="k">1</p><div><p class="k">2</p></div><p class="k">3</p></body>`)
	got := FindAll(doc, ByClass("k"))
	var texts []string
	for _, n := range got {
		texts = append(texts, Text(n))
	}
	if strings.Join(texts, ",") != "1,2,3" {
		t.Errorf("FindAll order = %v", texts)
	}
}

func TestChildrenAndText(t *testing.T) {
	doc, _ := ParseString(`<ul id="l">text<li>a</li> <li>b</li></ul>`)
	ul := FindID(doc, "l")
	if n := len(Children(ul)); n != 2 {
		t.Errorf("Children = %d, want 2", n)
	}
	SetText(ul, "gone")
	if HasElementChildren(ul) {
		t.Error("SetText should drop element children")
	}
	if Text(ul) != "gone" {
		t.Errorf("Text = %q", Text(ul))
	}
}

func TestSetStyle(t *testing.T) {
	tests := []struct {
		name  string
		style string
		prop  string
		value string
		want  string
	}{
		{"add to empty", "", "display", "flex", "display: flex"},
		{"replace", "color: red; display: none", "display", "flex", "color: red; display: flex"},
		{"append", "color: red", "overflow", "hidden", "color: red; overflow: hidden"},
		{"remove", "display: flex; color: red", "display", "", "color: red"},
		{"remove last", "overflow: hidden", "overflow", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Element(atom.Div)
			if tt.style != "" {
				SetAttr(n, "style", tt.style)
			}
			SetStyle(n, tt.prop, tt.value)
			got, _ := Attr(n, "style")
			if got != tt.want {
				t.Errorf("style = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStyleLookup(t *testing.T) {
	n := Element(atom.Div)
	SetAttr(n, "style", "DISPLAY: flex")
	if v, ok := Style(n, "display"); !ok || v != "flex" {
		t.Errorf("Style(display) = %q, %v", v, ok)
	}
	if _, ok := Style(n, "color"); ok {
		t.Error("color should be absent")
	}
}
