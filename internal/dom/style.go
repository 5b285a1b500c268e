package dom

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

// Declaration is one property of an inline style attribute.
type Declaration struct {
	Property string
	Value    string
}

// ParseStyle splits an inline style attribute into declarations, keeping
// their order. Malformed trailing input is dropped.
func ParseStyle(style string) []Declaration {
	if strings.TrimSpace(style) == "" {
		return nil
	}
	p := css.NewParser(parse.NewInputString(style), true)
	var decls []Declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return decls
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			var v strings.Builder
			for _, t := range p.Values() {
				v.Write(t.Data)
			}
			decls = append(decls, Declaration{
				Property: strings.ToLower(string(data)),
				Value:    strings.TrimSpace(v.String()),
			})
		}
	}
}

// FormatStyle is the inverse of ParseStyle.
func FormatStyle(decls []Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.Property+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}

// Style returns the inline value of prop on n.
func Style(n *html.Node, prop string) (string, bool) {
	v, _ := Attr(n, "style")
	for _, d := range ParseStyle(v) {
		if d.Property == prop {
			return d.Value, true
		}
	}
	return "", false
}

// SetStyle sets prop in the inline style of n. An empty value removes the
// property, mirroring element.style.prop = '' in a browser.
func SetStyle(n *html.Node, prop, value string) {
	v, _ := Attr(n, "style")
	decls := ParseStyle(v)
	out := decls[:0]
	replaced := false
	for _, d := range decls {
		if d.Property == prop {
			if value == "" || replaced {
				continue
			}
			d.Value = value
			replaced = true
		}
		out = append(out, d)
	}
	if value != "" && !replaced {
		out = append(out, Declaration{Property: prop, Value: value})
	}
	if len(out) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", FormatStyle(out))
}
