package markup

import (
	"golang.org/x/net/html"

	"github.com/ziadkadry99/lightpack/internal/dom"
	"github.com/ziadkadry99/lightpack/internal/widget"
)

// classSurface paints open state as the presence of class c.
func classSurface(c string) func(*html.Node) widget.Surface {
	return func(n *html.Node) widget.Surface {
		return widget.SurfaceFunc(func(open bool) {
			dom.SetClass(n, c, open)
		})
	}
}

// hiddenSurface paints closed panels with the hidden attribute.
func hiddenSurface(n *html.Node) widget.Surface {
	return widget.SurfaceFunc(func(open bool) {
		if open {
			dom.RemoveAttr(n, "hidden")
		} else {
			dom.SetAttr(n, "hidden", "")
		}
	})
}

// displaySurface shows a modal backdrop as a flex container.
func displaySurface(n *html.Node) widget.Surface {
	return widget.SurfaceFunc(func(open bool) {
		if open {
			dom.SetStyle(n, "display", "flex")
		} else {
			dom.SetStyle(n, "display", "none")
		}
	})
}

// toggleSurface paints a collapse toggle and its indicator. The indicator
// text is only rewritten when the indicator holds no markup of its own.
func toggleSurface(toggle *html.Node) widget.Surface {
	indicator := dom.Find(toggle, dom.ByClass(classIndicator))
	return widget.SurfaceFunc(func(open bool) {
		dom.SetClass(toggle, classOpen, open)
		if indicator == nil {
			return
		}
		dom.SetClass(indicator, classOpen, open)
		if dom.HasElementChildren(indicator) {
			return
		}
		if open {
			dom.SetText(indicator, attrOr(indicator, "data-open", "-"))
		} else {
			dom.SetText(indicator, attrOr(indicator, "data-closed", "+"))
		}
	})
}

// openerSurface stamps every overlay trigger with its group and mirrors the
// overlay state in aria-expanded.
func openerSurface(groupID string, openers []*html.Node) widget.Surface {
	for _, b := range openers {
		dom.SetAttr(b, AttrOpen, groupID)
	}
	return widget.SurfaceFunc(func(open bool) {
		v := "false"
		if open {
			v = "true"
		}
		for _, b := range openers {
			dom.SetAttr(b, "aria-expanded", v)
		}
	})
}

// BodyLock returns a scroll lock hook that toggles overflow on <body>.
func BodyLock(doc *html.Node) func(locked bool) {
	body := dom.Body(doc)
	return func(locked bool) {
		if body == nil {
			return
		}
		if locked {
			dom.SetStyle(body, "overflow", "hidden")
		} else {
			dom.SetStyle(body, "overflow", "")
		}
	}
}

func attrOr(n *html.Node, key, def string) string {
	if v, ok := dom.Attr(n, key); ok && v != "" {
		return v
	}
	return def
}
