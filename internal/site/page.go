package site

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/lightpack/internal/dom"
	"github.com/ziadkadry99/lightpack/internal/walker"
)

// newMarkdown returns the goldmark converter used for every Markdown page.
// Raw HTML passes through so widget markup can be written inline.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)
}

// convertMarkdown renders Markdown source to an HTML fragment.
func convertMarkdown(md goldmark.Markdown, src []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// LoadPage reads an HTML or Markdown file into a document tree. Markdown is
// converted but not wrapped in the site template.
func LoadPage(file string) (*html.Node, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if walker.DetectKind(file) == walker.KindMarkdown {
		frag, err := convertMarkdown(newMarkdown(), src)
		if err != nil {
			return nil, err
		}
		return dom.ParseString(frag)
	}
	return dom.Parse(bytes.NewReader(src))
}

// OutputPath maps a source path to the path of the built file.
func OutputPath(relPath string) string {
	if walker.DetectKind(relPath) == walker.KindMarkdown {
		return strings.TrimSuffix(relPath, path.Ext(relPath)) + ".html"
	}
	return relPath
}

// basePath returns the relative prefix from relPath back to the site root.
func basePath(relPath string) string {
	return strings.Repeat("../", strings.Count(relPath, "/"))
}

// extractTitle returns the text of the first h1, then the <title>, then the
// file name.
func extractTitle(doc *html.Node, relPath string) string {
	if h := dom.Find(doc, dom.ByAtom(atom.H1)); h != nil {
		if t := strings.TrimSpace(dom.Text(h)); t != "" {
			return t
		}
	}
	if t := dom.Find(doc, dom.ByAtom(atom.Title)); t != nil {
		if s := strings.TrimSpace(dom.Text(t)); s != "" {
			return s
		}
	}
	base := path.Base(relPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// rewriteMDLinks points relative links to Markdown sources at their built pages.
func rewriteMDLinks(doc *html.Node) {
	for _, a := range dom.FindAll(doc, dom.ByAtom(atom.A)) {
		href, ok := dom.Attr(a, "href")
		if !ok || strings.Contains(href, "://") || strings.HasPrefix(href, "#") {
			continue
		}
		target, frag, _ := strings.Cut(href, "#")
		if walker.DetectKind(target) != walker.KindMarkdown {
			continue
		}
		out := OutputPath(target)
		if frag != "" {
			out += "#" + frag
		}
		dom.SetAttr(a, "href", out)
	}
}

// injectScript adds the client script to <head> unless a script with the
// same src is already present.
func injectScript(doc *html.Node, src string) bool {
	for _, s := range dom.FindAll(doc, dom.ByAtom(atom.Script)) {
		if v, _ := dom.Attr(s, "src"); v == src {
			return false
		}
	}
	parent := dom.Find(doc, dom.ByAtom(atom.Head))
	if parent == nil {
		parent = dom.Body(doc)
	}
	if parent == nil {
		return false
	}
	parent.AppendChild(dom.Element(atom.Script,
		html.Attribute{Key: "src", Val: src},
		html.Attribute{Key: "defer", Val: ""},
	))
	return true
}
