// Package site builds a static site from Markdown and HTML sources with
// widget groups stamped and tables of contents generated.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/lightpack/internal/dom"
	"github.com/ziadkadry99/lightpack/internal/live"
	"github.com/ziadkadry99/lightpack/internal/markup"
	"github.com/ziadkadry99/lightpack/internal/progress"
	"github.com/ziadkadry99/lightpack/internal/toc"
	"github.com/ziadkadry99/lightpack/internal/walker"
	"github.com/ziadkadry99/lightpack/internal/widget"
)

// StylesheetName is the stylesheet written next to the built pages.
const StylesheetName = "lightpack.css"

// Options configures a build.
type Options struct {
	InputDir  string
	OutputDir string
	Include   []string
	Exclude   []string
	TOC       toc.Options
	SiteName  string
}

// Result summarizes a build.
type Result struct {
	Pages    int
	Assets   int
	Groups   int
	Headings int
}

// Generator converts a source directory into a static site.
type Generator struct {
	opts     Options
	log      *zap.Logger
	reporter progress.Reporter
	md       goldmark.Markdown
	tmpl     *template.Template
}

// pageData holds the data passed to the HTML template for each Markdown page.
type pageData struct {
	Title    string
	SiteName string
	Content  template.HTML
	TreeHTML template.HTML
	BasePath string
	TOCID    string
}

// NewGenerator creates a Generator. A nil reporter discards progress.
func NewGenerator(opts Options, reporter progress.Reporter, log *zap.Logger) (*Generator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if reporter == nil {
		reporter = progress.Nop{}
	}
	opts.TOC = opts.TOC.WithDefaults()
	if err := opts.TOC.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Generator{
		opts:     opts,
		log:      log.Named("site"),
		reporter: reporter,
		md:       newMarkdown(),
		tmpl:     tmpl,
	}, nil
}

// Generate builds the full site.
func (g *Generator) Generate() (Result, error) {
	var res Result

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: g.opts.InputDir,
		Include: g.opts.Include,
		Exclude: g.opts.Exclude,
	})
	if err != nil {
		return res, err
	}

	var pages []walker.FileInfo
	for _, f := range files {
		if f.Kind.IsPage() {
			pages = append(pages, f)
		}
	}
	if len(pages) == 0 {
		return res, fmt.Errorf("no pages found in %s", g.opts.InputDir)
	}

	if err := os.MkdirAll(g.opts.OutputDir, 0o755); err != nil {
		return res, err
	}
	if err := writeFile(filepath.Join(g.opts.OutputDir, StylesheetName), cssContent); err != nil {
		return res, err
	}
	if err := writeFile(filepath.Join(g.opts.OutputDir, live.ClientScriptName), live.ClientScript); err != nil {
		return res, err
	}

	// Titles are needed up front for the navigation of every page.
	docs := make(map[string]*html.Node, len(pages))
	titles := make(map[string]string, len(pages))
	paths := make([]string, 0, len(pages))
	for _, p := range pages {
		doc, err := g.load(p)
		if err != nil {
			return res, fmt.Errorf("loading %s: %w", p.RelPath, err)
		}
		docs[p.RelPath] = doc
		titles[p.RelPath] = extractTitle(doc, p.RelPath)
		paths = append(paths, p.RelPath)
	}
	tree := BuildTree(paths, titles)

	g.reporter.Start(len(files))
	defer g.reporter.Finish()

	for i, f := range files {
		g.reporter.Update(i+1, f.RelPath)
		if !f.Kind.IsPage() {
			if err := copyFile(f.Path, filepath.Join(g.opts.OutputDir, filepath.FromSlash(f.RelPath))); err != nil {
				return res, fmt.Errorf("copying %s: %w", f.RelPath, err)
			}
			res.Assets++
			continue
		}
		groups, headings, err := g.renderPage(f, docs[f.RelPath], titles[f.RelPath], tree)
		if err != nil {
			return res, fmt.Errorf("rendering %s: %w", f.RelPath, err)
		}
		res.Pages++
		res.Groups += groups
		res.Headings += headings
	}

	g.log.Info("Site built",
		zap.String("output", g.opts.OutputDir),
		zap.Int("pages", res.Pages),
		zap.Int("assets", res.Assets),
		zap.Int("groups", res.Groups))
	return res, nil
}

// load reads a page. Markdown is converted and wrapped in the page template;
// HTML is parsed as written.
func (g *Generator) load(f walker.FileInfo) (*html.Node, error) {
	src, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	if f.Kind != walker.KindMarkdown {
		return dom.Parse(bytes.NewReader(src))
	}
	frag, err := convertMarkdown(g.md, src)
	if err != nil {
		return nil, err
	}
	return dom.ParseString(frag)
}

// renderPage processes one page and writes it. Markdown pages are wrapped
// in the site template before widgets and headings are processed.
func (g *Generator) renderPage(f walker.FileInfo, doc *html.Node, title string, tree *FileTree) (groups, headings int, err error) {
	base := basePath(f.RelPath)

	if f.Kind == walker.KindMarkdown {
		var content strings.Builder
		if body := dom.Body(doc); body != nil {
			for c := body.FirstChild; c != nil; c = c.NextSibling {
				if err := html.Render(&content, c); err != nil {
					return 0, 0, err
				}
			}
		}
		var buf bytes.Buffer
		err := g.tmpl.Execute(&buf, pageData{
			Title:    title,
			SiteName: g.opts.SiteName,
			Content:  template.HTML(content.String()),
			TreeHTML: template.HTML(tree.ToHTML(f.RelPath, base)),
			BasePath: base,
			TOCID:    strings.TrimPrefix(g.opts.TOC.Selector, "#"),
		})
		if err != nil {
			return 0, 0, err
		}
		if doc, err = dom.Parse(&buf); err != nil {
			return 0, 0, err
		}
	}

	rewriteMDLinks(doc)

	// Binding normalizes initial state, e.g. a tab group with no active tab.
	scanner := markup.NewScanner(doc, g.log)
	engine := widget.NewEngine(widget.NewScrollLock(markup.BodyLock(doc)), g.log)
	groups = len(engine.BindAll(scanner))

	if t := markup.GenerateTOC(doc, g.opts.TOC, g.log); t != nil {
		headings = len(t.Links)
	}
	injectScript(doc, base+live.ClientScriptName)

	out := filepath.Join(g.opts.OutputDir, filepath.FromSlash(OutputPath(f.RelPath)))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return 0, 0, err
	}
	if err := writeFile(out, dom.Render(doc)); err != nil {
		return 0, 0, err
	}
	g.log.Debug("Page written", zap.String("page", f.RelPath), zap.Int("groups", groups), zap.Int("headings", headings))
	return groups, headings, nil
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	return multierr.Append(err, out.Close())
}
