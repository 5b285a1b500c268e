package site

// pageTemplate wraps converted Markdown. The sidebar is a drawer and the
// TOC container is filled by the build.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}{{if .SiteName}} | {{.SiteName}}{{end}}</title>
  <link rel="stylesheet" href="{{.BasePath}}lightpack.css">
</head>
<body>
  <header class="top-bar">
    <button class="menu-toggle" data-drawer-open="site-nav" aria-label="Open navigation">&#9776;</button>
    <a class="site-name" href="{{.BasePath}}index.html">{{.SiteName}}</a>
    <button class="theme-toggle" data-lp-theme-toggle aria-label="Toggle theme">&#9680;</button>
  </header>
  <aside class="drawer" id="site-nav">
    <div class="drawer-backdrop"></div>
    <div class="drawer-panel">
      <button class="drawer-close" data-drawer-close aria-label="Close navigation">&times;</button>
      {{.TreeHTML}}
    </div>
  </aside>
  <div class="layout">
    <article class="page-content">
      {{.Content}}
    </article>
    <nav class="toc" id="{{.TOCID}}" aria-label="On this page"></nav>
  </div>
</body>
</html>`

// cssContent styles the widget states painted by the engine.
const cssContent = `:root { --fg: #1f2328; --bg: #ffffff; --muted: #656d76; --accent: #0969da; --border: #d0d7de; }
body.theme-dark { --fg: #e6edf3; --bg: #0d1117; --muted: #8d96a0; --accent: #4493f8; --border: #30363d; }
body { margin: 0; font-family: system-ui, sans-serif; color: var(--fg); background: var(--bg); line-height: 1.6; }
a { color: var(--accent); }
.top-bar { position: sticky; top: 0; display: flex; gap: 1rem; align-items: center; padding: .5rem 1rem; background: var(--bg); border-bottom: 1px solid var(--border); z-index: 10; }
.top-bar .site-name { flex: 1; font-weight: 600; text-decoration: none; color: var(--fg); }
.top-bar button { background: none; border: 0; color: var(--fg); font-size: 1.25rem; cursor: pointer; }
.layout { display: grid; grid-template-columns: minmax(0, 1fr) 16rem; gap: 2rem; max-width: 72rem; margin: 0 auto; padding: 1rem; }
.toc { position: sticky; top: 4rem; align-self: start; font-size: .9rem; }
.toc ul { list-style: none; padding-left: 1rem; margin: 0; }
.toc a { color: var(--muted); text-decoration: none; }
.toc a.toc-active { color: var(--accent); font-weight: 600; }

.tabs { display: flex; gap: .25rem; border-bottom: 1px solid var(--border); }
.tab { background: none; border: 0; padding: .5rem 1rem; cursor: pointer; color: var(--muted); }
.tab.tab-active { color: var(--fg); border-bottom: 2px solid var(--accent); }
.tabs-group > [hidden] { display: none; }

.accordion-panel, .collapse-content { display: none; padding: .5rem 1rem; }
.accordion-panel.open, .collapse-content.open { display: block; }
.accordion-header, .collapse-toggle { display: flex; justify-content: space-between; width: 100%; background: none; border: 0; border-bottom: 1px solid var(--border); padding: .5rem 0; cursor: pointer; color: var(--fg); }

.drawer { position: fixed; inset: 0; visibility: hidden; z-index: 20; }
.drawer.open { visibility: visible; }
.drawer-backdrop { position: absolute; inset: 0; background: rgba(0, 0, 0, .4); }
.drawer-panel { position: absolute; top: 0; bottom: 0; left: 0; width: 18rem; padding: 1rem; overflow-y: auto; background: var(--bg); transform: translateX(-100%); transition: transform .2s; }
.drawer.open .drawer-panel { transform: none; }
.drawer-panel ul { list-style: none; padding-left: 1rem; }
.drawer-panel a.active { font-weight: 600; }

.modal-backdrop { position: fixed; inset: 0; display: none; align-items: center; justify-content: center; background: rgba(0, 0, 0, .5); z-index: 30; }
.modal { background: var(--bg); padding: 1.5rem; border-radius: 6px; max-width: 32rem; }

@media (max-width: 60rem) { .layout { grid-template-columns: 1fr; } .toc { position: static; } }
`
