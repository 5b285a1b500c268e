package site

import (
	"fmt"
	"html"
	"path"
	"sort"
	"strings"
)

// FileTree is a node of the site navigation.
type FileTree struct {
	Name     string
	Title    string // Page title, or a formatted directory name.
	Path     string // For pages: source path. For dirs: directory path (e.g., "guide/widgets").
	IsDir    bool
	Children []*FileTree
}

// BuildTree constructs a FileTree from source page paths. titles maps a
// source path to its page title.
func BuildTree(paths []string, titles map[string]string) *FileTree {
	root := &FileTree{Name: "site", IsDir: true}

	for _, p := range paths {
		parts := strings.Split(p, "/")
		current := root
		for i, part := range parts {
			isLast := i == len(parts)-1
			var next *FileTree
			for _, child := range current.Children {
				if child.Name == part && child.IsDir == !isLast {
					next = child
					break
				}
			}
			if next == nil {
				next = &FileTree{Name: part, IsDir: !isLast}
				if isLast {
					next.Path = p
					next.Title = titles[p]
				} else {
					next.Path = strings.Join(parts[:i+1], "/")
					next.Title = formatDirName(part)
				}
				current.Children = append(current.Children, next)
			}
			current = next
		}
	}

	sortTree(root)
	return root
}

// sortTree recursively sorts tree children: index pages first, then
// directories, then pages, alphabetically.
func sortTree(node *FileTree) {
	sort.SliceStable(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if ai, bi := isIndex(a), isIndex(b); ai != bi {
			return ai
		}
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	for _, child := range node.Children {
		if child.IsDir {
			sortTree(child)
		}
	}
}

func isIndex(n *FileTree) bool {
	if n.IsDir {
		return false
	}
	return strings.TrimSuffix(n.Name, path.Ext(n.Name)) == "index"
}

// ToHTML renders the tree as nested <ul><li> lists for the sidebar.
// basePath is the relative prefix back to the site root.
func (t *FileTree) ToHTML(activePath, basePath string) string {
	var b strings.Builder
	renderChildren(&b, t, activePath, basePath, computeActiveAncestors(activePath))
	return b.String()
}

// computeActiveAncestors returns the directory paths above activePath.
// For "guide/widgets/tabs.md" it returns {"guide", "guide/widgets"}.
func computeActiveAncestors(activePath string) map[string]bool {
	ancestors := make(map[string]bool)
	parts := strings.Split(activePath, "/")
	for i := 1; i < len(parts); i++ {
		ancestors[strings.Join(parts[:i], "/")] = true
	}
	return ancestors
}

func renderChildren(b *strings.Builder, node *FileTree, activePath, basePath string, activeAncestors map[string]bool) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>")
	for _, child := range node.Children {
		label := child.Title
		if label == "" {
			label = strings.TrimSuffix(child.Name, path.Ext(child.Name))
		}
		label = html.EscapeString(label)

		if child.IsDir {
			class := "dir"
			if activeAncestors[child.Path] {
				class += " expanded"
			}
			fmt.Fprintf(b, `<li class="%s"><span>%s</span>`, class, label)
			renderChildren(b, child, activePath, basePath, activeAncestors)
			b.WriteString("</li>")
			continue
		}
		active := ""
		if child.Path == activePath {
			active = ` class="active" aria-current="page"`
		}
		fmt.Fprintf(b, `<li><a href="%s%s"%s>%s</a></li>`,
			basePath, html.EscapeString(OutputPath(child.Path)), active, label)
	}
	b.WriteString("</ul>")
}

// formatDirName converts a directory slug to a display name.
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
