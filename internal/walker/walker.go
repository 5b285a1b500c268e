package walker

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxFileSize is the largest page processed (4 MB). Assets are
// copied whatever their size.
const DefaultMaxFileSize int64 = 4 << 20

// sniffLen is how much of a page is read to tell text from binary.
const sniffLen = 512

// FileInfo describes one source file of the site.
type FileInfo struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash separated path relative to the root.
	Size    int64
	Kind    Kind
}

// WalkerConfig controls Walk.
type WalkerConfig struct {
	RootDir string
	// Include selects pages. Assets are kept unless excluded.
	Include []string
	// Exclude drops pages and assets alike.
	Exclude []string
	// MaxFileSize skips larger pages (0 = DefaultMaxFileSize).
	MaxFileSize int64
}

// Walk lists the pages and assets under config.RootDir in lexical order.
// Hidden entries, default excluded directories and paths matched by the
// root .gitignore are skipped, as are pages that look binary or exceed the
// size limit.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	w := &walk{
		root:    root,
		cfg:     config,
		ignored: loadGitignore(filepath.Join(root, ".gitignore")),
	}
	if w.cfg.MaxFileSize <= 0 {
		w.cfg.MaxFileSize = DefaultMaxFileSize
	}
	if err := filepath.WalkDir(root, w.visit); err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}
	return w.files, nil
}

type walk struct {
	root    string
	cfg     WalkerConfig
	ignored []gitignoreRule
	files   []FileInfo
}

func (w *walk) visit(path string, d fs.DirEntry, walkErr error) error {
	if walkErr != nil {
		// Unreadable entries are skipped, not fatal.
		return nil
	}
	if path == w.root {
		return nil
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)
	name := d.Name()

	if d.IsDir() {
		if isHidden(name) || shouldExcludeDir(name) || w.gitignored(rel, true) {
			return filepath.SkipDir
		}
		return nil
	}
	if isHidden(name) || !d.Type().IsRegular() || w.gitignored(rel, false) {
		return nil
	}
	if MatchesExclude(rel, w.cfg.Exclude) {
		return nil
	}

	kind := DetectKind(name)
	if kind.IsPage() && !MatchesInclude(rel, w.cfg.Include) {
		return nil
	}
	info, err := d.Info()
	if err != nil {
		return nil
	}
	if kind.IsPage() && (info.Size() > w.cfg.MaxFileSize || isBinary(path)) {
		return nil
	}

	w.files = append(w.files, FileInfo{Path: path, RelPath: rel, Size: info.Size(), Kind: kind})
	return nil
}

func (w *walk) gitignored(rel string, isDir bool) bool {
	for _, r := range w.ignored {
		if r.dirOnly && !isDir {
			continue
		}
		if r.matches(rel) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// isBinary reports a NUL byte in the head of the file. Unreadable files
// count as binary.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}

// gitignoreRule is one pattern line of a .gitignore file. Negations are
// not supported.
type gitignoreRule struct {
	pattern  string
	anchored bool // contains a slash, so matches from the root only
	dirOnly  bool // trailing slash
}

func (r gitignoreRule) matches(rel string) bool {
	if r.anchored {
		ok, _ := doublestar.Match(r.pattern, rel)
		return ok
	}
	ok, _ := doublestar.Match(r.pattern, rel[strings.LastIndexByte(rel, '/')+1:])
	return ok
}

// loadGitignore reads the rules of a .gitignore file; a missing file has none.
func loadGitignore(path string) []gitignoreRule {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var rules []gitignoreRule
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		r := gitignoreRule{dirOnly: strings.HasSuffix(line, "/")}
		line = strings.TrimSuffix(line, "/")
		r.anchored = strings.Contains(line, "/")
		r.pattern = strings.TrimPrefix(line, "/")
		rules = append(rules, r)
	}
	return rules
}
