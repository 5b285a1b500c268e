package walker

import (
	"path/filepath"
	"strings"
)

// Kind classifies a source file for the site builder.
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindHTML     Kind = "html"
	KindAsset    Kind = "asset"
)

// extensionToKind maps page extensions to their kind. Anything else is an asset.
var extensionToKind = map[string]Kind{
	".md":       KindMarkdown,
	".markdown": KindMarkdown,
	".mdown":    KindMarkdown,
	".html":     KindHTML,
	".htm":      KindHTML,
	".xhtml":    KindHTML,
}

// DetectKind returns the kind of a file from its name or path.
func DetectKind(path string) Kind {
	if k, ok := extensionToKind[strings.ToLower(filepath.Ext(path))]; ok {
		return k
	}
	return KindAsset
}

// IsPage reports whether k is rendered rather than copied.
func (k Kind) IsPage() bool {
	return k == KindMarkdown || k == KindHTML
}
