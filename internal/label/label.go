// Package label resolves resource URIs to display metadata: an icon
// identifier, a short name, and a human path description.
package label

import (
	"path"
	"strings"

	"github.com/interpretive-systems/histui/internal/resource"
)

// Label is the resolved presentation of a URI.
type Label struct {
	Icon        string
	Name        string
	Description string
	Caption     string
}

// Provider resolves labels for the URIs it claims. CanHandle returns a
// score; the registry routes each URI to the highest-scoring provider and
// zero means "not mine".
type Provider interface {
	CanHandle(u resource.URI) int
	Resolve(u resource.URI) Label
}

// FileProvider labels scm URIs from their repository path.
type FileProvider struct{}

// NewFileProvider creates the default scm label provider.
func NewFileProvider() *FileProvider { return &FileProvider{} }

func (p *FileProvider) CanHandle(u resource.URI) int {
	if u.Scheme == resource.SchemeSCM {
		return 10
	}
	return 0
}

func (p *FileProvider) Resolve(u resource.URI) Label {
	name := path.Base(u.Path)
	dir := path.Dir(u.Path)
	if dir == "." || dir == "/" {
		dir = ""
	}
	caption := u.Path
	if rev := u.Revision(); rev != "" {
		caption += " @ " + rev
	}
	return Label{
		Icon:        iconForName(name),
		Name:        name,
		Description: dir,
		Caption:     caption,
	}
}

// DiffProvider labels encoded diff URIs; the display name rides in the
// URI path, so resolution is mostly pass-through.
type DiffProvider struct{}

// NewDiffProvider creates the diff label provider.
func NewDiffProvider() *DiffProvider { return &DiffProvider{} }

func (p *DiffProvider) CanHandle(u resource.URI) int {
	if u.Scheme == resource.SchemeDiff {
		return 20
	}
	return 0
}

func (p *DiffProvider) Resolve(u resource.URI) Label {
	return Label{
		Icon:    "diff",
		Name:    u.Path,
		Caption: u.Path,
	}
}

var iconByExt = map[string]string{
	".go":   "file-go",
	".md":   "file-markdown",
	".json": "file-json",
	".yaml": "file-yaml",
	".yml":  "file-yaml",
	".toml": "file-toml",
	".sh":   "file-shell",
	".py":   "file-python",
	".js":   "file-js",
	".ts":   "file-ts",
	".html": "file-html",
	".css":  "file-css",
	".sql":  "file-sql",
	".proto": "file-proto",
	".txt":  "file-text",
}

var iconByName = map[string]string{
	"Makefile":   "file-make",
	"Dockerfile": "file-docker",
	"go.mod":     "file-go-mod",
	"go.sum":     "file-go-mod",
	"LICENSE":    "file-license",
}

func iconForName(name string) string {
	if icon, ok := iconByName[name]; ok {
		return icon
	}
	if icon, ok := iconByExt[strings.ToLower(path.Ext(name))]; ok {
		return icon
	}
	return "file"
}
