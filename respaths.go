package glslext

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Resolver maps a logical resource path such as "shaders/lib/fog.glsl" to a
// concrete file path.
type Resolver interface {
	Find(logicalPath string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(logicalPath string) (string, error)

func (f ResolverFunc) Find(logicalPath string) (string, error) { return f(logicalPath) }

// ResPaths resolves logical paths against an ordered list of root
// directories. The first root containing the file wins.
type ResPaths struct {
	roots []string
}

func NewResPaths(roots ...string) *ResPaths {
	return &ResPaths{roots: append([]string(nil), roots...)}
}

// Roots returns the search roots in lookup order.
func (p *ResPaths) Roots() []string {
	return append([]string(nil), p.roots...)
}

// Find returns root/logicalPath for the first root where it names a regular
// file. The error wraps fs.ErrNotExist when no root has it.
func (p *ResPaths) Find(logicalPath string) (string, error) {
	rel := filepath.FromSlash(logicalPath)
	if filepath.IsAbs(rel) {
		if fileExists(rel) {
			return filepath.Clean(rel), nil
		}
		return "", fmt.Errorf("resource %q: %w", logicalPath, fs.ErrNotExist)
	}
	for _, root := range p.roots {
		cand := filepath.Join(root, rel)
		if fileExists(cand) {
			return cand, nil
		}
	}
	return "", fmt.Errorf("resource %q not found in %d root(s): %w", logicalPath, len(p.roots), fs.ErrNotExist)
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
