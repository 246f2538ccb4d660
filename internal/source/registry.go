package source

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Registry resolves formats by name or file extension.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Format
	byExt  map[string]Format
}

func NewRegistry(formats ...Format) *Registry {
	r := &Registry{byName: make(map[string]Format), byExt: make(map[string]Format)}
	for _, f := range formats {
		r.Register(f)
	}
	return r
}

func (r *Registry) Register(f Format) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[strings.ToLower(f.Name)] = f
	for _, ext := range f.Extensions {
		r.byExt[normalizeExt(ext)] = f
	}
}

func (r *Registry) ByName(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byName[strings.ToLower(name)]
	return f, ok
}

// ForPath picks a format from the file extension, ignoring a trailing ".gz".
func (r *Registry) ForPath(path string) (Format, bool) {
	base := strings.TrimSuffix(strings.ToLower(filepath.Base(path)), ".gz")
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byExt[normalizeExt(filepath.Ext(base))]
	return f, ok
}

// Resolve prefers an explicit format name and falls back to the extension.
func (r *Registry) Resolve(path, name string) (Format, error) {
	if name != "" {
		if f, ok := r.ByName(name); ok {
			return f, nil
		}
		return Format{}, fmt.Errorf("unknown file format %q for %s", name, path)
	}
	if f, ok := r.ForPath(path); ok {
		return f, nil
	}
	return Format{}, fmt.Errorf("no format registered for %s", path)
}

func normalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
