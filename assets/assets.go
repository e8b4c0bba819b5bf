// Package assets provides the bundled background images and any extra
// backgrounds registered from init.lua.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"sync"
)

//go:embed backgrounds/*.jpg
var bundled embed.FS

// ErrUnknownAsset is returned for a background name nobody registered.
var ErrUnknownAsset = errors.New("assets: unknown background")

// Registry resolves background names to image bytes. Names registered at
// runtime shadow bundled ones.
type Registry struct {
	mu    sync.RWMutex
	files map[string]string // name -> path on disk
}

// NewRegistry creates a registry holding only the bundled backgrounds.
func NewRegistry() *Registry {
	return &Registry{files: make(map[string]string)}
}

// Register maps name to an image file on disk.
func (r *Registry) Register(name, file string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[name] = file
}

// Names returns every known background name, sorted.
func (r *Registry) Names() []string {
	seen := make(map[string]bool)
	entries, _ := fs.ReadDir(bundled, "backgrounds")
	for _, e := range entries {
		if !e.IsDir() {
			seen[e.Name()] = true
		}
	}

	r.mu.RLock()
	for name := range r.files {
		seen[name] = true
	}
	r.mu.RUnlock()

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open returns the raw bytes of a background.
func (r *Registry) Open(name string) ([]byte, error) {
	r.mu.RLock()
	file, ok := r.files[name]
	r.mu.RUnlock()

	if ok {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("background %q: %w", name, err)
		}
		return data, nil
	}

	if path.Base(name) != name {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, name)
	}
	data, err := bundled.ReadFile(path.Join("backgrounds", name))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, name)
	}
	return data, nil
}
