package migrations

import (
	"io/fs"
	"sort"
	"sync"
)

// Source is a named migrations filesystem: postgres files at the root and
// sqlite overrides under sqlite/.
type Source struct {
	Name string
	FS   fs.FS
}

var (
	mu      sync.RWMutex
	sources = map[string]fs.FS{}
)

// Register adds or replaces the source called name. Nil filesystems and empty
// names are ignored.
func Register(name string, fsys fs.FS) {
	if name == "" || fsys == nil {
		return
	}
	mu.Lock()
	sources[name] = fsys
	mu.Unlock()
}

// Sources lists the registered sources ordered by name, so "auth" runs before
// "core".
func Sources() []Source {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Source, 0, len(sources))
	for name, fsys := range sources {
		out = append(out, Source{Name: name, FS: fsys})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Filesystems returns the filesystems of Sources in the same order.
func Filesystems() []fs.FS {
	list := Sources()
	out := make([]fs.FS, 0, len(list))
	for _, src := range list {
		out = append(out, src.FS)
	}
	return out
}
