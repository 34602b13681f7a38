// Package chain resolves resource names against an ordered list of candidate
// loaders, taking the first hit.
package chain

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/respath/respath"
	"github.com/respath/respath/builtin"
	"github.com/respath/respath/drivers/dir"
	"github.com/respath/respath/drivers/fsys"
	"github.com/respath/respath/drivers/zip"
)

// EnvPath names the environment variable holding the ambient search path: a
// list of directories and zip/jar archives separated by the platform's path
// list separator.
const EnvPath = "RESPATH"

// Chain tries up to five loaders for every lookup, in trust order:
//
//  1. a loader supplied explicitly for that call,
//  2. the configurable default loader,
//  3. the ambient loader, built from the RESPATH environment variable,
//  4. the resources embedded in this binary,
//  5. the directory containing the running executable.
//
// Empty slots are skipped.  Within each slot the name is tried as given and
// then with its leading solidus toggled, since loaders disagree on whether
// their index is rooted.  A loader that fails for any reason is treated as a
// miss and the next slot is consulted.
type Chain struct {
	mu  sync.RWMutex
	def respath.Loader

	own     respath.Loader
	system  respath.Loader
	ambient func() respath.Loader
}

// New creates a chain, capturing the fixed embedded and executable-directory
// slots.  The executable slot is left empty when the executable path cannot
// be determined.
func New() *Chain {
	c := &Chain{
		own:     fsys.New(builtin.FS),
		ambient: FromEnv,
	}
	if exe, err := os.Executable(); err == nil {
		c.system = dir.New(filepath.Dir(exe))
	}
	return c
}

// SetDefault replaces the chain's default loader.  A nil loader clears the
// slot.
func (c *Chain) SetDefault(l respath.Loader) {
	c.mu.Lock()
	c.def = l
	c.mu.Unlock()
}

// Default returns the chain's default loader, or nil if none is set.
func (c *Chain) Default() respath.Loader {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.def
}

// Stream resolves the named resource to an open reader.  The second return
// value reports whether any loader in the chain had it.
func (c *Chain) Stream(name string, explicit respath.Loader) (io.ReadCloser, bool) {
	for _, l := range c.loaders(explicit) {
		if l == nil {
			continue
		}
		if rc, err := l.Open(name); err == nil {
			return rc, true
		}
		if rc, err := l.Open(toggleSolidus(name)); err == nil {
			return rc, true
		}
	}
	return nil, false
}

// URL resolves the named resource to an address.  The second return value
// reports whether any loader in the chain had it.
func (c *Chain) URL(name string, explicit respath.Loader) (*url.URL, bool) {
	for _, l := range c.loaders(explicit) {
		if l == nil {
			continue
		}
		if u, err := l.URL(name); err == nil {
			return u, true
		}
		if u, err := l.URL(toggleSolidus(name)); err == nil {
			return u, true
		}
	}
	return nil, false
}

// loaders snapshots the slot order for a single lookup.  The default slot is
// read exactly once, so replacing it concurrently cannot change which loaders
// an in-flight lookup consults.
func (c *Chain) loaders(explicit respath.Loader) [5]respath.Loader {
	c.mu.RLock()
	def := c.def
	c.mu.RUnlock()
	return [5]respath.Loader{explicit, def, c.ambient(), c.own, c.system}
}

// FromEnv builds a loader over the search path in the RESPATH environment
// variable.  Returns nil when the variable is unset or empty.
func FromEnv() respath.Loader {
	list := os.Getenv(EnvPath)
	if list == "" {
		return nil
	}
	return SearchPath(list)
}

// SearchPath builds a loader over a path-list string.  Entries ending in
// .zip or .jar are treated as archives; everything else as a directory.
// Returns nil when the list has no usable entries.
func SearchPath(list string) respath.Loader {
	var loaders []respath.Loader
	for _, entry := range filepath.SplitList(list) {
		if entry == "" {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry)) {
		case ".zip", ".jar":
			loaders = append(loaders, zip.New(entry))
		default:
			loaders = append(loaders, dir.New(entry))
		}
	}
	if len(loaders) == 0 {
		return nil
	}
	return respath.Multi(loaders...)
}

// Loaders index resources rooted differently: some know "a/b", others "/a/b".
// The retry form is the same name with its leading solidus added or removed.
func toggleSolidus(name string) string {
	if strings.HasPrefix(name, "/") {
		return strings.TrimPrefix(name, "/")
	}
	return "/" + name
}
