// Package fsys adapts any io/fs filesystem into a resource loader.  It backs
// the built-in (embedded) chain slot, and gives tests an easy in-memory loader
// via testing/fstest.
package fsys

import (
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// Loader serves resources out of an fs.FS.
type Loader struct {
	fsys fs.FS
}

// New creates a loader over the given filesystem.
func New(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Open returns the content of the named resource.
func (l *Loader) Open(name string) (io.ReadCloser, error) {
	f, err := l.fsys.Open(normalize(name))
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", name)
	}
	return f, nil
}

// URL returns an fs scheme address for the named resource.  The address
// identifies the resource within this loader only; it does not point at
// anything on the local filesystem.
func (l *Loader) URL(name string) (*url.URL, error) {
	n := normalize(name)
	f, err := l.fsys.Open(n)
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat %s", name)
	}
	_ = f.Close()
	return &url.URL{Scheme: "fs", Opaque: n}, nil
}

// Walk visits every regular file in the filesystem.
func (l *Loader) Walk(fn func(name string) error) error {
	return fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "error walking %s", p)
		}
		if d.IsDir() {
			return nil
		}
		return fn(p)
	})
}

// fs.FS names are unrooted; resource names may carry a leading solidus or
// relative segments.  Anchoring the clean keeps ".." from escaping.
func normalize(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
