// Package dir provides a resource loader rooted at a local directory.
package dir

import (
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Loader serves resources from a root directory.  Resource names are solidus
// delimited paths relative to the root; names that try to climb out of the
// root are confined to it.
type Loader struct {
	root string
}

// New creates a loader rooted at the given directory.  The directory need not
// exist yet; lookups against a missing root simply report absence.
func New(root string) *Loader {
	return &Loader{root: root}
}

// Open returns the content of the named resource.
func (l *Loader) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(l.resolve(name))
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", name)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "could not stat %s", name)
	}
	if info.IsDir() {
		// directories are not resources
		_ = f.Close()
		return nil, errors.Wrapf(os.ErrNotExist, "%s is a directory", name)
	}
	return f, nil
}

// URL returns a file scheme address for the named resource.
func (l *Loader) URL(name string) (*url.URL, error) {
	p := l.resolve(name)
	info, err := os.Stat(p)
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat %s", name)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(os.ErrNotExist, "%s is a directory", name)
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, errors.Wrapf(err, "could not calculate absolute path of %s", p)
	}
	return &url.URL{Scheme: "file", Path: "/" + strings.TrimPrefix(filepath.ToSlash(abs), "/")}, nil
}

func (l *Loader) resolve(name string) string {
	rel := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(name)), "/")
	return filepath.Join(l.root, filepath.FromSlash(rel))
}
