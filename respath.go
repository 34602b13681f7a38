package respath

import (
	"io"
	"net/url"
	"os"

	"github.com/pkg/errors"
)

// Loader locates resources by relative, solidus delimited name.  Implementations
// may read a local directory tree, the contents of a zip archive, resources
// embedded in the binary, etc.  See individual loader documentation under
// drivers/ for more information.
//
// A loader may legitimately not know a given name.  Absence is reported with an
// error whose cause satisfies os.IsNotExist; it is an expected outcome, not a
// failure.  Loaders never cache: every Open produces a fresh handle owned by
// the caller.
type Loader interface {

	// Open returns a reader over the content of the named resource.
	Open(name string) (io.ReadCloser, error)

	// URL returns an address for the named resource.  The scheme depends on
	// where the loader keeps its content (file, zip, ...), and not every
	// address corresponds to a real file on disk.
	URL(name string) (*url.URL, error)
}

// Walker is an optional capability of loaders that can enumerate the
// resource names they index.
type Walker interface {
	Walk(fn func(name string) error) error
}

// NotFoundError indicates that no loader consulted during a lookup could
// locate the named resource.  It is recoverable; the caller decides whether
// absence is exceptional.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "could not find resource " + e.Name
}

// IsNotFound reports whether err (or its cause) is a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

// IsNotExist reports whether err (or its cause) is a loader's absence signal.
func IsNotExist(err error) bool {
	return os.IsNotExist(errors.Cause(err))
}

// Multi combines several loaders into one that consults its members in order
// and returns the first hit.  Nil members are ignored.  Errors from individual
// members are treated as misses; the combined loader reports absence only
// after every member has been tried.
func Multi(loaders ...Loader) Loader {
	out := make(multi, 0, len(loaders))
	for _, l := range loaders {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

type multi []Loader

func (m multi) Open(name string) (io.ReadCloser, error) {
	for _, l := range m {
		if rc, err := l.Open(name); err == nil {
			return rc, nil
		}
	}
	return nil, errors.Wrapf(os.ErrNotExist, "no loader on the search path has %s", name)
}

func (m multi) URL(name string) (*url.URL, error) {
	for _, l := range m {
		if u, err := l.URL(name); err == nil {
			return u, nil
		}
	}
	return nil, errors.Wrapf(os.ErrNotExist, "no loader on the search path has %s", name)
}

// Walk visits the names indexed by each member that can enumerate itself.
// Members without that capability are skipped.
func (m multi) Walk(fn func(name string) error) error {
	for _, l := range m {
		w, ok := l.(Walker)
		if !ok {
			continue
		}
		if err := w.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}
