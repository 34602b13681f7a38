// Package zip provides a resource loader over the entries of a zip (or jar)
// archive.
package zip

import (
	archive "archive/zip"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Loader serves resources out of a zip archive.  The archive is opened on
// every lookup so each returned handle is independent of all others.
type Loader struct {
	path string
}

// New creates a loader over the archive at the given path.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Open returns the content of the named entry.  Closing the returned reader
// also closes the underlying archive.
func (l *Loader) Open(name string) (io.ReadCloser, error) {
	rc, err := archive.OpenReader(l.path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open archive %s", l.path)
	}

	f, err := rc.Open(normalize(name))
	if err != nil {
		_ = rc.Close()
		return nil, errors.Wrapf(err, "no entry %s in %s", name, l.path)
	}
	return &entry{f: f, archive: rc}, nil
}

// URL returns a zip scheme address of the form zip:<archive>!/<entry>,
// mirroring the jar URL convention.  The address does not point at a plain
// file on disk.
func (l *Loader) URL(name string) (*url.URL, error) {
	rc, err := archive.OpenReader(l.path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open archive %s", l.path)
	}
	defer rc.Close()

	n := normalize(name)
	f, err := rc.Open(n)
	if err != nil {
		return nil, errors.Wrapf(err, "no entry %s in %s", name, l.path)
	}
	_ = f.Close()

	abs, err := filepath.Abs(l.path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not calculate absolute path of %s", l.path)
	}
	return &url.URL{Scheme: "zip", Opaque: filepath.ToSlash(abs) + "!/" + n}, nil
}

// Walk visits every entry in the archive in stored order.
func (l *Loader) Walk(fn func(name string) error) error {
	rc, err := archive.OpenReader(l.path)
	if err != nil {
		return errors.Wrapf(err, "could not open archive %s", l.path)
	}
	defer rc.Close()

	for _, f := range rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := fn(f.Name); err != nil {
			return err
		}
	}
	return nil
}

type entry struct {
	f       io.ReadCloser
	archive *archive.ReadCloser
}

func (e *entry) Read(p []byte) (int, error) {
	return e.f.Read(p)
}

func (e *entry) Close() error {
	err := e.f.Close()
	if cerr := e.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

func normalize(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}
